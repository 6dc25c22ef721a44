package usecase

import (
	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// genreConfidence 流派推断的基础置信度
const genreConfidence = 0.7

// artistGenreTable 基于艺人名的流派推断表
// 占位启发式，后续可替换为Spotify流派API
var artistGenreTable = map[string][]string{
	"taylor swift":    {"pop", "country", "folk"},
	"the beatles":     {"rock", "pop", "classic"},
	"radiohead":       {"alternative", "rock", "electronic"},
	"miles davis":     {"jazz", "fusion"},
	"daft punk":       {"electronic", "dance", "house"},
	"billie eilish":   {"pop", "alternative", "indie"},
	"michael jackson": {"pop", "r&b", "funk"},
	"nirvana":         {"grunge", "rock", "alternative"},
	"bob dylan":       {"folk", "rock", "country"},
	"kanye west":      {"hip-hop", "rap", "electronic"},
}

var artistCaser = cases.Lower(language.Und)

// estimateGenres 按艺人名推断流派，未收录的艺人落到兜底流派
func estimateGenres(artist string) []string {
	if genres, ok := artistGenreTable[artistCaser.String(artist)]; ok {
		return genres
	}
	return []string{"pop", "general"}
}

func containsGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if g == genre {
			return true
		}
	}
	return false
}

// buildProfileFromRatings 从评分历史整体重建口味画像
// 每次全量重算，不做增量合并
func buildProfileFromRatings(userID string, ratings []domain.AlbumRating) *domain.UserMusicProfile {
	profile := domain.NewUserMusicProfile(userID)

	for _, rating := range ratings {
		genres := estimateGenres(rating.ArtistName)
		analysis := domain.RatingAnalysis{
			AlbumID:     rating.AlbumID,
			Rating:      rating.Rating,
			Genres:      genres,
			Artist:      rating.ArtistName,
			ReleaseYear: rating.CreatedAt.Year(),
			RatedAt:     rating.CreatedAt,
			Confidence:  genreConfidence,
		}
		profile.RatingHistory = append(profile.RatingHistory, analysis)
		profile.FavoriteArtists[rating.ArtistName]++

		for _, genre := range genres {
			// 评分归一化到[0,1]后累加为流派权重
			profile.FavoriteGenres[genre] += float64(rating.Rating) / 5.0

			// 滚动均值：count为截至当前历史中含该流派的条数
			count := 0
			for _, h := range profile.RatingHistory {
				if containsGenre(h.Genres, genre) {
					count++
				}
			}
			prev := profile.AverageRatingByGenre[genre]
			profile.AverageRatingByGenre[genre] = (prev*float64(count-1) + float64(rating.Rating)) / float64(count)
		}
	}

	// 按最大权重归一化
	maxWeight := 0.0
	for _, weight := range profile.FavoriteGenres {
		if weight > maxWeight {
			maxWeight = weight
		}
	}
	if maxWeight > 0 {
		for genre := range profile.FavoriteGenres {
			profile.FavoriteGenres[genre] /= maxWeight
		}
	}

	return profile
}
