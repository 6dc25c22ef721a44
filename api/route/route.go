package route

import (
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/api/middleware"
	"github.com/Super-Badmen-Viper/PitchPlease/bootstrap"
	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/mongo"
	"github.com/Super-Badmen-Viper/PitchPlease/repository"
	"github.com/Super-Badmen-Viper/PitchPlease/repository/repository_local"
	"github.com/Super-Badmen-Viper/PitchPlease/spotify"
	"github.com/gin-gonic/gin"
)

// Repositories 按 STORAGE_DRIVER 选定后端的仓库集合
type Repositories struct {
	User      domain.UserRepository
	Rating    domain.RatingRepository
	Playlist  domain.PlaylistRepository
	Social    domain.SocialRepository
	Profile   domain.ProfileRepository
	Recommend domain.RecommendationRepository
}

func buildRepositories(app bootstrap.Application) *Repositories {
	if app.Env.StorageDriver == "mongo" {
		db := app.Mongo.Database(app.Env.DBName)
		mongo.CreateIndexes(db)
		return &Repositories{
			User:      repository.NewUserRepository(db, domain.CollectionUser),
			Rating:    repository.NewRatingRepository(db, domain.CollectionRating),
			Playlist:  repository.NewPlaylistRepository(db, domain.CollectionPlaylist),
			Social:    repository.NewSocialRepository(db),
			Profile:   repository.NewProfileRepository(db, domain.CollectionUserProfilePrefix),
			Recommend: repository.NewRecommendRepository(db, domain.CollectionRecommendationPrefix),
		}
	}

	store := app.Store
	return &Repositories{
		User:      repository_local.NewUserRepository(store),
		Rating:    repository_local.NewRatingRepository(store),
		Playlist:  repository_local.NewPlaylistRepository(store),
		Social:    repository_local.NewSocialRepository(store),
		Profile:   repository_local.NewProfileRepository(store),
		Recommend: repository_local.NewRecommendRepository(store),
	}
}

func Setup(env *bootstrap.Env, timeout time.Duration, app bootstrap.Application, engine *gin.Engine) {
	repos := buildRepositories(app)
	provider := spotify.NewClient(env.SpotifyClientID, env.SpotifyClientSecret)

	publicRouter := engine.Group("")
	NewAuthRouter(env, timeout, repos, publicRouter)

	protectedRouter := engine.Group("")
	protectedRouter.Use(middleware.JwtAuthMiddleware(env.AccessTokenSecret))
	NewUserRouter(env, timeout, repos, protectedRouter)
	NewSearchRouter(provider, protectedRouter)
	NewRatingRouter(timeout, repos, protectedRouter)
	NewPlaylistRouter(timeout, repos, protectedRouter)
	NewSocialRouter(timeout, repos, protectedRouter)
	NewRecommendRouter(timeout, repos, provider, protectedRouter)
}
