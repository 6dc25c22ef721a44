package domain

const (
	CollectionUser = "stored_users"
)
const (
	CollectionRating = "stored_ratings"
)
const (
	CollectionPlaylist = "stored_playlists"
)

const (
	CollectionFriendship = "friendships"
)
const (
	CollectionRatingLike = "rating_likes"
)
const (
	CollectionRatingComment = "rating_comments"
)
const (
	CollectionSocialActivity = "social_activities"
)

// 按用户分桶的集合，完整键为 <前缀>_<userId>
const (
	CollectionUserProfilePrefix = "user_music_profiles"
)
const (
	CollectionRecommendationPrefix = "cached_recommendations"
)

// UserScopedKey 拼接按用户分桶的存储键
func UserScopedKey(prefix, userID string) string {
	return prefix + "_" + userID
}
