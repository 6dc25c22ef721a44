package repository_local

import (
	"context"
	"fmt"
	"testing"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendshipLifecycle(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	friendship := domain.NewFriendship("u1", "u2", "User Two")
	require.NoError(t, repo.CreateFriendship(ctx, friendship))

	// 双向查询都命中同一条关系
	found, err := repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, found)
	reversed, err := repo.FindFriendshipBetween(ctx, "u2", "u1")
	require.NoError(t, err)
	require.NotNil(t, reversed)
	assert.Equal(t, found.ID, reversed.ID)

	accepted, err := repo.AcceptFriendship(ctx, friendship.ID, "u2")
	require.NoError(t, err)
	assert.True(t, accepted)

	found, err = repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipAccepted, found.Status)
	assert.NotNil(t, found.AcceptedAt)

	deleted, err := repo.DeleteFriendship(ctx, friendship.ID, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err = repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAcceptMissingFriendship(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))

	accepted, err := repo.AcceptFriendship(context.Background(), "no-such-id", "u1")
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestAcceptFriendshipOnlyByRecipientWhilePending(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	friendship := domain.NewFriendship("u1", "u2", "User Two")
	require.NoError(t, repo.CreateFriendship(ctx, friendship))

	// 发起方和无关用户都不能接受
	accepted, err := repo.AcceptFriendship(ctx, friendship.ID, "u1")
	require.NoError(t, err)
	assert.False(t, accepted)
	accepted, err = repo.AcceptFriendship(ctx, friendship.ID, "u3")
	require.NoError(t, err)
	assert.False(t, accepted)

	found, err := repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipPending, found.Status)
	assert.Nil(t, found.AcceptedAt)

	accepted, err = repo.AcceptFriendship(ctx, friendship.ID, "u2")
	require.NoError(t, err)
	assert.True(t, accepted)

	found, err = repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	firstAcceptedAt := found.AcceptedAt
	require.NotNil(t, firstAcceptedAt)

	// 已确认的关系重复接受不命中，确认时间保持不变
	accepted, err = repo.AcceptFriendship(ctx, friendship.ID, "u2")
	require.NoError(t, err)
	assert.False(t, accepted)

	found, err = repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, firstAcceptedAt, found.AcceptedAt)
}

func TestDeleteFriendshipOnlyByParticipant(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	friendship := domain.NewFriendship("u1", "u2", "User Two")
	require.NoError(t, repo.CreateFriendship(ctx, friendship))

	deleted, err := repo.DeleteFriendship(ctx, friendship.ID, "u3")
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err := repo.FindFriendshipBetween(ctx, "u1", "u2")
	require.NoError(t, err)
	require.NotNil(t, found)

	deleted, err = repo.DeleteFriendship(ctx, friendship.ID, "u2")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestLikes(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.AddLike(ctx, domain.NewRatingLike("r1", "u1", "User One")))

	liked, err := repo.HasUserLiked(ctx, "r1", "u1")
	require.NoError(t, err)
	assert.True(t, liked)

	likes, err := repo.LikesForRating(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	removed, err := repo.RemoveLike(ctx, "r1", "u1")
	require.NoError(t, err)
	assert.True(t, removed)

	liked, err = repo.HasUserLiked(ctx, "r1", "u1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCommentAuthorOnlyRemoval(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	comment := domain.NewRatingComment("r1", "u1", "User One", "banger")
	require.NoError(t, repo.AddComment(ctx, comment))

	// 非作者删除不生效
	removed, err := repo.RemoveComment(ctx, comment.ID, "u2")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.RemoveComment(ctx, comment.ID, "u1")
	require.NoError(t, err)
	assert.True(t, removed)

	comments, err := repo.CommentsForRating(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestActivityRollingCap(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	var firstID string
	for i := 0; i < domain.MaxStoredActivities+5; i++ {
		activity := domain.NewSocialActivity("u1", "User One", domain.ActivityNewRating)
		activity.AlbumName = fmt.Sprintf("album-%d", i)
		if i == 0 {
			firstID = activity.ID
		}
		require.NoError(t, repo.AddActivity(ctx, activity))
	}

	activities, err := repo.ActivitiesOfUsers(ctx, []string{"u1"})
	require.NoError(t, err)
	assert.Len(t, activities, domain.MaxStoredActivities)
	// 最旧的已被淘汰
	for _, activity := range activities {
		assert.NotEqual(t, firstID, activity.ID)
	}
}

func TestActivitiesOfUsersFiltersAndSorts(t *testing.T) {
	repo := NewSocialRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.AddActivity(ctx, domain.NewSocialActivity("u1", "User One", domain.ActivityNewRating)))
	require.NoError(t, repo.AddActivity(ctx, domain.NewSocialActivity("u2", "User Two", domain.ActivityNewFriend)))
	require.NoError(t, repo.AddActivity(ctx, domain.NewSocialActivity("u3", "User Three", domain.ActivityNewRating)))

	activities, err := repo.ActivitiesOfUsers(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, activities, 2)
	for _, activity := range activities {
		assert.Contains(t, []string{"u1", "u2"}, activity.UserID)
	}
	// 时间降序
	assert.False(t, activities[0].ActivityDate.Before(activities[1].ActivityDate))
}
