package services

import (
	"math/rand"
	"testing"
	"time"

	"livevip/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(seed int64) (*EngagementFeed, *fakeScheduler, *fakeClock) {
	sched := newFakeScheduler()
	clock := newFakeClock()
	feed := NewEngagementFeed("s1", rand.New(rand.NewSource(seed)), clock, sched)
	return feed, sched, clock
}

func TestEngagementFeed_InitialLikes(t *testing.T) {
	feed, _, _ := newTestFeed(42)

	likes := feed.Likes()
	assert.GreaterOrEqual(t, likes, 100)
	assert.LessOrEqual(t, likes, 599)

	// Same seed, same initial count.
	other, _, _ := newTestFeed(42)
	assert.Equal(t, likes, other.Likes())
}

func TestEngagementFeed_LikeOncePerMount(t *testing.T) {
	feed, _, _ := newTestFeed(1)
	before := feed.Likes()

	assert.True(t, feed.Like())
	assert.Equal(t, before+1, feed.Likes())
	assert.True(t, feed.HasLiked())

	// Second like is refused and the counter holds.
	assert.False(t, feed.Like())
	assert.Equal(t, before+1, feed.Likes())

	// A fresh mount gets a fresh like.
	next, _, _ := newTestFeed(2)
	assert.False(t, next.HasLiked())
	assert.True(t, next.Like())
}

func TestEngagementFeed_SyntheticComments(t *testing.T) {
	feed, sched, clock := newTestFeed(7)

	feed.Start()
	require.Equal(t, 1, sched.pendingOneShots())

	sched.fireOneShots()
	clock.advance(5 * time.Second)
	sched.fireOneShots()

	comments := feed.Comments()
	require.Len(t, comments, 2)
	for _, c := range comments {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Author)
		assert.NotEmpty(t, c.Message)
		assert.NotEmpty(t, c.Avatar)
	}

	// Each firing rescheduled the next one.
	assert.Equal(t, 1, sched.pendingOneShots())
}

func TestEngagementFeed_SyntheticTruncationToRecent(t *testing.T) {
	feed, sched, _ := newTestFeed(9)
	feed.Start()

	for i := 0; i < syntheticRetention+10; i++ {
		sched.fireOneShots()
	}

	assert.Len(t, feed.Comments(), syntheticRetention)
}

func TestEngagementFeed_UserCommentsNotTruncated(t *testing.T) {
	feed, sched, _ := newTestFeed(11)
	feed.Start()

	for i := 0; i < syntheticRetention; i++ {
		sched.fireOneShots()
	}
	require.Len(t, feed.Comments(), syntheticRetention)

	// User comments push the log past the cap; only the next synthetic
	// arrival trims it back down.
	for i := 0; i < 5; i++ {
		_, err := feed.PostComment("Maria", "oi!", true)
		require.NoError(t, err)
	}
	assert.Len(t, feed.Comments(), syntheticRetention+5)

	sched.fireOneShots()
	assert.Len(t, feed.Comments(), syntheticRetention)
}

func TestEngagementFeed_PostCommentRequiresPremium(t *testing.T) {
	feed, _, _ := newTestFeed(3)

	_, err := feed.PostComment("João", "olá", false)
	assert.ErrorIs(t, err, domain.ErrPremiumRequired)
	assert.Empty(t, feed.Comments())

	c, err := feed.PostComment("João", "  olá  ", true)
	require.NoError(t, err)
	assert.Equal(t, "olá", c.Message)
	assert.Equal(t, "João", c.Author)
	assert.Len(t, feed.Comments(), 1)
}

func TestEngagementFeed_PostCommentIgnoresBlank(t *testing.T) {
	feed, _, _ := newTestFeed(3)

	c, err := feed.PostComment("João", "   ", true)
	require.NoError(t, err)
	assert.Empty(t, c.ID)
	assert.Empty(t, feed.Comments())
}

func TestEngagementFeed_StopCancelsGenerator(t *testing.T) {
	feed, sched, _ := newTestFeed(5)
	feed.Start()
	feed.Stop()

	sched.fireOneShots()
	assert.Empty(t, feed.Comments())

	// Start after stop stays inert.
	feed.Start()
	assert.Equal(t, 0, sched.pendingOneShots())
}
