package services

import (
	"math/rand"
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
	"livevip/pkg/utils"
)

// syntheticAuthor is one canned author/message/avatar tuple for the
// simulated chat.
type syntheticAuthor struct {
	user    string
	message string
	avatar  string
}

var syntheticPool = []syntheticAuthor{
	{"João123", "Que show incrível! 🔥", "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=50&h=50&fit=crop&crop=face"},
	{"Maria_VIP", "Melhor live da semana!", "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=50&h=50&fit=crop&crop=face"},
	{"Pedro_Fan", "Quando vai ser a próxima?", "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=50&h=50&fit=crop&crop=face"},
	{"Ana_Live", "Conteúdo premium mesmo! 💎", "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=50&h=50&fit=crop&crop=face"},
	{"Carlos_VIP", "Vale muito a pena ser premium", "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=50&h=50&fit=crop&crop=face"},
}

const viewerAvatar = "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=50&h=50&fit=crop&crop=face"

// Synthetic comment cadence and retention.
const (
	syntheticMinInterval = 3 * time.Second
	syntheticMaxInterval = 11 * time.Second
	syntheticRetention   = 20
)

// EngagementFeed merges the synthetic comment generator with
// user-submitted comments and the single-use like counter. One feed is
// created per stream mount and discarded when the selection changes.
//
// Retention note: the log is truncated to the most recent entries only
// when a synthetic comment lands. User comments appended between
// synthetic ticks can grow the log past the cap until the next tick.
type EngagementFeed struct {
	mu sync.Mutex

	streamID domain.StreamID
	comments []domain.Comment

	likes    int
	hasLiked bool

	rng   *rand.Rand
	clock ports.Clock
	sched ports.Scheduler

	timer   ports.TimerHandle
	stopped bool
}

func NewEngagementFeed(streamID domain.StreamID, rng *rand.Rand, clock ports.Clock, sched ports.Scheduler) *EngagementFeed {
	return &EngagementFeed{
		streamID: streamID,
		likes:    rng.Intn(500) + 100,
		rng:      rng,
		clock:    clock,
		sched:    sched,
	}
}

// Start arms the synthetic comment generator. Each firing appends one
// canned entry and schedules the next at a fresh random interval.
func (f *EngagementFeed) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped || f.timer != nil {
		return
	}
	f.scheduleLocked()
}

func (f *EngagementFeed) scheduleLocked() {
	spread := syntheticMaxInterval - syntheticMinInterval
	interval := syntheticMinInterval + time.Duration(f.rng.Int63n(int64(spread)))
	f.timer = f.sched.After(interval, f.syntheticTick)
}

func (f *EngagementFeed) syntheticTick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}

	pick := syntheticPool[f.rng.Intn(len(syntheticPool))]
	f.comments = append(f.comments, domain.Comment{
		ID:        utils.GenerateCommentID(),
		Author:    pick.user,
		Message:   pick.message,
		Timestamp: f.clock.Now(),
		Avatar:    pick.avatar,
	})
	if len(f.comments) > syntheticRetention {
		f.comments = f.comments[len(f.comments)-syntheticRetention:]
	}

	f.scheduleLocked()
}

// PostComment appends a user comment. Only premium viewers may post;
// no truncation happens on this path.
func (f *EngagementFeed) PostComment(author, message string, premium bool) (domain.Comment, error) {
	if !premium {
		return domain.Comment{}, domain.ErrPremiumRequired
	}
	message = utils.SanitizeMessage(message)
	if utils.IsEmpty(message) {
		return domain.Comment{}, nil
	}
	if author == "" {
		author = "Você"
	}

	comment := domain.Comment{
		ID:        utils.GenerateCommentID(),
		Author:    author,
		Message:   message,
		Timestamp: f.clock.Now(),
		Avatar:    viewerAvatar,
	}

	f.mu.Lock()
	f.comments = append(f.comments, comment)
	f.mu.Unlock()
	return comment, nil
}

// Like increments the counter by exactly one, exactly once per mount.
// Returns false when the viewer has already liked.
func (f *EngagementFeed) Like() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasLiked {
		return false
	}
	f.hasLiked = true
	f.likes++
	return true
}

// Likes returns the current like count.
func (f *EngagementFeed) Likes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes
}

// HasLiked reports whether the viewer already used their like.
func (f *EngagementFeed) HasLiked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasLiked
}

// Comments returns a copy of the log.
func (f *EngagementFeed) Comments() []domain.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Comment, len(f.comments))
	copy(out, f.comments)
	return out
}

// StreamID returns the stream this feed is scoped to.
func (f *EngagementFeed) StreamID() domain.StreamID {
	return f.streamID
}

// Stop cancels the generator. Must be called before the next stream's
// feed starts and on session close.
func (f *EngagementFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	if f.timer != nil {
		f.timer.Cancel()
		f.timer = nil
	}
}
