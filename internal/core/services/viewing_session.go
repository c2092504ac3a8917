package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
	"livevip/pkg/utils"

	"go.uber.org/zap"
)

// ViewingSessionConfig carries the session engine's timing knobs.
// Zero values select the product defaults.
type ViewingSessionConfig struct {
	WatchBudgetSeconds int
	TickInterval       time.Duration
	NavDebounce        time.Duration
	ResumeDelay        time.Duration
	ControlsHideDelay  time.Duration
}

// ViewingSession is the client-resident state machine deciding what the
// viewer may watch. It owns current-stream selection, the free-tier
// watch clock and the gating decision, and composes the catalog
// adapter, entitlement resolver, playback and navigation controllers
// and the per-stream engagement feed.
//
// Every timer is acquired through the injected scheduler and cancelled
// on each exit path from its scope: stream switch, close, teardown.
type ViewingSession struct {
	mu sync.Mutex

	cfg    ViewingSessionConfig
	logger *zap.Logger
	sched  ports.Scheduler
	clock  ports.Clock
	rng    *rand.Rand

	catalog  *CatalogAdapter
	resolver *EntitlementResolver
	gate     *WatchTimeGate
	playback *PlaybackController
	nav      *NavigationController

	state    domain.ViewingState
	eligible []domain.Stream
	feed     *EngagementFeed
	ticker   ports.TimerHandle

	onGate func(domain.GateReason)
}

func NewViewingSession(
	cfg ViewingSessionConfig,
	catalog *CatalogAdapter,
	resolver *EntitlementResolver,
	surface ports.MediaSurface,
	sched ports.Scheduler,
	clock ports.Clock,
	rng *rand.Rand,
	logger *zap.Logger,
) *ViewingSession {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}

	s := &ViewingSession{
		cfg:      cfg,
		logger:   logger,
		sched:    sched,
		clock:    clock,
		rng:      rng,
		catalog:  catalog,
		resolver: resolver,
		gate:     NewWatchTimeGate(cfg.WatchBudgetSeconds),
		playback: NewPlaybackController(surface, sched, cfg.ResumeDelay, cfg.ControlsHideDelay, logger),
	}
	s.nav = NewNavigationController(sched, cfg.NavDebounce, func(stream domain.Stream) {
		_ = s.Select(stream)
	})
	s.state.Phase = domain.PhaseIdle
	return s
}

// OnGate registers a callback fired when the session transitions into
// PhaseGated (upgrade prompt activation).
func (s *ViewingSession) OnGate(fn func(domain.GateReason)) {
	s.mu.Lock()
	s.onGate = fn
	s.mu.Unlock()
}

// Start restores the persisted session, primes the catalog and arms the
// poll. When a stored identity exists its entitlement is reconciled
// against the backend.
func (s *ViewingSession) Start(ctx context.Context) {
	ent := s.resolver.LoadStored()

	s.catalog.OnUpdate(func([]domain.Stream) {
		s.refreshEligible()
	})
	s.catalog.Start(ctx)

	if ent.Email != "" {
		s.resolver.Resolve(ctx, ent.Email)
	}
	s.refreshEligible()
}

// Login identifies the viewer by email and resolves their entitlement.
func (s *ViewingSession) Login(ctx context.Context, email string) domain.Entitlement {
	email = utils.NormalizeEmail(email)
	name := email
	if i := strings.Index(email, "@"); i > 0 {
		name = email[:i]
	}

	s.resolver.SetLocal(domain.Entitlement{Email: email, Name: name})
	ent := s.resolver.Resolve(ctx, email)
	s.refreshEligible()
	return ent
}

// Select makes stream the active selection. A VIP-only stream selected
// by a non-premium viewer is rejected: the session enters PhaseGated
// with the attempted stream recorded and the prior selection (possibly
// none) untouched.
func (s *ViewingSession) Select(stream domain.Stream) error {
	premium := s.resolver.Current().Premium

	s.mu.Lock()
	if stream.VIPOnly && !premium {
		attempted := stream
		s.state.Phase = domain.PhaseGated
		s.state.Attempted = &attempted
		s.state.Reason = domain.GateVIPOnly
		fn := s.onGate
		s.mu.Unlock()

		if fn != nil {
			fn(domain.GateVIPOnly)
		}
		return domain.ErrPremiumRequired
	}

	if s.feed != nil {
		s.feed.Stop()
	}
	if s.ticker != nil {
		s.ticker.Cancel()
	}

	current := stream
	s.state.Phase = domain.PhaseViewing
	s.state.Current = &current
	s.state.Attempted = nil
	s.state.Reason = domain.GateNone
	s.state.WatchSeconds = 0

	feed := NewEngagementFeed(stream.ID, s.rng, s.clock, s.sched)
	s.feed = feed
	s.ticker = s.sched.Every(s.cfg.TickInterval, s.Tick)
	eligible := s.eligible
	s.mu.Unlock()

	s.logger.Info("stream selected",
		zap.String("stream_id", string(stream.ID)),
		zap.String("title", stream.Title))

	s.playback.Load(stream)
	s.nav.SetStreams(eligible, stream.ID)
	feed.Start()
	return nil
}

// Tick advances the watch clock by one unit. No-op unless the session
// is viewing and the viewer is non-premium. When the budget runs out
// the session gates exactly once; playback is deliberately left
// running, only the upgrade prompt and comment restriction activate.
func (s *ViewingSession) Tick() {
	if s.resolver.Current().Premium {
		return
	}

	s.mu.Lock()
	if s.state.Phase != domain.PhaseViewing {
		s.mu.Unlock()
		return
	}

	s.state.WatchSeconds++
	var fn func(domain.GateReason)
	if s.gate.Expired(s.state.WatchSeconds, false) {
		s.state.Phase = domain.PhaseGated
		s.state.Reason = domain.GateTimeExpired
		fn = s.onGate
	}
	s.mu.Unlock()

	if fn != nil {
		s.logger.Info("free-tier watch budget exhausted")
		fn(domain.GateTimeExpired)
	}
}

// Upgrade optimistically flips the viewer to premium, persists it,
// clears any gate and resets the watch clock, then reconciles with the
// backend asynchronously.
func (s *ViewingSession) Upgrade(ctx context.Context) {
	ent := s.resolver.Current()
	ent.Premium = true
	s.resolver.SetLocal(ent)

	s.mu.Lock()
	s.state.WatchSeconds = 0
	s.state.Reason = domain.GateNone
	attempted := s.state.Attempted
	s.state.Attempted = nil
	if s.state.Phase == domain.PhaseGated {
		if s.state.Current != nil {
			s.state.Phase = domain.PhaseViewing
		} else if attempted == nil {
			s.state.Phase = domain.PhaseIdle
		}
	}
	s.mu.Unlock()

	s.refreshEligible()
	if attempted != nil {
		_ = s.Select(*attempted)
	}

	if ent.Email != "" {
		go func() {
			s.resolver.Resolve(ctx, ent.Email)
			s.refreshEligible()
		}()
	}
}

// Close tears the session down to PhaseIdle: all session timers stop
// synchronously and the stream-scoped feed and counters are discarded.
func (s *ViewingSession) Close() {
	s.mu.Lock()
	if s.ticker != nil {
		s.ticker.Cancel()
		s.ticker = nil
	}
	if s.feed != nil {
		s.feed.Stop()
		s.feed = nil
	}
	s.state = domain.ViewingState{Phase: domain.PhaseIdle}
	s.mu.Unlock()

	s.playback.Stop()
	s.nav.Reset()
	s.logger.Info("viewing session closed")
}

// Shutdown stops every background activity including the catalog poll.
func (s *ViewingSession) Shutdown() {
	s.Close()
	s.catalog.Stop()
}

// Next navigates to the following eligible stream.
func (s *ViewingSession) Next() bool {
	return s.nav.Next()
}

// Prev navigates to the previous eligible stream.
func (s *ViewingSession) Prev() bool {
	return s.nav.Prev()
}

// Swipe feeds a raw directional gesture into the navigation
// controller.
func (s *ViewingSession) Swipe(startX, startY, endX, endY float64) bool {
	return s.nav.Swipe(startX, startY, endX, endY)
}

// Like spends the viewer's single like for the current stream mount.
func (s *ViewingSession) Like() bool {
	s.mu.Lock()
	feed := s.feed
	s.mu.Unlock()
	if feed == nil {
		return false
	}
	return feed.Like()
}

// PostComment submits a viewer comment to the current stream's feed.
func (s *ViewingSession) PostComment(message string) (domain.Comment, error) {
	s.mu.Lock()
	feed := s.feed
	s.mu.Unlock()
	if feed == nil {
		return domain.Comment{}, domain.ErrSessionClosed
	}

	ent := s.resolver.Current()
	author := ent.Name
	if author == "" {
		author = "Você"
	}
	return feed.PostComment(author, message, ent.Premium)
}

// Feed returns the engagement feed scoped to the current stream, or nil
// when idle.
func (s *ViewingSession) Feed() *EngagementFeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed
}

// Playback exposes the playback controller for media surface events
// and the mute/volume/fullscreen controls.
func (s *ViewingSession) Playback() *PlaybackController {
	return s.playback
}

// Entitlement returns the currently held entitlement snapshot.
func (s *ViewingSession) Entitlement() domain.Entitlement {
	return s.resolver.Current()
}

// VisibleStreams returns the catalog filtered for this viewer.
func (s *ViewingSession) VisibleStreams() []domain.Stream {
	return domain.VisibleStreams(s.catalog.Streams(), s.resolver.Current().Premium)
}

// HiddenVIPCount reports how many VIP-only streams are hidden from this
// viewer.
func (s *ViewingSession) HiddenVIPCount() int {
	return domain.HiddenVIPCount(s.catalog.Streams(), s.resolver.Current().Premium)
}

// Remaining returns the seconds left in the free-tier budget.
func (s *ViewingSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Remaining(s.state.WatchSeconds)
}

// RemainingClock renders the remaining budget as "m:ss".
func (s *ViewingSession) RemainingClock() string {
	return FormatClock(s.Remaining())
}

// State returns a snapshot of the session state.
func (s *ViewingSession) State() domain.ViewingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.NavIndex = s.nav.Index()
	return snapshot
}

func (s *ViewingSession) refreshEligible() {
	visible := domain.VisibleStreams(s.catalog.Streams(), s.resolver.Current().Premium)

	s.mu.Lock()
	s.eligible = visible
	var currentID domain.StreamID
	if s.state.Current != nil {
		currentID = s.state.Current.ID
	}
	s.mu.Unlock()

	s.nav.SetStreams(visible, currentID)
}
