package services

import (
	"context"
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

// fakeTimer is a manually fired timer registered with fakeScheduler.
type fakeTimer struct {
	mu        sync.Mutex
	fn        func()
	d         time.Duration
	repeating bool
	cancelled bool
}

func (t *fakeTimer) Cancel() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
}

func (t *fakeTimer) isCancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// fakeScheduler records timers instead of arming real ones. Tests fire
// them explicitly.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) After(d time.Duration, fn func()) ports.TimerHandle {
	t := &fakeTimer{fn: fn, d: d}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

func (s *fakeScheduler) Every(d time.Duration, fn func()) ports.TimerHandle {
	t := &fakeTimer{fn: fn, d: d, repeating: true}
	s.mu.Lock()
	s.timers = append(s.timers, t)
	s.mu.Unlock()
	return t
}

// fireOneShots fires every pending one-shot timer once and removes it.
// Timers registered during firing are left pending.
func (s *fakeScheduler) fireOneShots() {
	s.mu.Lock()
	var fire []*fakeTimer
	var keep []*fakeTimer
	for _, t := range s.timers {
		if t.repeating || t.isCancelled() {
			keep = append(keep, t)
			continue
		}
		fire = append(fire, t)
	}
	s.timers = keep
	s.mu.Unlock()

	for _, t := range fire {
		t.fn()
	}
}

// tick fires every live repeating timer once.
func (s *fakeScheduler) tick() {
	s.mu.Lock()
	var fire []*fakeTimer
	for _, t := range s.timers {
		if t.repeating && !t.isCancelled() {
			fire = append(fire, t)
		}
	}
	s.mu.Unlock()

	for _, t := range fire {
		t.fn()
	}
}

// pendingOneShots counts live one-shot timers.
func (s *fakeScheduler) pendingOneShots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.repeating && !t.isCancelled() {
			n++
		}
	}
	return n
}

// fakeClock is a settable logical clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeSurface records every media surface command.
type fakeSurface struct {
	mu sync.Mutex

	loadedURL    string
	loadedPoster string
	playCalls    int
	loop         bool
	muted        bool
	volume       float64
	fullscreen   bool

	fallbackPoster string
	fallbackCalls  int
}

func (s *fakeSurface) Load(url, poster string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadedURL = url
	s.loadedPoster = poster
}

func (s *fakeSurface) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playCalls++
}

func (s *fakeSurface) SetLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = loop
}

func (s *fakeSurface) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *fakeSurface) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = volume
}

func (s *fakeSurface) EnterFullscreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreen = true
}

func (s *fakeSurface) ExitFullscreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreen = false
}

func (s *fakeSurface) ShowFallback(poster string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbackPoster = poster
	s.fallbackCalls++
}

func (s *fakeSurface) plays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playCalls
}

func (s *fakeSurface) fallbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallbackCalls
}

// fakeCatalogSource serves queued responses.
type fakeCatalogSource struct {
	mu      sync.Mutex
	streams []domain.Stream
	err     error
	calls   int
}

func (f *fakeCatalogSource) FetchStreams(ctx context.Context) ([]domain.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Stream, len(f.streams))
	copy(out, f.streams)
	return out, nil
}

func (f *fakeCatalogSource) set(streams []domain.Stream, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streams = streams
	f.err = err
}

// fakeEntitlementSource answers premium checks from a map.
type fakeEntitlementSource struct {
	mu      sync.Mutex
	premium map[string]bool
	err     error
}

func (f *fakeEntitlementSource) CheckPremium(ctx context.Context, email string) (*domain.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Entitlement{Email: email, Premium: f.premium[email]}, nil
}

// fakeSessionStore is an in-memory session store.
type fakeSessionStore struct {
	mu      sync.Mutex
	session *domain.StoredSession
	loadErr error
}

func (f *fakeSessionStore) Load() (*domain.StoredSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.session, nil
}

func (f *fakeSessionStore) Save(session *domain.StoredSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *session
	f.session = &s
	return nil
}

func (f *fakeSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	f.loadErr = nil
	return nil
}

func testStreams() []domain.Stream {
	return []domain.Stream{
		{ID: "s1", Title: "Música ao Vivo", Thumbnail: "thumb1", VideoURL: "https://cdn.example/1.m3u8", StreamerName: "Lucas Music"},
		{ID: "s2", Title: "Gaming Session", Thumbnail: "thumb2", VideoURL: "https://cdn.example/2.m3u8", StreamerName: "Pedro Games"},
		{ID: "s3", Title: "Live Exclusiva", Thumbnail: "thumb3", VideoURL: "https://cdn.example/3.m3u8", StreamerName: "Ana Premium", VIPOnly: true},
	}
}
