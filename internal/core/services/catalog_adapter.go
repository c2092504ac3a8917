package services

import (
	"context"
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"go.uber.org/zap"
)

// CatalogAdapter polls the external catalog and replaces the in-memory
// list wholesale on every successful fetch. A failed fetch keeps the
// last-known-good list and raises an error flag; the next scheduled
// tick (or a manual Refresh) is the retry.
type CatalogAdapter struct {
	mu sync.RWMutex

	source   ports.CatalogSource
	sched    ports.Scheduler
	interval time.Duration
	logger   *zap.Logger

	streams []domain.Stream
	lastErr error

	poll     ports.TimerHandle
	onUpdate func([]domain.Stream)
}

func NewCatalogAdapter(source ports.CatalogSource, sched ports.Scheduler, interval time.Duration, logger *zap.Logger) *CatalogAdapter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &CatalogAdapter{
		source:   source,
		sched:    sched,
		interval: interval,
		logger:   logger,
	}
}

// OnUpdate registers a callback invoked after every successful refresh
// with the freshly replaced list.
func (a *CatalogAdapter) OnUpdate(fn func([]domain.Stream)) {
	a.mu.Lock()
	a.onUpdate = fn
	a.mu.Unlock()
}

// Start performs an immediate refresh and arms the repeating poll.
func (a *CatalogAdapter) Start(ctx context.Context) {
	_ = a.Refresh(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.poll != nil {
		return
	}
	a.poll = a.sched.Every(a.interval, func() {
		_ = a.Refresh(ctx)
	})
}

// Refresh fetches the catalog once. Normalization happens here so
// optionality never escapes into the session: every record leaves the
// adapter fully populated.
func (a *CatalogAdapter) Refresh(ctx context.Context) error {
	streams, err := a.source.FetchStreams(ctx)
	if err != nil {
		a.mu.Lock()
		a.lastErr = err
		a.mu.Unlock()
		a.logger.Warn("catalog refresh failed, keeping previous list", zap.Error(err))
		return err
	}

	for i := range streams {
		normalizeStream(&streams[i])
	}

	a.mu.Lock()
	a.streams = streams
	a.lastErr = nil
	fn := a.onUpdate
	a.mu.Unlock()

	a.logger.Debug("catalog refreshed", zap.Int("streams", len(streams)))
	if fn != nil {
		fn(streams)
	}
	return nil
}

func normalizeStream(s *domain.Stream) {
	if s.Category == "" {
		s.Category = defaultCategory
	}
	if s.StreamerAvatar == "" {
		s.StreamerAvatar = defaultAvatar
	}
}

// Streams returns the last-known-good catalog.
func (a *CatalogAdapter) Streams() []domain.Stream {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.Stream, len(a.streams))
	copy(out, a.streams)
	return out
}

// Err returns the error from the most recent failed refresh, or nil
// when the last refresh succeeded.
func (a *CatalogAdapter) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

// Stop cancels the repeating poll.
func (a *CatalogAdapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.poll != nil {
		a.poll.Cancel()
		a.poll = nil
	}
}
