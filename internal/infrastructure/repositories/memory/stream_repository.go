package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

type StreamRepository struct {
	mu      sync.RWMutex
	streams map[domain.StreamID]*domain.Stream
}

func NewStreamRepository() ports.StreamRepository {
	return &StreamRepository{
		streams: make(map[domain.StreamID]*domain.Stream),
	}
}

func (r *StreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.streams[stream.ID]; exists {
		return fmt.Errorf("stream already exists: %s", stream.ID)
	}
	s := *stream
	r.streams[stream.ID] = &s
	return nil
}

func (r *StreamRepository) GetByID(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stream, exists := r.streams[id]
	if !exists {
		return nil, domain.ErrStreamNotFound
	}
	s := *stream
	return &s, nil
}

func (r *StreamRepository) Update(ctx context.Context, stream *domain.Stream) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.streams[stream.ID]; !exists {
		return domain.ErrStreamNotFound
	}
	s := *stream
	r.streams[stream.ID] = &s
	return nil
}

func (r *StreamRepository) Delete(ctx context.Context, id domain.StreamID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.streams[id]; !exists {
		return domain.ErrStreamNotFound
	}
	delete(r.streams, id)
	return nil
}

// List returns the catalog newest first, matching the backend's wire
// ordering.
func (r *StreamRepository) List(ctx context.Context) ([]domain.Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Stream, 0, len(r.streams))
	for _, stream := range r.streams {
		out = append(out, *stream)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *StreamRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams), nil
}
