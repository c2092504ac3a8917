package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
	apperrors "livevip/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Server-side defaults applied to sparse create payloads, so the stored
// catalog is always fully populated.
const (
	defaultCategory = "Entretenimento"
	defaultAvatar   = "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=100&h=100&fit=crop&crop=face"
)

type catalogService struct {
	repo     ports.StreamRepository
	notifier ports.CatalogNotifier
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalogService builds the server-side catalog CRUD surface.
// notifier may be nil.
func NewCatalogService(repo ports.StreamRepository, notifier ports.CatalogNotifier, logger *zap.Logger) ports.CatalogService {
	return &catalogService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *catalogService) CreateStream(ctx context.Context, in ports.CreateStreamInput) (*domain.Stream, error) {
	if in.Title == "" || in.Thumbnail == "" || in.StreamerName == "" {
		return nil, apperrors.NewInvalidInput("title, thumbnail and streamerName are required")
	}

	stream := &domain.Stream{
		ID:             domain.StreamID(uuid.NewString()),
		Title:          in.Title,
		Thumbnail:      in.Thumbnail,
		VideoURL:       in.VideoURL,
		StreamerName:   in.StreamerName,
		StreamerAvatar: in.StreamerAvatar,
		Category:       in.Category,
		ViewerCount:    in.ViewerCount,
		VIPOnly:        in.VIPOnly,
		Live:           true,
		CreatedAt:      time.Now(),
	}
	if stream.StreamerAvatar == "" {
		stream.StreamerAvatar = defaultAvatar
	}
	if stream.Category == "" {
		stream.Category = defaultCategory
	}
	if stream.ViewerCount <= 0 {
		s.mu.Lock()
		stream.ViewerCount = s.rng.Intn(200) + 50
		s.mu.Unlock()
	}

	if err := s.repo.Create(ctx, stream); err != nil {
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	s.logger.Info("stream created",
		zap.String("stream_id", string(stream.ID)),
		zap.String("title", stream.Title),
		zap.Bool("vip_only", stream.VIPOnly))
	s.notify("stream_created", stream)
	return stream, nil
}

func (s *catalogService) GetStream(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) UpdateStream(ctx context.Context, id domain.StreamID, in ports.UpdateStreamInput) (*domain.Stream, error) {
	stream, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		stream.Title = *in.Title
	}
	if in.Thumbnail != nil {
		stream.Thumbnail = *in.Thumbnail
	}
	if in.VideoURL != nil {
		stream.VideoURL = *in.VideoURL
	}
	if in.StreamerName != nil {
		stream.StreamerName = *in.StreamerName
	}
	if in.StreamerAvatar != nil {
		stream.StreamerAvatar = *in.StreamerAvatar
	}
	if in.Category != nil {
		stream.Category = *in.Category
	}
	if in.ViewerCount != nil {
		stream.ViewerCount = *in.ViewerCount
	}
	if in.VIPOnly != nil {
		stream.VIPOnly = *in.VIPOnly
	}
	if in.Live != nil {
		stream.Live = *in.Live
	}

	if err := s.repo.Update(ctx, stream); err != nil {
		return nil, fmt.Errorf("failed to update stream: %w", err)
	}

	s.notify("stream_updated", stream)
	return stream, nil
}

func (s *catalogService) DeleteStream(ctx context.Context, id domain.StreamID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("stream deleted", zap.String("stream_id", string(id)))
	s.notify("stream_deleted", &domain.Stream{ID: id})
	return nil
}

func (s *catalogService) ListStreams(ctx context.Context) ([]domain.Stream, error) {
	return s.repo.List(ctx)
}

func (s *catalogService) notify(event string, stream *domain.Stream) {
	if s.notifier != nil {
		s.notifier.CatalogChanged(event, stream)
	}
}
