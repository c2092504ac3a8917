package services

import (
	"context"
	"encoding/json"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const catalogListCacheKey = "catalog:list"

// CachedCatalogService wraps a CatalogService with a Redis-backed list
// cache. Reads fall through to the base service on any cache error;
// every mutation invalidates the cached list.
type CachedCatalogService struct {
	base   ports.CatalogService
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedCatalogService(base ports.CatalogService, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) ports.CatalogService {
	return &CachedCatalogService{
		base:   base,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedCatalogService) CreateStream(ctx context.Context, in ports.CreateStreamInput) (*domain.Stream, error) {
	stream, err := s.base.CreateStream(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return stream, nil
}

func (s *CachedCatalogService) GetStream(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	return s.base.GetStream(ctx, id)
}

func (s *CachedCatalogService) UpdateStream(ctx context.Context, id domain.StreamID, in ports.UpdateStreamInput) (*domain.Stream, error) {
	stream, err := s.base.UpdateStream(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return stream, nil
}

func (s *CachedCatalogService) DeleteStream(ctx context.Context, id domain.StreamID) error {
	if err := s.base.DeleteStream(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedCatalogService) ListStreams(ctx context.Context) ([]domain.Stream, error) {
	data, err := s.rdb.Get(ctx, catalogListCacheKey).Bytes()
	if err == nil {
		var streams []domain.Stream
		if jsonErr := json.Unmarshal(data, &streams); jsonErr == nil {
			return streams, nil
		}
		// Unreadable cache entry, fall through and overwrite.
	}

	streams, err := s.base.ListStreams(ctx)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(streams); jsonErr == nil {
		if setErr := s.rdb.Set(ctx, catalogListCacheKey, data, s.ttl).Err(); setErr != nil {
			s.logger.Warn("failed to cache catalog list", zap.Error(setErr))
		}
	}
	return streams, nil
}

func (s *CachedCatalogService) invalidate(ctx context.Context) {
	if err := s.rdb.Del(ctx, catalogListCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}
