package postgres

import (
	"context"
	"errors"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StreamRepository struct {
	pool *pgxpool.Pool
}

func NewStreamRepository(pool *pgxpool.Pool) ports.StreamRepository {
	return &StreamRepository{pool: pool}
}

func (r *StreamRepository) Create(ctx context.Context, s *domain.Stream) error {
	const q = `INSERT INTO streams (id, title, thumbnail, video_url, streamer_name, streamer_avatar, category, viewer_count, is_vip_only, is_live, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, q,
		string(s.ID), s.Title, s.Thumbnail, s.VideoURL, s.StreamerName, s.StreamerAvatar,
		s.Category, s.ViewerCount, s.VIPOnly, s.Live, s.CreatedAt)
	return err
}

func (r *StreamRepository) GetByID(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	const q = `SELECT id, title, thumbnail, video_url, streamer_name, streamer_avatar, category, viewer_count, is_vip_only, is_live, created_at
		FROM streams WHERE id = $1`
	var s domain.Stream
	err := r.pool.QueryRow(ctx, q, string(id)).Scan(
		&s.ID, &s.Title, &s.Thumbnail, &s.VideoURL, &s.StreamerName, &s.StreamerAvatar,
		&s.Category, &s.ViewerCount, &s.VIPOnly, &s.Live, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStreamNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StreamRepository) Update(ctx context.Context, s *domain.Stream) error {
	const q = `UPDATE streams SET title = $2, thumbnail = $3, video_url = $4, streamer_name = $5, streamer_avatar = $6,
		category = $7, viewer_count = $8, is_vip_only = $9, is_live = $10 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q,
		string(s.ID), s.Title, s.Thumbnail, s.VideoURL, s.StreamerName, s.StreamerAvatar,
		s.Category, s.ViewerCount, s.VIPOnly, s.Live)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStreamNotFound
	}
	return nil
}

func (r *StreamRepository) Delete(ctx context.Context, id domain.StreamID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM streams WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStreamNotFound
	}
	return nil
}

func (r *StreamRepository) List(ctx context.Context) ([]domain.Stream, error) {
	const q = `SELECT id, title, thumbnail, video_url, streamer_name, streamer_avatar, category, viewer_count, is_vip_only, is_live, created_at
		FROM streams ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Stream
	for rows.Next() {
		var s domain.Stream
		if err := rows.Scan(&s.ID, &s.Title, &s.Thumbnail, &s.VideoURL, &s.StreamerName, &s.StreamerAvatar,
			&s.Category, &s.ViewerCount, &s.VIPOnly, &s.Live, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StreamRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM streams`).Scan(&n)
	return n, err
}
