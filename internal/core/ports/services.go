package ports

import (
	"context"

	"livevip/internal/core/domain"
)

// CreateStreamInput carries the admin create payload. Title, Thumbnail
// and StreamerName are required; everything else defaults server-side.
type CreateStreamInput struct {
	Title          string
	Thumbnail      string
	VideoURL       string
	StreamerName   string
	StreamerAvatar string
	Category       string
	ViewerCount    int
	VIPOnly        bool
}

// UpdateStreamInput is a partial patch; nil fields are left untouched.
type UpdateStreamInput struct {
	Title          *string
	Thumbnail      *string
	VideoURL       *string
	StreamerName   *string
	StreamerAvatar *string
	Category       *string
	ViewerCount    *int
	VIPOnly        *bool
	Live           *bool
}

// CatalogService is the server-side catalog surface consumed by the
// HTTP handlers and the seeding routine.
type CatalogService interface {
	CreateStream(ctx context.Context, in CreateStreamInput) (*domain.Stream, error)
	GetStream(ctx context.Context, id domain.StreamID) (*domain.Stream, error)
	UpdateStream(ctx context.Context, id domain.StreamID, in UpdateStreamInput) (*domain.Stream, error)
	DeleteStream(ctx context.Context, id domain.StreamID) error
	ListStreams(ctx context.Context) ([]domain.Stream, error)
}

// CatalogNotifier is told about catalog mutations so connected clients
// can be nudged ahead of their next poll.
type CatalogNotifier interface {
	CatalogChanged(event string, stream *domain.Stream)
}
