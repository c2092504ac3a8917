package ports

import (
	"context"

	"livevip/internal/core/domain"
)

// CatalogSource fetches the full stream catalog from the backend.
// Implementations return the complete ordered list; callers replace
// their copy wholesale.
type CatalogSource interface {
	FetchStreams(ctx context.Context) ([]domain.Stream, error)
}

// EntitlementSource resolves a viewer's premium entitlement by email.
type EntitlementSource interface {
	CheckPremium(ctx context.Context, email string) (*domain.Entitlement, error)
}
