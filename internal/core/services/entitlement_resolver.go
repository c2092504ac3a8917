package services

import (
	"context"
	"sync"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"go.uber.org/zap"
)

// EntitlementResolver resolves premium entitlement from the backend and
// never downgrades on a transient failure. Each resolution carries a
// monotonic sequence token; a response that arrives after a newer
// resolution was issued is discarded, so rapid re-logins cannot apply
// out of order.
type EntitlementResolver struct {
	mu sync.Mutex

	source ports.EntitlementSource
	store  ports.SessionStore
	logger *zap.Logger

	current domain.Entitlement
	seq     uint64
}

func NewEntitlementResolver(source ports.EntitlementSource, store ports.SessionStore, logger *zap.Logger) *EntitlementResolver {
	return &EntitlementResolver{
		source:  source,
		store:   store,
		logger:  logger,
		current: domain.Anonymous(),
	}
}

// LoadStored restores the persisted session at startup. A corrupt
// value is discarded and the resolver stays anonymous.
func (r *EntitlementResolver) LoadStored() domain.Entitlement {
	stored, err := r.store.Load()
	if err != nil {
		r.logger.Warn("stored session unreadable, falling back to anonymous", zap.Error(err))
		_ = r.store.Clear()
		return r.Current()
	}
	if stored == nil {
		return r.Current()
	}

	r.mu.Lock()
	r.current = stored.Entitlement()
	ent := r.current
	r.mu.Unlock()
	return ent
}

// Current returns the held entitlement snapshot.
func (r *EntitlementResolver) Current() domain.Entitlement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Resolve checks the entitlement for email against the backend. On
// failure the prior snapshot is returned unchanged; no retry is
// scheduled. A stale response (superseded by a later Resolve) is
// discarded even when successful.
func (r *EntitlementResolver) Resolve(ctx context.Context, email string) domain.Entitlement {
	r.mu.Lock()
	r.seq++
	token := r.seq
	r.mu.Unlock()

	ent, err := r.source.CheckPremium(ctx, email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.seq {
		r.logger.Debug("discarding stale entitlement response", zap.String("email", email))
		return r.current
	}
	if err != nil {
		r.logger.Warn("entitlement check failed, keeping previous snapshot",
			zap.String("email", email), zap.Error(err))
		return r.current
	}

	if ent.Name == "" && r.current.Email == ent.Email {
		ent.Name = r.current.Name
	}
	r.current = *ent
	r.persistLocked()
	return r.current
}

// SetLocal applies an optimistic local entitlement (e.g. right after an
// upgrade action) and persists it. Callers reconcile asynchronously via
// Resolve.
func (r *EntitlementResolver) SetLocal(ent domain.Entitlement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = ent
	r.persistLocked()
}

func (r *EntitlementResolver) persistLocked() {
	if r.current.Email == "" {
		return
	}
	err := r.store.Save(&domain.StoredSession{
		Email:        r.current.Email,
		Name:         r.current.Name,
		Premium:      r.current.Premium,
		PremiumUntil: r.current.PremiumUntil,
	})
	if err != nil {
		r.logger.Warn("failed to persist session", zap.Error(err))
	}
}
