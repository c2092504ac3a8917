package ports

import (
	"time"

	"livevip/internal/core/domain"
)

// TimerHandle is a scoped timer acquisition. Cancel must be safe to call
// more than once and after the timer has fired.
type TimerHandle interface {
	Cancel()
}

// Scheduler owns every timer the session engine acquires. Each handle is
// cancelled on every exit path from its owning scope so orphaned
// callbacks cannot mutate stale state. Tests substitute a manual fake.
type Scheduler interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) TimerHandle
	// Every runs fn repeatedly at interval d until cancelled.
	Every(d time.Duration, fn func()) TimerHandle
}

// Clock isolates wall-clock reads so tests can use a logical clock.
type Clock interface {
	Now() time.Time
}

// SessionStore persists the single local session key between runs.
// Load returns domain.ErrStoredSessionUnreadable when the stored value
// cannot be parsed; callers discard it and fall back to anonymous.
type SessionStore interface {
	Load() (*domain.StoredSession, error)
	Save(session *domain.StoredSession) error
	Clear() error
}
