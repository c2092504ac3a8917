package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a viewer account as stored by the backend.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Premium      bool       `json:"isPremium"`
	PremiumUntil *time.Time `json:"premiumUntil,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// PremiumActive reports whether the premium flag is currently in effect,
// taking the expiry into account.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.Premium {
		return false
	}
	if u.PremiumUntil == nil {
		return true
	}
	return u.PremiumUntil.After(now)
}

// AdminUser can mutate the stream catalog.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Payment is one processed billing order, recorded from the payment
// provider's webhook.
type Payment struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	OrderID    string    `json:"orderId"`
	PlanType   string    `json:"planType"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	ValidUntil time.Time `json:"validUntil"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Entitlement is the resolved premium status for one viewer identity.
// It is held by the viewing session and only ever replaced by a fresh
// resolution or an explicit local upgrade.
type Entitlement struct {
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	Premium      bool       `json:"isPremium"`
	PremiumUntil *time.Time `json:"premiumUntil,omitempty"`
}

// Anonymous is the entitlement of a viewer who never logged in.
func Anonymous() Entitlement {
	return Entitlement{}
}

// StoredSession is the single durable key persisted on the viewer's
// device between sessions.
type StoredSession struct {
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	Premium      bool       `json:"isPremium"`
	PremiumUntil *time.Time `json:"premiumUntil,omitempty"`
}

// Entitlement converts the stored session back into a live entitlement.
func (s *StoredSession) Entitlement() Entitlement {
	return Entitlement{
		Email:        s.Email,
		Name:         s.Name,
		Premium:      s.Premium,
		PremiumUntil: s.PremiumUntil,
	}
}
