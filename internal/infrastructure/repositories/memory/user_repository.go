package memory

import (
	"context"
	"sync"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() ports.UserRepository {
	return &UserRepository{
		users: make(map[string]*domain.User),
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[email]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *UserRepository) SetPremium(ctx context.Context, email string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return domain.ErrUserNotFound
	}
	user.Premium = true
	user.PremiumUntil = &until
	return nil
}

type AdminRepository struct {
	mu     sync.RWMutex
	admins map[string]*domain.AdminUser
}

func NewAdminRepository() ports.AdminRepository {
	return &AdminRepository{
		admins: make(map[string]*domain.AdminUser),
	}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, exists := r.admins[email]
	if !exists {
		return nil, domain.ErrAdminNotFound
	}
	a := *admin
	return &a, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := *admin
	r.admins[admin.Email] = &a
	return nil
}

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

func NewPaymentRepository() ports.PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]*domain.Payment),
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *payment
	r.payments[payment.OrderID] = &p
	return nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, exists := r.payments[orderID]
	if !exists {
		return nil, domain.ErrPaymentNotFound
	}
	p := *payment
	return &p, nil
}
