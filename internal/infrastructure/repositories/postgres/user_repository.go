package postgres

import (
	"context"
	"errors"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT id, email, name, is_premium, premium_until, created_at FROM users WHERE email = $1`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Name, &u.Premium, &u.PremiumUntil, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) error {
	const q = `INSERT INTO users (id, email, name, is_premium, premium_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, is_premium = EXCLUDED.is_premium, premium_until = EXCLUDED.premium_until`
	_, err := r.pool.Exec(ctx, q, u.ID, u.Email, u.Name, u.Premium, u.PremiumUntil, u.CreatedAt)
	return err
}

func (r *UserRepository) SetPremium(ctx context.Context, email string, until time.Time) error {
	const q = `UPDATE users SET is_premium = TRUE, premium_until = $2 WHERE email = $1`
	tag, err := r.pool.Exec(ctx, q, email, until)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) ports.AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const q = `SELECT id, email, password_hash, name, created_at FROM admin_users WHERE email = $1`
	var a domain.AdminUser
	err := r.pool.QueryRow(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.AdminUser) error {
	const q = `INSERT INTO admin_users (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING`
	_, err := r.pool.Exec(ctx, q, a.ID, a.Email, a.PasswordHash, a.Name, a.CreatedAt)
	return err
}

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) ports.PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	const q = `INSERT INTO payments (id, user_id, order_id, plan_type, amount, status, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, q, p.ID, p.UserID, p.OrderID, p.PlanType, p.Amount, p.Status, p.ValidUntil, p.CreatedAt)
	return err
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	const q = `SELECT id, user_id, order_id, plan_type, amount, status, valid_until, created_at FROM payments WHERE order_id = $1`
	var p domain.Payment
	err := r.pool.QueryRow(ctx, q, orderID).Scan(&p.ID, &p.UserID, &p.OrderID, &p.PlanType, &p.Amount, &p.Status, &p.ValidUntil, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}
