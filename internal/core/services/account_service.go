package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
	"livevip/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentOrder is the normalized webhook payload from the billing
// provider.
type PaymentOrder struct {
	OrderID    string
	Email      string
	PlanType   string
	Amount     float64
	Status     string
	ValidUntil time.Time
}

// AccountService resolves viewer entitlements and applies billing
// events to accounts.
type AccountService struct {
	users    ports.UserRepository
	payments ports.PaymentRepository
	logger   *zap.Logger
}

func NewAccountService(users ports.UserRepository, payments ports.PaymentRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:    users,
		payments: payments,
		logger:   logger,
	}
}

// CheckPremium resolves an email to its entitlement. Unknown emails
// resolve to a non-premium entitlement rather than an error; an expired
// premium window reads as non-premium.
func (s *AccountService) CheckPremium(ctx context.Context, email string) (*domain.Entitlement, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &domain.Entitlement{Email: email}, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return &domain.Entitlement{
		Email:        user.Email,
		Name:         user.Name,
		Premium:      user.PremiumActive(time.Now()),
		PremiumUntil: user.PremiumUntil,
	}, nil
}

// ApplyPayment records a billing order and, for a completed one, flips
// the account premium up to the order's expiry. Replayed order IDs are
// ignored.
func (s *AccountService) ApplyPayment(ctx context.Context, order PaymentOrder) error {
	if order.OrderID == "" || order.Email == "" {
		return fmt.Errorf("orderId and email are required")
	}

	if existing, err := s.payments.GetByOrderID(ctx, order.OrderID); err == nil && existing != nil {
		s.logger.Info("duplicate payment webhook ignored", zap.String("order_id", order.OrderID))
		return nil
	}

	email := utils.NormalizeEmail(order.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		user = &domain.User{
			ID:        uuid.New(),
			Email:     email,
			CreatedAt: time.Now(),
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	}

	payment := &domain.Payment{
		ID:         uuid.New(),
		UserID:     user.ID,
		OrderID:    order.OrderID,
		PlanType:   order.PlanType,
		Amount:     order.Amount,
		Status:     order.Status,
		ValidUntil: order.ValidUntil,
		CreatedAt:  time.Now(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	if order.Status != "completed" && order.Status != "approved" {
		s.logger.Info("payment recorded without premium grant",
			zap.String("order_id", order.OrderID),
			zap.String("status", order.Status))
		return nil
	}

	if err := s.users.SetPremium(ctx, email, order.ValidUntil); err != nil {
		return fmt.Errorf("failed to grant premium: %w", err)
	}

	s.logger.Info("premium granted",
		zap.String("email", email),
		zap.String("order_id", order.OrderID),
		zap.Time("valid_until", order.ValidUntil))
	return nil
}
