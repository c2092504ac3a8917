package services

import (
	"context"
	"testing"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/infrastructure/repositories/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestAccountService(t *testing.T) *AccountService {
	return NewAccountService(memory.NewUserRepository(), memory.NewPaymentRepository(), zaptest.NewLogger(t))
}

func TestAccountService_CheckPremiumUnknownEmail(t *testing.T) {
	svc := newTestAccountService(t)

	ent, err := svc.CheckPremium(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ent.Premium)
	assert.Equal(t, "nobody@example.com", ent.Email)
}

func TestAccountService_CheckPremiumNormalizesEmail(t *testing.T) {
	svc := newTestAccountService(t)
	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, svc.users.Upsert(context.Background(), &domain.User{
		ID: uuid.New(), Email: "ana@example.com", Name: "Ana", Premium: true, PremiumUntil: &until,
	}))

	ent, err := svc.CheckPremium(context.Background(), "  ANA@Example.COM ")
	require.NoError(t, err)
	assert.True(t, ent.Premium)
	assert.Equal(t, "Ana", ent.Name)
}

func TestAccountService_CheckPremiumExpiredWindow(t *testing.T) {
	svc := newTestAccountService(t)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, svc.users.Upsert(context.Background(), &domain.User{
		ID: uuid.New(), Email: "ex@example.com", Premium: true, PremiumUntil: &past,
	}))

	ent, err := svc.CheckPremium(context.Background(), "ex@example.com")
	require.NoError(t, err)
	assert.False(t, ent.Premium)
}

func TestAccountService_ApplyPaymentGrantsPremium(t *testing.T) {
	svc := newTestAccountService(t)
	until := time.Now().Add(30 * 24 * time.Hour)

	err := svc.ApplyPayment(context.Background(), PaymentOrder{
		OrderID:    "order-1",
		Email:      "novo@example.com",
		PlanType:   "monthly",
		Amount:     49.90,
		Status:     "completed",
		ValidUntil: until,
	})
	require.NoError(t, err)

	ent, err := svc.CheckPremium(context.Background(), "novo@example.com")
	require.NoError(t, err)
	assert.True(t, ent.Premium)
}

func TestAccountService_ApplyPaymentDuplicateIgnored(t *testing.T) {
	svc := newTestAccountService(t)
	until := time.Now().Add(30 * 24 * time.Hour)
	order := PaymentOrder{
		OrderID: "order-1", Email: "a@example.com", Status: "completed", ValidUntil: until,
	}

	require.NoError(t, svc.ApplyPayment(context.Background(), order))
	require.NoError(t, svc.ApplyPayment(context.Background(), order))

	_, err := svc.payments.GetByOrderID(context.Background(), "order-1")
	require.NoError(t, err)
}

func TestAccountService_ApplyPaymentNonCompletedRecordsOnly(t *testing.T) {
	svc := newTestAccountService(t)

	err := svc.ApplyPayment(context.Background(), PaymentOrder{
		OrderID: "order-2", Email: "b@example.com", Status: "pending",
		ValidUntil: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	ent, err := svc.CheckPremium(context.Background(), "b@example.com")
	require.NoError(t, err)
	assert.False(t, ent.Premium)

	_, err = svc.payments.GetByOrderID(context.Background(), "order-2")
	assert.NoError(t, err)
}
