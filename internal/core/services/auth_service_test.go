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
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, ttl time.Duration) AuthService {
	admins := memory.NewAdminRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, admins.Create(context.Background(), &domain.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@livevip.com",
		PasswordHash: string(hash),
		Name:         "Administrador",
		CreatedAt:    time.Now(),
	}))
	return NewAuthService(admins, "test-secret", ttl)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token, admin, err := svc.Login(context.Background(), "admin@livevip.com", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin@livevip.com", admin.Email)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@livevip.com", claims.Email)
	assert.Equal(t, admin.ID.String(), claims.AdminID)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	_, _, err := svc.Login(context.Background(), "admin@livevip.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ghost@livevip.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret.
	other := NewAuthService(memory.NewAdminRepository(), "other-secret", time.Hour)
	foreign, err := other.GenerateToken(&domain.AdminUser{ID: uuid.New(), Email: "x@y.com"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	svc := newTestAuthService(t, -time.Minute)

	token, _, err := svc.Login(context.Background(), "admin@livevip.com", "admin123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
