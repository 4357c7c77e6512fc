package service

import (
	"context"
	"testing"

	"champ-voting-be/internal/config"
	"champ-voting-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) IAuthService {
	t.Helper()
	deps := newTestDeps(t)
	cfg := &config.Config{}
	cfg.Auth.JwtSecret = "test-secret"
	cfg.Auth.JwtExpiryHours = 1
	cfg.Auth.AdminEmail = "admin@example.com"
	return NewAuthService(deps.factory, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "voter@example.com",
		FullName: "Voter One",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "voter@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, res.Id, login.User.Id)
	assert.False(t, login.User.IsAdmin)

	// The token carries user_id and email claims
	token, err := jwt.Parse(login.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.Id.String(), claims["user_id"])
	assert.Equal(t, "voter@example.com", claims["email"])
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "voter@example.com",
		FullName: "Voter One",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "voter@example.com",
		FullName: "Voter Two",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "voter@example.com",
		FullName: "Voter One",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "voter@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIsAdminMatchesConfiguredEmailOnly(t *testing.T) {
	svc := newAuthFixture(t)

	assert.True(t, svc.IsAdmin("admin@example.com"))
	assert.False(t, svc.IsAdmin("voter@example.com"))
	assert.False(t, svc.IsAdmin(""))
}
