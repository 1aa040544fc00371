package services

import (
	"context"
	"testing"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/config"
	"lendflow-los/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, repositories.UserRepository) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret-key",
			Issuer:           "lendflow-test",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	userRepo := repositories.NewMemoryUserRepository()
	tokenRepo := repositories.NewMemoryRefreshTokenRepository()
	codec := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer)
	return NewAuthService(userRepo, tokenRepo, codec, cfg), userRepo
}

func registerInput() *RegisterInput {
	return &RegisterInput{
		Username: "somchai",
		Email:    "somchai@example.com",
		Password: "supersecret1",
		FullName: "Somchai Jaidee",
	}
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Equal(t, "somchai", resp.User.Username)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	dup := registerInput()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	dup = registerInput()
	dup.Username = "somying"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginInput{Username: "somchai", Password: "supersecret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &LoginInput{Username: "somchai", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, userRepo := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, userRepo.Update(ctx, user))

	_, err = svc.Login(ctx, &LoginInput{Username: "somchai", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is dead
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The new one still works
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)
	login, err := svc.Login(ctx, &LoginInput{Username: "somchai", Password: "supersecret1"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, registered.User.ID))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.Error(t, err)
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.Error(t, err)
}

func TestGetUserByID(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	require.NoError(t, err)

	user, err := svc.GetUserByID(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "somchai", user.Username)

	_, err = svc.GetUserByID(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
