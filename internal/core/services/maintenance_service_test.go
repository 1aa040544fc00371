package services

import (
	"context"
	"testing"
	"time"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupScheduleIsParseable(t *testing.T) {
	_, err := cron.ParseStandard(cleanupSchedule)
	require.NoError(t, err)
}

func TestCleanupExpiredTokens(t *testing.T) {
	repo := repositories.NewMemoryRefreshTokenRepository()
	ctx := context.Background()

	expired := &models.RefreshToken{
		UserID:    1,
		TokenHash: "expired-hash",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := &models.RefreshToken{
		UserID:    1,
		TokenHash: "live-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.Create(ctx, live))

	svc := NewMaintenanceService(repo)
	svc.CleanupExpiredTokens()

	_, err := repo.GetByTokenHash(ctx, "expired-hash")
	assert.Error(t, err)

	kept, err := repo.GetByTokenHash(ctx, "live-hash")
	require.NoError(t, err)
	assert.Equal(t, live.TokenHash, kept.TokenHash)
}
