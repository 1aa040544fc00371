package services

import (
	"context"
	"log"

	"lendflow-los/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// cleanupSchedule runs the token sweep daily at 03:30
const cleanupSchedule = "30 3 * * *"

// MaintenanceService runs scheduled housekeeping jobs
type MaintenanceService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(refreshTokenRepo repositories.RefreshTokenRepository) *MaintenanceService {
	return &MaintenanceService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the daily cleanup (03:30)
func (s *MaintenanceService) Start() {
	if _, err := s.cron.AddFunc(cleanupSchedule, s.CleanupExpiredTokens); err != nil {
		log.Printf("⚠️ Failed to schedule token cleanup: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ Maintenance cron started (token cleanup daily at 03:30)")
}

// Stop stops the scheduler
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
}

// CleanupExpiredTokens deletes refresh tokens past their expiry
func (s *MaintenanceService) CleanupExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("⚠️ Token cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Token cleanup removed %d expired refresh tokens", deleted)
	}
}
