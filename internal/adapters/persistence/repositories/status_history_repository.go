package repositories

import (
	"context"

	"lendflow-los/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// statusHistoryRepository implements StatusHistoryRepository interface
type statusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository creates a new status history repository
func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

// Create records a status transition
func (r *statusHistoryRepository) Create(ctx context.Context, history *models.StatusHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// GetByApplicationID gets the transition history of an application in
// chronological order
func (r *statusHistoryRepository) GetByApplicationID(ctx context.Context, applicationID uint) ([]*models.StatusHistory, error) {
	var histories []*models.StatusHistory
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&histories).Error
	return histories, err
}
