package repositories

import (
	"context"

	"lendflow-los/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loanApplicationRepository implements LoanApplicationRepository interface
type loanApplicationRepository struct {
	db *gorm.DB
}

// NewLoanApplicationRepository creates a new loan application repository
func NewLoanApplicationRepository(db *gorm.DB) LoanApplicationRepository {
	return &loanApplicationRepository{db: db}
}

// Create creates a new loan application
func (r *loanApplicationRepository) Create(ctx context.Context, app *models.LoanApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets a loan application by ID with relations
func (r *loanApplicationRepository) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	var app models.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Decider").
		First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByNumber gets a loan application by its application number
func (r *loanApplicationRepository) GetByNumber(ctx context.Context, number string) (*models.LoanApplication, error) {
	var app models.LoanApplication
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("application_number = ?", number).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List lists loan applications with filters and pagination
func (r *loanApplicationRepository) List(ctx context.Context, filter *ApplicationFilter, offset, limit int) ([]*models.LoanApplication, int64, error) {
	var apps []*models.LoanApplication
	var total int64

	query := r.db.WithContext(ctx).Model(&models.LoanApplication{})
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.LoanType != "" {
			query = query.Where("loan_type = ?", filter.LoanType)
		}
		if filter.CustomerID != nil {
			query = query.Where("customer_id = ?", *filter.CustomerID)
		}
	}

	query.Count(&total)

	err := query.
		Preload("Customer").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error

	return apps, total, err
}

// ListByCustomer lists a customer's loan applications
func (r *loanApplicationRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.LoanApplication, error) {
	var apps []*models.LoanApplication
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// UpdateStatusFrom applies updates only if the current status is one of
// allowedFrom. The WHERE clause makes the transition a compare-and-swap at
// the row level; a false return means the application was concurrently moved
// or was never in an allowed state.
func (r *loanApplicationRepository) UpdateStatusFrom(ctx context.Context, id uint, allowedFrom []string, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Where("id = ? AND status IN ?", id, allowedFrom).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus counts applications grouped by status
func (r *loanApplicationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// SumRequestedAmount sums requested amounts across all applications
func (r *loanApplicationRepository) SumRequestedAmount(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "requested_amount", nil)
}

// SumApprovedAmount sums approved amounts across approved applications
func (r *loanApplicationRepository) SumApprovedAmount(ctx context.Context) (decimal.Decimal, error) {
	status := models.StatusApproved
	return r.sumColumn(ctx, "approved_amount", &status)
}

func (r *loanApplicationRepository) sumColumn(ctx context.Context, column string, status *string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	query := r.db.WithContext(ctx).
		Model(&models.LoanApplication{}).
		Select("COALESCE(SUM(" + column + "), 0)")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
