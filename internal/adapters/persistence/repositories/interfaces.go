package repositories

import (
	"context"

	"lendflow-los/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
}

// ApplicationFilter narrows application listings
type ApplicationFilter struct {
	Status     string
	LoanType   string
	CustomerID *uint
}

// LoanApplicationRepository defines loan application repository interface.
// UpdateStatusFrom is the conditional write every status transition goes
// through: the row is only updated when its current status is still one of
// allowedFrom, so two concurrent transitions cannot both win.
type LoanApplicationRepository interface {
	Create(ctx context.Context, app *models.LoanApplication) error
	GetByID(ctx context.Context, id uint) (*models.LoanApplication, error)
	GetByNumber(ctx context.Context, number string) (*models.LoanApplication, error)
	List(ctx context.Context, filter *ApplicationFilter, offset, limit int) ([]*models.LoanApplication, int64, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.LoanApplication, error)
	UpdateStatusFrom(ctx context.Context, id uint, allowedFrom []string, updates map[string]interface{}) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumRequestedAmount(ctx context.Context) (decimal.Decimal, error)
	SumApprovedAmount(ctx context.Context) (decimal.Decimal, error)
}

// StatusHistoryRepository defines status history repository interface
type StatusHistoryRepository interface {
	Create(ctx context.Context, history *models.StatusHistory) error
	GetByApplicationID(ctx context.Context, applicationID uint) ([]*models.StatusHistory, error)
}
