package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"lendflow-los/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory implementations of the repository interfaces, used by unit tests
// and local tooling. They mirror the GORM implementations' semantics,
// including gorm.ErrRecordNotFound on misses and the conditional status
// update, so services behave identically against either backend.

// ============================================================
// Users
// ============================================================

type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*models.User
	nextID uint
}

// NewMemoryUserRepository creates an in-memory user repository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *memoryUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ============================================================
// Refresh tokens
// ============================================================

type memoryRefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[uint]*models.RefreshToken
	nextID uint
}

// NewMemoryRefreshTokenRepository creates an in-memory refresh token repository
func NewMemoryRefreshTokenRepository() RefreshTokenRepository {
	return &memoryRefreshTokenRepository{tokens: make(map[uint]*models.RefreshToken), nextID: 1}
}

func (r *memoryRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = r.nextID
	r.nextID++
	token.CreatedAt = time.Now()

	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *memoryRefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.RevokedAt == nil {
			clone := *token
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRefreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *memoryRefreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *memoryRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *memoryRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	now := time.Now()
	for id, token := range r.tokens {
		if token.ExpiresAt.Before(now) {
			delete(r.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

// ============================================================
// Customers
// ============================================================

type memoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[uint]*models.Customer
	nextID    uint
}

// NewMemoryCustomerRepository creates an in-memory customer repository
func NewMemoryCustomerRepository() CustomerRepository {
	return &memoryCustomerRepository{customers: make(map[uint]*models.Customer), nextID: 1}
}

func (r *memoryCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer.ID = r.nextID
	r.nextID++
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *memoryCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *memoryCustomerRepository) List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		clone := *customer
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *memoryCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	customer.UpdatedAt = time.Now()
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *memoryCustomerRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.customers, id)
	return nil
}

func (r *memoryCustomerRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.customers)), nil
}

func (r *memoryCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryCustomerRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================
// Loan applications
// ============================================================

type memoryLoanApplicationRepository struct {
	mu     sync.RWMutex
	apps   map[uint]*models.LoanApplication
	nextID uint
}

// NewMemoryLoanApplicationRepository creates an in-memory loan application repository
func NewMemoryLoanApplicationRepository() LoanApplicationRepository {
	return &memoryLoanApplicationRepository{apps: make(map[uint]*models.LoanApplication), nextID: 1}
}

func (r *memoryLoanApplicationRepository) Create(ctx context.Context, app *models.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app.ID = r.nextID
	r.nextID++
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt

	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *memoryLoanApplicationRepository) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *memoryLoanApplicationRepository) GetByNumber(ctx context.Context, number string) (*models.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, app := range r.apps {
		if app.ApplicationNumber == number {
			clone := *app
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryLoanApplicationRepository) List(ctx context.Context, filter *ApplicationFilter, offset, limit int) ([]*models.LoanApplication, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*models.LoanApplication
	for _, app := range r.apps {
		if filter != nil {
			if filter.Status != "" && app.Status != filter.Status {
				continue
			}
			if filter.LoanType != "" && app.LoanType != filter.LoanType {
				continue
			}
			if filter.CustomerID != nil && app.CustomerID != *filter.CustomerID {
				continue
			}
		}
		clone := *app
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *memoryLoanApplicationRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.LoanApplication, error) {
	apps, _, err := r.List(ctx, &ApplicationFilter{CustomerID: &customerID}, 0, 0)
	return apps, err
}

func (r *memoryLoanApplicationRepository) UpdateStatusFrom(ctx context.Context, id uint, allowedFrom []string, updates map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return false, nil
	}

	allowed := false
	for _, status := range allowedFrom {
		if app.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, nil
	}

	for column, value := range updates {
		switch column {
		case "status":
			app.Status = value.(string)
		case "submitted_at":
			app.SubmittedAt = value.(*time.Time)
		case "approved_amount":
			app.ApprovedAmount = value.(decimal.NullDecimal)
		case "approved_term_months":
			app.ApprovedTermMonths = value.(*int)
		case "approved_rate":
			app.ApprovedRate = value.(decimal.NullDecimal)
		case "decision_comment":
			app.DecisionComment = value.(string)
		case "decided_by":
			app.DecidedBy = value.(*uint)
		case "decided_at":
			app.DecidedAt = value.(*time.Time)
		}
	}
	app.UpdatedAt = time.Now()
	return true, nil
}

func (r *memoryLoanApplicationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, app := range r.apps {
		counts[app.Status]++
	}
	return counts, nil
}

func (r *memoryLoanApplicationRepository) SumRequestedAmount(ctx context.Context) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, app := range r.apps {
		sum = sum.Add(app.RequestedAmount)
	}
	return sum, nil
}

func (r *memoryLoanApplicationRepository) SumApprovedAmount(ctx context.Context) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, app := range r.apps {
		if app.Status == models.StatusApproved && app.ApprovedAmount.Valid {
			sum = sum.Add(app.ApprovedAmount.Decimal)
		}
	}
	return sum, nil
}

// ============================================================
// Status histories
// ============================================================

type memoryStatusHistoryRepository struct {
	mu        sync.RWMutex
	histories []*models.StatusHistory
	nextID    uint
}

// NewMemoryStatusHistoryRepository creates an in-memory status history repository
func NewMemoryStatusHistoryRepository() StatusHistoryRepository {
	return &memoryStatusHistoryRepository{nextID: 1}
}

func (r *memoryStatusHistoryRepository) Create(ctx context.Context, history *models.StatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history.ID = r.nextID
	r.nextID++
	history.CreatedAt = time.Now()

	clone := *history
	r.histories = append(r.histories, &clone)
	return nil
}

func (r *memoryStatusHistoryRepository) GetByApplicationID(ctx context.Context, applicationID uint) ([]*models.StatusHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.StatusHistory
	for _, history := range r.histories {
		if history.ApplicationID == applicationID {
			clone := *history
			result = append(result, &clone)
		}
	}
	return result, nil
}

func paginate[T any](items []*T, offset, limit int) []*T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
