package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/core/domain"

	"gorm.io/gorm"
)

// Customer service errors
var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
	ErrInvalidKYCTransition  = errors.New("invalid KYC status transition")
)

// kycTransitions is the directed graph of allowed KYC status changes.
// VERIFIED is terminal; a rejected customer can be re-reviewed.
var kycTransitions = map[string][]string{
	models.KYCStatusPending:  {models.KYCStatusInReview, models.KYCStatusVerified, models.KYCStatusRejected},
	models.KYCStatusInReview: {models.KYCStatusVerified, models.KYCStatusRejected},
	models.KYCStatusRejected: {models.KYCStatusInReview},
	models.KYCStatusVerified: {},
}

var customerStatuses = map[string]bool{
	models.CustomerStatusActive:      true,
	models.CustomerStatusInactive:    true,
	models.CustomerStatusBlacklisted: true,
}

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents create customer input
type CreateCustomerInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id"`
}

// Create creates a new customer with KYC pending
func (s *CustomerService) Create(ctx context.Context, input *CreateCustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, domain.Validation("first_name", "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return nil, domain.Validation("last_name", "last name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, domain.Validation("email", "email is required")
	}
	if strings.TrimSpace(input.NationalID) == "" {
		return nil, domain.Validation("national_id", "national ID is required")
	}

	exists, err := s.customerRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCustomerAlreadyExists
	}

	exists, err = s.customerRepo.ExistsByNationalID(ctx, input.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCustomerAlreadyExists
	}

	customer := &models.Customer{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		NationalID: strings.TrimSpace(input.NationalID),
		Status:     models.CustomerStatusActive,
		KYCStatus:  models.KYCStatusPending,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	log.Printf("✅ Customer created: %s %s (ID: %d)", customer.FirstName, customer.LastName, customer.ID)
	return customer, nil
}

// GetByID gets a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// List lists customers with pagination
func (s *CustomerService) List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error) {
	return s.customerRepo.List(ctx, offset, limit)
}

// UpdateCustomerInput represents update customer input
type UpdateCustomerInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Update updates customer details and status
func (s *CustomerService) Update(ctx context.Context, id uint, input *UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		customer.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Status != nil {
		if !customerStatuses[*input.Status] {
			return nil, domain.Validation("status", "unknown customer status")
		}
		customer.Status = *input.Status
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// UpdateKYC transitions a customer's KYC status along the allowed graph
func (s *CustomerService) UpdateKYC(ctx context.Context, id uint, newStatus string) (*models.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, status := range kycTransitions[customer.KYCStatus] {
		if status == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidKYCTransition
	}

	customer.KYCStatus = newStatus
	if newStatus == models.KYCStatusVerified {
		now := time.Now()
		customer.KYCVerifiedAt = &now
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	log.Printf("✅ Customer %d KYC status: %s", customer.ID, newStatus)
	return customer, nil
}
