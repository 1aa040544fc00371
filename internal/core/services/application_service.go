package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Application service errors
var (
	ErrApplicationNotFound = errors.New("loan application not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

var loanTypes = map[string]bool{
	models.LoanTypePersonal: true,
	models.LoanTypeAuto:     true,
	models.LoanTypeMortgage: true,
	models.LoanTypeBusiness: true,
}

// ApplicationService governs the loan application lifecycle:
// DRAFT -> SUBMITTED -> UNDER_REVIEW -> APPROVED | REJECTED
type ApplicationService struct {
	appRepo      repositories.LoanApplicationRepository
	historyRepo  repositories.StatusHistoryRepository
	customerRepo repositories.CustomerRepository
}

// NewApplicationService creates a new application service
func NewApplicationService(
	appRepo repositories.LoanApplicationRepository,
	historyRepo repositories.StatusHistoryRepository,
	customerRepo repositories.CustomerRepository,
) *ApplicationService {
	return &ApplicationService{
		appRepo:      appRepo,
		historyRepo:  historyRepo,
		customerRepo: customerRepo,
	}
}

// CreateApplicationInput represents create application input
type CreateApplicationInput struct {
	CustomerID          uint            `json:"customer_id"`
	LoanType            string          `json:"loan_type"`
	RequestedAmount     decimal.Decimal `json:"requested_amount"`
	RequestedTermMonths int             `json:"requested_term_months"`
	Purpose             string          `json:"purpose,omitempty"`
	SaveAsDraft         bool            `json:"save_as_draft"`
}

// Create creates a new loan application in DRAFT or SUBMITTED status
func (s *ApplicationService) Create(ctx context.Context, input *CreateApplicationInput, actorID uint) (*models.LoanApplication, error) {
	if input.CustomerID == 0 {
		return nil, domain.Validation("customer_id", "customer is required")
	}
	if !loanTypes[input.LoanType] {
		return nil, domain.Validation("loan_type", "unknown loan type")
	}
	if input.RequestedAmount.Sign() <= 0 {
		return nil, domain.Validation("requested_amount", "amount must be greater than 0")
	}
	if input.RequestedTermMonths <= 0 {
		return nil, domain.Validation("requested_term_months", "term must be greater than 0")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Validation("customer_id", "customer not found")
		}
		return nil, err
	}
	if !customer.IsActive() {
		return nil, domain.Validation("customer_id", "customer is not active")
	}

	status := models.StatusSubmitted
	var submittedAt *time.Time
	if input.SaveAsDraft {
		status = models.StatusDraft
	} else {
		now := time.Now()
		submittedAt = &now
	}

	app := &models.LoanApplication{
		ApplicationNumber:   generateApplicationNumber(),
		CustomerID:          input.CustomerID,
		LoanType:            input.LoanType,
		RequestedAmount:     input.RequestedAmount,
		RequestedTermMonths: input.RequestedTermMonths,
		Purpose:             input.Purpose,
		Status:              status,
		SubmittedAt:         submittedAt,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, app.ID, nil, status, "Application created", actorID)

	log.Printf("✅ Loan application created: %s [%s]", app.ApplicationNumber, status)
	return app, nil
}

// GetByID gets a loan application by ID
func (s *ApplicationService) GetByID(ctx context.Context, id uint) (*models.LoanApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// ListInput represents list input
type ListInput struct {
	Page       int
	Limit      int
	Status     string
	LoanType   string
	CustomerID *uint
}

// ListOutput represents list output
type ListOutput struct {
	Applications []*models.LoanApplication `json:"applications"`
	Total        int64                     `json:"total"`
	Page         int                       `json:"page"`
	Limit        int                       `json:"limit"`
	TotalPages   int                       `json:"total_pages"`
}

// List lists loan applications with filters and pagination
func (s *ApplicationService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	filter := &repositories.ApplicationFilter{
		Status:     input.Status,
		LoanType:   input.LoanType,
		CustomerID: input.CustomerID,
	}

	offset := (input.Page - 1) * input.Limit
	apps, total, err := s.appRepo.List(ctx, filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Applications: apps,
		Total:        total,
		Page:         input.Page,
		Limit:        input.Limit,
		TotalPages:   totalPages,
	}, nil
}

// ListByCustomer lists a customer's loan applications
func (s *ApplicationService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.LoanApplication, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.appRepo.ListByCustomer(ctx, customerID)
}

// Submit moves a draft application to SUBMITTED
func (s *ApplicationService) Submit(ctx context.Context, id uint, actorID uint) (*models.LoanApplication, error) {
	return s.transition(ctx, id, []string{models.StatusDraft}, models.StatusSubmitted, actorID, "Application submitted", func(now time.Time) map[string]interface{} {
		return map[string]interface{}{"submitted_at": &now}
	})
}

// StartReview moves a submitted application to UNDER_REVIEW
func (s *ApplicationService) StartReview(ctx context.Context, id uint, actorID uint) (*models.LoanApplication, error) {
	return s.transition(ctx, id, []string{models.StatusSubmitted}, models.StatusUnderReview, actorID, "Review started", nil)
}

// ApproveInput represents approve input
type ApproveInput struct {
	ApprovedAmount     decimal.Decimal `json:"approved_amount"`
	ApprovedTermMonths int             `json:"approved_term_months"`
	ApprovedRate       decimal.Decimal `json:"approved_rate"`
	Comment            string          `json:"comment,omitempty"`
}

// Approve approves an application from SUBMITTED or UNDER_REVIEW and records
// the approval terms.
func (s *ApplicationService) Approve(ctx context.Context, id uint, input *ApproveInput, actorID uint) (*models.LoanApplication, error) {
	if input.ApprovedAmount.Sign() <= 0 {
		return nil, domain.Validation("approved_amount", "amount must be greater than 0")
	}
	if input.ApprovedTermMonths <= 0 {
		return nil, domain.Validation("approved_term_months", "term must be greater than 0")
	}
	if input.ApprovedRate.Sign() < 0 {
		return nil, domain.Validation("approved_rate", "rate must not be negative")
	}

	comment := input.Comment
	if comment == "" {
		comment = "Application approved"
	}

	termMonths := input.ApprovedTermMonths
	return s.transition(ctx, id,
		[]string{models.StatusSubmitted, models.StatusUnderReview},
		models.StatusApproved, actorID, comment,
		func(now time.Time) map[string]interface{} {
			return map[string]interface{}{
				"approved_amount":      decimal.NewNullDecimal(input.ApprovedAmount),
				"approved_term_months": &termMonths,
				"approved_rate":        decimal.NewNullDecimal(input.ApprovedRate),
				"decision_comment":     comment,
				"decided_by":           &actorID,
				"decided_at":           &now,
			}
		})
}

// RejectInput represents reject input
type RejectInput struct {
	Comment string `json:"comment"`
}

// Reject rejects an application. Allowed from the same source states as
// Approve so the two decisions stay symmetric.
func (s *ApplicationService) Reject(ctx context.Context, id uint, input *RejectInput, actorID uint) (*models.LoanApplication, error) {
	if strings.TrimSpace(input.Comment) == "" {
		return nil, domain.Validation("comment", "rejection reason is required")
	}

	return s.transition(ctx, id,
		[]string{models.StatusSubmitted, models.StatusUnderReview},
		models.StatusRejected, actorID, input.Comment,
		func(now time.Time) map[string]interface{} {
			return map[string]interface{}{
				"decision_comment": input.Comment,
				"decided_by":       &actorID,
				"decided_at":       &now,
			}
		})
}

// GetHistory gets the transition history of an application
func (s *ApplicationService) GetHistory(ctx context.Context, id uint) ([]*models.StatusHistory, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByApplicationID(ctx, id)
}

// transition performs a guarded status change. The repository applies the
// update only while the row is still in one of allowedFrom, so a concurrent
// competing transition loses and surfaces as ErrInvalidTransition.
func (s *ApplicationService) transition(
	ctx context.Context,
	id uint,
	allowedFrom []string,
	to string,
	actorID uint,
	comment string,
	extra func(now time.Time) map[string]interface{},
) (*models.LoanApplication, error) {
	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{"status": to}
	if extra != nil {
		for column, value := range extra(now) {
			updates[column] = value
		}
	}

	ok, err := s.appRepo.UpdateStatusFrom(ctx, id, allowedFrom, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	fromStatus := app.Status
	s.recordHistory(ctx, id, &fromStatus, to, comment, actorID)

	log.Printf("✅ Application %s: %s → %s", app.ApplicationNumber, fromStatus, to)
	return s.GetByID(ctx, id)
}

func (s *ApplicationService) recordHistory(ctx context.Context, appID uint, from *string, to, comment string, actorID uint) {
	history := &models.StatusHistory{
		ApplicationID: appID,
		FromStatus:    from,
		ToStatus:      to,
		Comment:       comment,
		PerformedBy:   actorID,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		log.Printf("⚠️ Failed to record status history for application %d: %v", appID, err)
	}
}

// generateApplicationNumber builds a unique human-readable number,
// e.g. LA-20260830-1A2B3C4D
func generateApplicationNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("LA-%s-%s", time.Now().Format("20060102"), suffix)
}
