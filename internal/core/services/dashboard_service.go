package services

import (
	"context"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
)

// DashboardService aggregates portfolio statistics
type DashboardService struct {
	appRepo      repositories.LoanApplicationRepository
	customerRepo repositories.CustomerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	appRepo repositories.LoanApplicationRepository,
	customerRepo repositories.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		appRepo:      appRepo,
		customerRepo: customerRepo,
	}
}

// Stats represents dashboard statistics
type Stats struct {
	TotalApplications    int64            `json:"total_applications"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	TotalRequestedAmount decimal.Decimal  `json:"total_requested_amount"`
	TotalApprovedAmount  decimal.Decimal  `json:"total_approved_amount"`
	TotalCustomers       int64            `json:"total_customers"`
}

// GetStats collects application and customer statistics
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	byStatus, err := s.appRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	// Zero-fill so every lifecycle status appears in the response
	for _, status := range []string{
		models.StatusDraft,
		models.StatusSubmitted,
		models.StatusUnderReview,
		models.StatusApproved,
		models.StatusRejected,
	} {
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = 0
		}
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	requested, err := s.appRepo.SumRequestedAmount(ctx)
	if err != nil {
		return nil, err
	}

	approved, err := s.appRepo.SumApprovedAmount(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalApplications:    total,
		ApplicationsByStatus: byStatus,
		TotalRequestedAmount: requested,
		TotalApprovedAmount:  approved,
		TotalCustomers:       customers,
	}, nil
}
