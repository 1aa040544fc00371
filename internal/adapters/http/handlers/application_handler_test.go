package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/core/services"
	"lendflow-los/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	app          *fiber.App
	appService   *services.ApplicationService
	customerRepo repositories.CustomerRepository
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	appRepo := repositories.NewMemoryLoanApplicationRepository()
	historyRepo := repositories.NewMemoryStatusHistoryRepository()
	customerRepo := repositories.NewMemoryCustomerRepository()
	appService := services.NewApplicationService(appRepo, historyRepo, customerRepo)
	handler := NewApplicationHandler(appService)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/applications", handler.Create)
	api.Get("/applications", handler.List)
	api.Get("/applications/:id", handler.Get)
	api.Get("/applications/:id/history", handler.History)
	api.Post("/applications/:id/submit", handler.Submit)
	api.Post("/applications/:id/review", handler.StartReview)
	api.Post("/applications/:id/approve", handler.Approve)
	api.Post("/applications/:id/reject", handler.Reject)
	api.Get("/customers/:id/applications", handler.ListByCustomer)

	return &handlerFixture{app: app, appService: appService, customerRepo: customerRepo}
}

func (f *handlerFixture) seedCustomer(t *testing.T) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		FirstName:  "Anucha",
		LastName:   "Wong",
		Email:      "anucha@example.com",
		NationalID: "1234567890123",
		Status:     models.CustomerStatusActive,
		KYCStatus:  models.KYCStatusVerified,
	}
	require.NoError(t, f.customerRepo.Create(context.Background(), customer))
	return customer
}

func (f *handlerFixture) request(t *testing.T, method, path string, body interface{}) (int, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	var envelope response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestCreateApplicationEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	customer := f.seedCustomer(t)

	status, envelope := f.request(t, "POST", "/api/v1/applications", fiber.Map{
		"customer_id":           customer.ID,
		"loan_type":             "PERSONAL",
		"requested_amount":      "10000000",
		"requested_term_months": 48,
		"save_as_draft":         true,
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, envelope.Success)

	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "DRAFT", data["status"])
	assert.Equal(t, "10000000", data["requested_amount"])
	assert.NotEmpty(t, data["application_number"])
}

func TestCreateApplicationValidationEnvelope(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedCustomer(t)

	status, envelope := f.request(t, "POST", "/api/v1/applications", fiber.Map{
		"customer_id":           0,
		"loan_type":             "PERSONAL",
		"requested_amount":      "10000",
		"requested_term_months": 12,
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Bad Request", envelope.Error)
	assert.NotEmpty(t, envelope.Message)
	assert.Equal(t, "/api/v1/applications", envelope.Path)
}

func TestApplicationRequestBodyRules(t *testing.T) {
	f := newHandlerFixture(t)
	customer := f.seedCustomer(t)

	// Body rules fire before any lookup, so the ids don't have to exist
	tests := []struct {
		name  string
		path  string
		body  fiber.Map
		field string
	}{
		{"unknown loan type", "/api/v1/applications", fiber.Map{
			"customer_id":           customer.ID,
			"loan_type":             "PAYDAY",
			"requested_amount":      "10000",
			"requested_term_months": 12,
		}, "loan_type"},
		{"zero term", "/api/v1/applications", fiber.Map{
			"customer_id":           customer.ID,
			"loan_type":             "PERSONAL",
			"requested_amount":      "10000",
			"requested_term_months": 0,
		}, "requested_term_months"},
		{"zero approved amount", "/api/v1/applications/1/approve", fiber.Map{
			"approved_amount":      "0",
			"approved_term_months": 12,
			"approved_rate":        "7.25",
		}, "approved_amount"},
		{"negative approved rate", "/api/v1/applications/1/approve", fiber.Map{
			"approved_amount":      "10000",
			"approved_term_months": 12,
			"approved_rate":        "-1",
		}, "approved_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := f.request(t, "POST", tt.path, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Contains(t, envelope.Message, tt.field)
		})
	}
}

func TestCreateApplicationUnknownCustomer(t *testing.T) {
	f := newHandlerFixture(t)

	status, envelope := f.request(t, "POST", "/api/v1/applications", fiber.Map{
		"customer_id":           999,
		"loan_type":             "AUTO",
		"requested_amount":      "500000",
		"requested_term_months": 24,
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, envelope.Message, "customer")
}

func TestGetApplicationNotFound(t *testing.T) {
	f := newHandlerFixture(t)

	status, envelope := f.request(t, "GET", "/api/v1/applications/404", nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Not Found", envelope.Error)
	assert.NotEmpty(t, envelope.Message)
}

func TestApplicationLifecycleEndpoints(t *testing.T) {
	f := newHandlerFixture(t)
	customer := f.seedCustomer(t)
	ctx := context.Background()

	app, err := f.appService.Create(ctx, &services.CreateApplicationInput{
		CustomerID:          customer.ID,
		LoanType:            models.LoanTypeAuto,
		RequestedAmount:     mustDecimal(t, "750000"),
		RequestedTermMonths: 60,
		SaveAsDraft:         true,
	}, 1)
	require.NoError(t, err)
	base := fmt.Sprintf("/api/v1/applications/%d", app.ID)

	status, envelope := f.request(t, "POST", base+"/submit", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "SUBMITTED", envelope.Data.(map[string]interface{})["status"])

	status, envelope = f.request(t, "POST", base+"/review", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "UNDER_REVIEW", envelope.Data.(map[string]interface{})["status"])

	status, envelope = f.request(t, "POST", base+"/approve", fiber.Map{
		"approved_amount":      "700000",
		"approved_term_months": 48,
		"approved_rate":        "7.25",
	})
	assert.Equal(t, fiber.StatusOK, status)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "APPROVED", data["status"])

	// Decisions are terminal: a second one conflicts
	status, envelope = f.request(t, "POST", base+"/reject", fiber.Map{
		"comment": "changed my mind",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Conflict", envelope.Error)

	status, envelope = f.request(t, "GET", base+"/history", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, envelope.Data.([]interface{}), 4)
}

func TestRejectWithoutComment(t *testing.T) {
	f := newHandlerFixture(t)
	customer := f.seedCustomer(t)

	app, err := f.appService.Create(context.Background(), &services.CreateApplicationInput{
		CustomerID:          customer.ID,
		LoanType:            models.LoanTypePersonal,
		RequestedAmount:     mustDecimal(t, "100000"),
		RequestedTermMonths: 12,
	}, 1)
	require.NoError(t, err)

	status, envelope := f.request(t, "POST", fmt.Sprintf("/api/v1/applications/%d/reject", app.ID), fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, envelope.Message, "comment")
}

func TestListApplicationsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	customer := f.seedCustomer(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.appService.Create(ctx, &services.CreateApplicationInput{
			CustomerID:          customer.ID,
			LoanType:            models.LoanTypePersonal,
			RequestedAmount:     mustDecimal(t, "50000"),
			RequestedTermMonths: 12,
			SaveAsDraft:         i == 0,
		}, 1)
		require.NoError(t, err)
	}

	status, envelope := f.request(t, "GET", "/api/v1/applications?status=DRAFT", nil)
	assert.Equal(t, fiber.StatusOK, status)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	status, envelope = f.request(t, "GET", "/api/v1/applications?page=1&limit=2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	data = envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(2), data["total_pages"])

	status, _ = f.request(t, "GET", "/api/v1/applications?customer_id=bogus", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListByCustomerEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	customer := f.seedCustomer(t)

	_, err := f.appService.Create(context.Background(), &services.CreateApplicationInput{
		CustomerID:          customer.ID,
		LoanType:            models.LoanTypeMortgage,
		RequestedAmount:     mustDecimal(t, "2500000"),
		RequestedTermMonths: 240,
	}, 1)
	require.NoError(t, err)

	status, envelope := f.request(t, "GET", fmt.Sprintf("/api/v1/customers/%d/applications", customer.ID), nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, envelope.Data.([]interface{}), 1)

	status, _ = f.request(t, "GET", "/api/v1/customers/999/applications", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
