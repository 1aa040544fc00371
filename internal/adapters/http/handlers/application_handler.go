package handlers

import (
	"errors"
	"strconv"

	"lendflow-los/internal/adapters/http/middleware"
	"lendflow-los/internal/core/domain"
	"lendflow-los/internal/core/services"
	"lendflow-los/internal/pkg/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ApplicationHandler handles loan application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// CreateApplicationRequest represents create application request
type CreateApplicationRequest struct {
	CustomerID          uint            `json:"customer_id"`
	LoanType            string          `json:"loan_type"`
	RequestedAmount     decimal.Decimal `json:"requested_amount"`
	RequestedTermMonths int             `json:"requested_term_months"`
	Purpose             string          `json:"purpose,omitempty"`
	SaveAsDraft         bool            `json:"save_as_draft"`
}

func (r CreateApplicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID, validation.Required),
		validation.Field(&r.LoanType, validation.Required,
			validation.In("PERSONAL", "AUTO", "MORTGAGE", "BUSINESS")),
		validation.Field(&r.RequestedAmount, validation.By(positiveAmount)),
		validation.Field(&r.RequestedTermMonths, validation.Required, validation.Min(1)),
	)
}

// ApproveApplicationRequest represents the final approval terms
type ApproveApplicationRequest struct {
	ApprovedAmount     decimal.Decimal `json:"approved_amount"`
	ApprovedTermMonths int             `json:"approved_term_months"`
	ApprovedRate       decimal.Decimal `json:"approved_rate"`
	Comment            string          `json:"comment,omitempty"`
}

func (r ApproveApplicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ApprovedAmount, validation.By(positiveAmount)),
		validation.Field(&r.ApprovedTermMonths, validation.Required, validation.Min(1)),
		validation.Field(&r.ApprovedRate, validation.By(nonNegativeAmount)),
	)
}

// RejectApplicationRequest carries the mandatory rejection reason
type RejectApplicationRequest struct {
	Comment string `json:"comment"`
}

func (r RejectApplicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment, validation.Required),
	)
}

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || amount.Sign() <= 0 {
		return errors.New("must be greater than 0")
	}
	return nil
}

func nonNegativeAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || amount.Sign() < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func (h *ApplicationHandler) actorID(c *fiber.Ctx) uint {
	id, _ := c.Locals(middleware.LocalUserID).(uint)
	return id
}

func (h *ApplicationHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	if verr, ok := domain.AsValidation(err); ok {
		return response.BadRequest(c, verr.Error())
	}
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		return response.NotFound(c, "Loan application not found")
	case errors.Is(err, services.ErrCustomerNotFound):
		return response.NotFound(c, "Customer not found")
	case errors.Is(err, services.ErrInvalidTransition):
		return response.Conflict(c, "Status transition not allowed from the current status")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// Create creates a new loan application
// @Summary Create loan application
// @Description Create a loan application as DRAFT or submit it immediately
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateApplicationRequest true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	app, err := h.appService.Create(c.Context(), &services.CreateApplicationInput{
		CustomerID:          req.CustomerID,
		LoanType:            req.LoanType,
		RequestedAmount:     req.RequestedAmount,
		RequestedTermMonths: req.RequestedTermMonths,
		Purpose:             req.Purpose,
		SaveAsDraft:         req.SaveAsDraft,
	}, h.actorID(c))
	if err != nil {
		return h.mapError(c, err, "Failed to create application")
	}

	return response.Created(c, "Application created successfully", app.ToResponse())
}

// Get gets a loan application by ID
// @Summary Get loan application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.GetByID(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "Failed to get application")
	}

	return response.Success(c, "Application retrieved successfully", app.ToResponse())
}

// List lists loan applications
// @Summary List loan applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status"
// @Param loan_type query string false "Filter by loan type"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	input := &services.ListInput{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
		Status:   c.Query("status"),
		LoanType: c.Query("loan_type"),
	}
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid customer_id filter")
		}
		id := uint(customerID)
		input.CustomerID = &id
	}

	result, err := h.appService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", result)
}

// ListByCustomer lists a customer's applications
// @Summary List customer applications
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id}/applications [get]
func (h *ApplicationHandler) ListByCustomer(c *fiber.Ctx) error {
	customerID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	apps, err := h.appService.ListByCustomer(c.Context(), customerID)
	if err != nil {
		return h.mapError(c, err, "Failed to list customer applications")
	}

	responses := make([]interface{}, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, app.ToResponse())
	}

	return response.Success(c, "Applications retrieved successfully", responses)
}

// Submit submits a draft application
// @Summary Submit application
// @Description Move a DRAFT application to SUBMITTED
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications/{id}/submit [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.Submit(c.Context(), id, h.actorID(c))
	if err != nil {
		return h.mapError(c, err, "Failed to submit application")
	}

	return response.Success(c, "Application submitted successfully", app.ToResponse())
}

// StartReview moves an application into review
// @Summary Start application review
// @Description Move a SUBMITTED application to UNDER_REVIEW
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications/{id}/review [post]
func (h *ApplicationHandler) StartReview(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.StartReview(c.Context(), id, h.actorID(c))
	if err != nil {
		return h.mapError(c, err, "Failed to start review")
	}

	return response.Success(c, "Application moved to review", app.ToResponse())
}

// Approve approves an application
// @Summary Approve application
// @Description Approve an application with the final terms
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body ApproveApplicationRequest true "Approval terms"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications/{id}/approve [post]
func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req ApproveApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	app, err := h.appService.Approve(c.Context(), id, &services.ApproveInput{
		ApprovedAmount:     req.ApprovedAmount,
		ApprovedTermMonths: req.ApprovedTermMonths,
		ApprovedRate:       req.ApprovedRate,
		Comment:            req.Comment,
	}, h.actorID(c))
	if err != nil {
		return h.mapError(c, err, "Failed to approve application")
	}

	return response.Success(c, "Application approved successfully", app.ToResponse())
}

// Reject rejects an application
// @Summary Reject application
// @Description Reject an application with a mandatory reason
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body RejectApplicationRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req RejectApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	app, err := h.appService.Reject(c.Context(), id, &services.RejectInput{
		Comment: req.Comment,
	}, h.actorID(c))
	if err != nil {
		return h.mapError(c, err, "Failed to reject application")
	}

	return response.Success(c, "Application rejected", app.ToResponse())
}

// History returns the status transition history
// @Summary Application status history
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id}/history [get]
func (h *ApplicationHandler) History(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	history, err := h.appService.GetHistory(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "Failed to get application history")
	}

	responses := make([]interface{}, 0, len(history))
	for _, entry := range history {
		responses = append(responses, entry.ToResponse())
	}

	return response.Success(c, "History retrieved successfully", responses)
}
