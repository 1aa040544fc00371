package handlers

import (
	"errors"
	"strconv"

	"lendflow-los/internal/core/domain"
	"lendflow-los/internal/core/services"
	"lendflow-los/internal/pkg/pagination"
	"lendflow-los/internal/pkg/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents create customer request
type CreateCustomerRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id"`
}

func (r CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.NationalID, validation.Required, validation.Length(5, 30)),
	)
}

// UpdateKYCRequest represents a KYC status change request
type UpdateKYCRequest struct {
	KYCStatus string `json:"kyc_status"`
}

func (r UpdateKYCRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.KYCStatus, validation.Required,
			validation.In("PENDING", "IN_REVIEW", "VERIFIED", "REJECTED")),
	)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// Create creates a new customer
// @Summary Create customer
// @Description Create a new customer with KYC pending
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCustomerRequest true "Customer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	customer, err := h.customerService.Create(c.Context(), &services.CreateCustomerInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
	})
	if err != nil {
		if verr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, verr.Error())
		}
		switch {
		case errors.Is(err, services.ErrCustomerAlreadyExists):
			return response.Conflict(c, "Customer with this email or national ID already exists")
		default:
			return response.InternalServerError(c, "Failed to create customer")
		}
	}

	return response.Created(c, "Customer created successfully", customer.ToResponse())
}

// Get gets a customer by ID
// @Summary Get customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	customer, err := h.customerService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to get customer")
	}

	return response.Success(c, "Customer retrieved successfully", customer.ToResponse())
}

// List lists customers
// @Summary List customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	customers, total, err := h.customerService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	responses := make([]interface{}, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, customer.ToResponse())
	}

	return response.Success(c, "Customers retrieved successfully", pagination.NewResponse(responses, params, total))
}

// Update updates a customer
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body services.UpdateCustomerInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var input services.UpdateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer, err := h.customerService.Update(c.Context(), id, &input)
	if err != nil {
		if verr, ok := domain.AsValidation(err); ok {
			return response.BadRequest(c, verr.Error())
		}
		if errors.Is(err, services.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to update customer")
	}

	return response.Success(c, "Customer updated successfully", customer.ToResponse())
}

// Delete deletes a customer
// @Summary Delete customer
// @Tags Customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	if err := h.customerService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to delete customer")
	}

	return response.NoContent(c)
}

// UpdateKYC transitions a customer's KYC status
// @Summary Update KYC status
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body UpdateKYCRequest true "New KYC status"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customers/{id}/kyc [patch]
func (h *CustomerHandler) UpdateKYC(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var req UpdateKYCRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, err.Error())
	}

	customer, err := h.customerService.UpdateKYC(c.Context(), id, req.KYCStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.NotFound(c, "Customer not found")
		case errors.Is(err, services.ErrInvalidKYCTransition):
			return response.Conflict(c, "KYC status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update KYC status")
		}
	}

	return response.Success(c, "KYC status updated successfully", customer.ToResponse())
}
