package response

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Response represents the standard API envelope. Success responses carry
// data; error responses carry the error label, message, timestamp and path.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Path      string      `json:"path,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// NoContent sends an empty 204 response
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error sends an error response with timestamp and request path
func Error(c *fiber.Ctx, statusCode int, errLabel, message string) error {
	if message == "" {
		message = errLabel
	}
	return c.Status(statusCode).JSON(Response{
		Success:   false,
		Error:     errLabel,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		Path:      c.Path(),
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "Bad Request", message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, "Not Found", message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, "Conflict", message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "Internal Server Error", message)
}

// Unauthenticated is the terminal responder for authentication failures.
// Missing or invalid credential -> 401.
func Unauthenticated(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Authentication is required to access this resource"
	}
	return Error(c, fiber.StatusUnauthorized, "Unauthorized", message)
}

// AccessDenied is the terminal responder for authorization failures.
// Valid credential but insufficient authority -> 403.
func AccessDenied(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "You do not have permission to access this resource"
	}
	return Error(c, fiber.StatusForbidden, "Access Denied", message)
}
