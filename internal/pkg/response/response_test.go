package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler fiber.Handler, path string) (int, Response) {
	t.Helper()

	app := fiber.New()
	app.Get(path, handler)

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope Response
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func Test_Unauthenticated(t *testing.T) {
	status, env := doRequest(t, func(c *fiber.Ctx) error {
		return Unauthenticated(c, "Access token required")
	}, "/protected")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized", env.Error)
	assert.Equal(t, "Access token required", env.Message)
	assert.Equal(t, "/protected", env.Path)

	ts, err := time.Parse(time.RFC3339, env.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func Test_AccessDenied_EmptyMessageStillValidJSON(t *testing.T) {
	status, env := doRequest(t, func(c *fiber.Ctx) error {
		return AccessDenied(c, "")
	}, "/admin")

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Access Denied", env.Error)
	assert.NotEmpty(t, env.Message)
	assert.Equal(t, "/admin", env.Path)
	assert.NotEmpty(t, env.Timestamp)
}

func Test_Success(t *testing.T) {
	status, env := doRequest(t, func(c *fiber.Ctx) error {
		return Success(c, "ok", fiber.Map{"value": 1})
	}, "/things")

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Empty(t, env.Timestamp)
}

func Test_NotFound(t *testing.T) {
	status, env := doRequest(t, func(c *fiber.Ctx) error {
		return NotFound(c, "Loan application not found")
	}, "/applications/999")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Not Found", env.Error)
	assert.Equal(t, "Loan application not found", env.Message)
}
