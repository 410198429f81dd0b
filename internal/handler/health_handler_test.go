package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPinger implements Pinger for testing health checks.
type mockPinger struct {
	pingErr error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.pingErr
}

func checkHealth(t *testing.T, h *HealthHandler) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthHandler_Check_Healthy(t *testing.T) {
	status, body := checkHealth(t, NewHealthHandler(&mockPinger{}, nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"database":"up"`)
	assert.NotContains(t, body, "redis", "redis is only reported when configured")
}

func TestHealthHandler_Check_HealthyWithRedis(t *testing.T) {
	status, body := checkHealth(t, NewHealthHandler(&mockPinger{}, &mockPinger{}))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"redis":"up"`)
}

func TestHealthHandler_Check_DatabaseDown(t *testing.T) {
	status, body := checkHealth(t, NewHealthHandler(&mockPinger{pingErr: errors.New("connection refused")}, nil))

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, body, `"status":"unhealthy"`)
	assert.Contains(t, body, `"database":"down"`)
	assert.NotContains(t, body, "connection refused", "internal error details must not leak")
}

func TestHealthHandler_Check_RedisDown(t *testing.T) {
	status, body := checkHealth(t, NewHealthHandler(&mockPinger{}, &mockPinger{pingErr: errors.New("i/o timeout")}))

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, body, `"database":"up"`)
	assert.Contains(t, body, `"redis":"down"`)
}
