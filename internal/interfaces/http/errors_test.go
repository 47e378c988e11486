package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/ledger"
)

func renderError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })
	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"producto", domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"envuelto", fmt.Errorf("consultar: %w", domain.ErrUnknownTransaction), http.StatusNotFound, "UNKNOWN_TRANSACTION"},
		{"duplicado", domain.ErrDuplicateProduct, http.StatusConflict, "DUPLICATE_PRODUCT"},
		{"estado", &workflow.StateError{Op: "confirm_and_commit", State: workflow.StateEmpty}, http.StatusConflict, "INVALID_STATE"},
		{"sesión ocupada", domain.ErrSessionBusy, http.StatusConflict, "SESSION_BUSY"},
		{"conexión", fmt.Errorf("%w: acquire: timeout", domain.ErrConnectionUnavailable), http.StatusServiceUnavailable, "CONNECTION_UNAVAILABLE"},
		{"commit", &workflow.CommitError{Code: "X", Cause: errors.New("disk")}, http.StatusInternalServerError, "STORAGE_FAILURE"},
		{"commit sin conexión", &workflow.CommitError{Code: "X", Cause: domain.ErrConnectionUnavailable}, http.StatusServiceUnavailable, "CONNECTION_UNAVAILABLE"},
		{"desconocido", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := renderError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_DetallesDeStock(t *testing.T) {
	err := &ledger.InsufficientStockError{ProductID: 5, Available: decimal.NewFromInt(10), Requested: decimal.RequireFromString("12.5")}
	status, body := renderError(t, err)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "stock insuficiente. Disponible: 10, solicitado: 12.5", body.Message)
	assert.EqualValues(t, 5, body.Details["product_id"])
	assert.Equal(t, "10", body.Details["available"])
	assert.Equal(t, "12.5", body.Details["requested"])
}

func TestWriteError_NoFiltraCausaInterna(t *testing.T) {
	_, body := renderError(t, errors.New("pq: password authentication failed"))
	assert.NotContains(t, body.Message, "password")
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, validateStruct(dto.LoginRequest{Email: "a@b.co", Password: "x"}))

	resp := validateStruct(dto.LoginRequest{Email: "no-es-email"})
	require.NotNil(t, resp)
	assert.Equal(t, "VALIDATION", resp.Code)
	assert.Equal(t, "email", resp.Details["email"])
	assert.Equal(t, "required", resp.Details["password"])

	resp = validateStruct(dto.LimitQuery{Limit: 500})
	require.NotNil(t, resp)
	assert.Equal(t, "max=100", resp.Details["Limit"])
}
