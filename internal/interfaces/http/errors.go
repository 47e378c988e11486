package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/ledger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Orden relevante: ErrInsufficientStock va antes que los genéricos y ErrConnectionUnavailable
// antes que ErrStorageFailure (un CommitError por conexión caída envuelve ambos).
var errorTable = []errorMapping{
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrUnknownTransaction, fiber.StatusNotFound, "UNKNOWN_TRANSACTION"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrDuplicateProduct, fiber.StatusConflict, "DUPLICATE_PRODUCT"},
	{domain.ErrDuplicateCode, fiber.StatusConflict, "DUPLICATE_CODE"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
	{domain.ErrSessionBusy, fiber.StatusConflict, "SESSION_BUSY"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidMovementType, fiber.StatusBadRequest, "INVALID_MOVEMENT_TYPE"},
	{domain.ErrEmptyBatch, fiber.StatusBadRequest, "EMPTY_BATCH"},
	{domain.ErrMissingCode, fiber.StatusBadRequest, "MISSING_CODE"},
	{domain.ErrIndexOutOfRange, fiber.StatusBadRequest, "INDEX_OUT_OF_RANGE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrConnectionUnavailable, fiber.StatusServiceUnavailable, "CONNECTION_UNAVAILABLE"},
	{domain.ErrStorageFailure, fiber.StatusInternalServerError, "STORAGE_FAILURE"},
}

// writeError traduce errores de dominio a status HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if !errors.Is(err, m.target) {
			continue
		}
		resp := dto.ErrorResponse{Code: m.code, Message: m.target.Error()}
		var ise *ledger.InsufficientStockError
		var se *workflow.StateError
		var ce *workflow.CommitError
		switch {
		case errors.As(err, &ise):
			resp.Message = ise.Error()
			resp.Details = map[string]any{
				"product_id": ise.ProductID,
				"available":  ise.Available.String(),
				"requested":  ise.Requested.String(),
			}
		case errors.As(err, &se):
			resp.Details = map[string]any{"operation": se.Op, "state": string(se.State)}
		case errors.As(err, &ce):
			resp.Message = "no se registró ningún movimiento; el lote sigue pendiente de confirmación"
			resp.Details = map[string]any{"code": ce.Code}
		}
		return c.Status(m.status).JSON(resp)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
