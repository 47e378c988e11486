package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
)

const defaultRecentLimit = 20

// MovementHandler listado de los últimos movimientos registrados.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Recent godoc
// @Summary      Últimos movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-100)"  default(20)
// @Success      200    {array}   dto.MovementResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movements/recent [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	var q dto.LimitQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	if resp := validateStruct(q); resp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	out, err := h.uc.Recent(c.UserContext(), q.Or(defaultRecentLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
