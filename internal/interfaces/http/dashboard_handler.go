package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
)

// DashboardHandler resumen de ventas del mes en curso.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve el dashboard completo.
// GET /api/dashboard
//
// Las secciones que no se pudieron consultar quedan vacías y se listan en "unavailable";
// la respuesta es 200 aunque falte alguna.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetDashboard(c.UserContext()))
}
