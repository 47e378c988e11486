package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
	apphttp "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
)

// stubDashboard devuelve datos fijos; LowStock falla.
type stubDashboard struct{}

func (stubDashboard) MonthSummary(context.Context, int, time.Month) (*repository.MonthSummary, error) {
	return &repository.MonthSummary{SalesCount: 4, Revenue: decimal.RequireFromString("120.505"), SalesToday: 1}, nil
}

func (stubDashboard) DailySales(context.Context, int, time.Month) ([]repository.DailySales, error) {
	return nil, nil
}

func (stubDashboard) TopProducts(context.Context, int) ([]repository.ProductSold, error) {
	return []repository.ProductSold{{ProductName: "Martillo", TotalSold: decimal.NewFromInt(7)}}, nil
}

func (stubDashboard) RecentSales(context.Context, int) ([]repository.SaleLine, error) {
	return nil, nil
}

func (stubDashboard) LowStock(context.Context) ([]repository.LowStockProduct, error) {
	return nil, errors.New("timeout")
}

func (stubDashboard) SalesByCategory(context.Context, int, time.Month) ([]repository.CategorySales, error) {
	return nil, nil
}

func TestDashboardHandler_Degradado(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DashboardUC: appanalytics.NewDashboardUseCase(stubDashboard{}, zerolog.Nop()),
		JWTSecret:   testJWTSecret,
	})

	var body map[string]any
	require.Equal(t, http.StatusOK, get(t, app, "/api/dashboard", &body))
	assert.Equal(t, []any{"low_stock"}, body["unavailable"])
	assert.Len(t, body["top_products"], 1)
	assert.NotEmpty(t, body["daily_sales"])
}
