package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

type mockDashboardRepo struct {
	mock.Mock
}

func (m *mockDashboardRepo) MonthSummary(ctx context.Context, year int, month time.Month) (*repository.MonthSummary, error) {
	args := m.Called(ctx, year, month)
	s, _ := args.Get(0).(*repository.MonthSummary)
	return s, args.Error(1)
}

func (m *mockDashboardRepo) DailySales(ctx context.Context, year int, month time.Month) ([]repository.DailySales, error) {
	args := m.Called(ctx, year, month)
	v, _ := args.Get(0).([]repository.DailySales)
	return v, args.Error(1)
}

func (m *mockDashboardRepo) TopProducts(ctx context.Context, limit int) ([]repository.ProductSold, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]repository.ProductSold)
	return v, args.Error(1)
}

func (m *mockDashboardRepo) RecentSales(ctx context.Context, limit int) ([]repository.SaleLine, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]repository.SaleLine)
	return v, args.Error(1)
}

func (m *mockDashboardRepo) LowStock(ctx context.Context) ([]repository.LowStockProduct, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]repository.LowStockProduct)
	return v, args.Error(1)
}

func (m *mockDashboardRepo) SalesByCategory(ctx context.Context, year int, month time.Month) ([]repository.CategorySales, error) {
	args := m.Called(ctx, year, month)
	v, _ := args.Get(0).([]repository.CategorySales)
	return v, args.Error(1)
}

var feb2024 = time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC)

func newUseCase(repo *mockDashboardRepo) *DashboardUseCase {
	uc := NewDashboardUseCase(repo, zerolog.Nop())
	uc.now = func() time.Time { return feb2024 }
	return uc
}

func TestGetDashboard_AllSections(t *testing.T) {
	repo := new(mockDashboardRepo)
	repo.On("MonthSummary", mock.Anything, 2024, time.February).
		Return(&repository.MonthSummary{SalesCount: 4, Revenue: decimal.RequireFromString("1234.567"), SalesToday: 1, LowStockCount: 2}, nil)
	repo.On("DailySales", mock.Anything, 2024, time.February).
		Return([]repository.DailySales{{Day: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(500)}}, nil)
	repo.On("TopProducts", mock.Anything, dashboardTopProducts).
		Return([]repository.ProductSold{{ProductName: "Martillo", TotalSold: decimal.NewFromInt(9)}}, nil)
	repo.On("RecentSales", mock.Anything, dashboardRecentSales).
		Return([]repository.SaleLine{{Code: "VTA0001", ProductName: "Martillo", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(250), TotalPrice: decimal.NewFromInt(500), Date: feb2024}}, nil)
	repo.On("LowStock", mock.Anything).
		Return([]repository.LowStockProduct{{ProductID: 7, ProductName: "Clavos"}}, nil)
	repo.On("SalesByCategory", mock.Anything, 2024, time.February).
		Return([]repository.CategorySales{{Category: "Herramientas", Total: decimal.NewFromInt(500)}}, nil)

	out := newUseCase(repo).GetDashboard(context.Background())

	assert.Equal(t, "Febrero 2024", out.MonthLabel)
	assert.Equal(t, 4, out.Summary.SalesMonth)
	assert.True(t, out.Summary.RevenueMonth.Equal(decimal.RequireFromString("1234.57")))
	require.Len(t, out.DailySales, 29)
	assert.Equal(t, "2024-02-01", out.DailySales[0].Day)
	assert.True(t, out.DailySales[0].Total.IsZero())
	assert.True(t, out.DailySales[2].Total.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "2024-02-29", out.DailySales[28].Day)
	assert.Len(t, out.TopProducts, 1)
	assert.Len(t, out.RecentSales, 1)
	assert.Len(t, out.LowStock, 1)
	assert.Len(t, out.SalesByCategory, 1)
	assert.Empty(t, out.Unavailable)
	repo.AssertExpectations(t)
}

func TestGetDashboard_FailingSectionsDegradeToEmpty(t *testing.T) {
	boom := errors.New("conexión perdida")
	repo := new(mockDashboardRepo)
	repo.On("MonthSummary", mock.Anything, 2024, time.February).Return(nil, boom)
	repo.On("DailySales", mock.Anything, 2024, time.February).Return(nil, boom)
	repo.On("TopProducts", mock.Anything, dashboardTopProducts).
		Return([]repository.ProductSold{{ProductName: "Martillo", TotalSold: decimal.NewFromInt(9)}}, nil)
	repo.On("RecentSales", mock.Anything, dashboardRecentSales).Return(nil, boom)
	repo.On("LowStock", mock.Anything).Return(nil, nil)
	repo.On("SalesByCategory", mock.Anything, 2024, time.February).Return(nil, boom)

	out := newUseCase(repo).GetDashboard(context.Background())

	assert.Equal(t, []string{SectionSummary, SectionDaily, SectionRecent, SectionByCategory}, out.Unavailable)
	assert.Zero(t, out.Summary.SalesMonth)
	assert.True(t, out.Summary.RevenueMonth.IsZero())
	require.Len(t, out.DailySales, 29)
	assert.Len(t, out.TopProducts, 1)
	assert.NotNil(t, out.RecentSales)
	assert.Empty(t, out.RecentSales)
	assert.NotNil(t, out.LowStock)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Enero 2026", monthLabel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}
