package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthSummary contadores del mes para las tarjetas del dashboard.
type MonthSummary struct {
	SalesCount    int             `db:"ventas_mes"`
	Revenue       decimal.Decimal `db:"ingresos_mes"`
	SalesToday    int             `db:"ventas_hoy"`
	LowStockCount int             `db:"productos_bajo_stock"`
}

// DailySales total vendido (cantidad * precio) en un día.
type DailySales struct {
	Day   time.Time       `db:"dia"`
	Total decimal.Decimal `db:"total_dia"`
}

// ProductSold acumulado histórico vendido por producto.
type ProductSold struct {
	ProductName string          `db:"nombre_producto"`
	TotalSold   decimal.Decimal `db:"total_vendido"`
}

// SaleLine línea de venta con precio y fecha de la transacción.
type SaleLine struct {
	Code        string          `db:"codigo_mov"`
	ProductName string          `db:"nombre_producto"`
	Quantity    decimal.Decimal `db:"cantidad"`
	UnitPrice   decimal.Decimal `db:"precio_unitario"`
	TotalPrice  decimal.Decimal `db:"precio_total"`
	Date        time.Time       `db:"fecha_mov"`
}

// LowStockProduct producto activo con stock_actual < stock_minimo.
type LowStockProduct struct {
	ProductID    int64           `db:"id_producto"`
	ProductName  string          `db:"nombre_producto"`
	StockActual  decimal.Decimal `db:"stock_actual"`
	StockMinimum decimal.Decimal `db:"stock_minimo"`
}

// CategorySales total vendido por categoría.
type CategorySales struct {
	Category string          `db:"categoria"`
	Total    decimal.Decimal `db:"total_categoria"`
}

// DashboardRepository consultas de solo lectura para el dashboard de ventas.
// Solo cuentan movimientos de tipo venta; el mes se toma de transacciones.fecha_mov.
type DashboardRepository interface {
	MonthSummary(ctx context.Context, year int, month time.Month) (*MonthSummary, error)
	DailySales(ctx context.Context, year int, month time.Month) ([]DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSold, error)
	RecentSales(ctx context.Context, limit int) ([]SaleLine, error)
	LowStock(ctx context.Context) ([]LowStockProduct, error)
	SalesByCategory(ctx context.Context, year int, month time.Month) ([]CategorySales, error)
}
