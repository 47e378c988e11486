package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard. Las secciones que fallan llegan vacías y se
// listan en Unavailable.
type DashboardDTO struct {
	MonthLabel      string             `json:"month_label"` // ej: "Marzo 2025"
	Summary         SummaryDTO         `json:"summary"`
	DailySales      []DailySalesDTO    `json:"daily_sales"`
	TopProducts     []TopProductDTO    `json:"top_products"`
	RecentSales     []SaleDTO          `json:"recent_sales"`
	LowStock        []LowStockDTO      `json:"low_stock"`
	SalesByCategory []CategorySalesDTO `json:"sales_by_category"`
	Unavailable     []string           `json:"unavailable,omitempty"`
}

// SummaryDTO tarjetas del mes.
type SummaryDTO struct {
	SalesMonth    int             `json:"sales_month"`
	RevenueMonth  decimal.Decimal `json:"revenue_month"`
	SalesToday    int             `json:"sales_today"`
	LowStockCount int             `json:"low_stock_count"`
}

// DailySalesDTO total de un día del mes (0 si no hubo ventas).
type DailySalesDTO struct {
	Day   string          `json:"day"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// TopProductDTO producto más vendido.
type TopProductDTO struct {
	ProductName string          `json:"product_name"`
	TotalSold   decimal.Decimal `json:"total_sold"`
}

// SaleDTO línea de venta reciente.
type SaleDTO struct {
	Code        string          `json:"code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Date        string          `json:"date"`
}

// LowStockDTO producto por debajo del mínimo.
type LowStockDTO struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
}

// CategorySalesDTO total por categoría.
type CategorySalesDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}
