package dto

import "github.com/shopspring/decimal"

// ProductResponse producto para el selector de la captura.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	BelowMinimum bool            `json:"below_minimum"`
}
