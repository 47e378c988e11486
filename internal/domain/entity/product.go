package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductActive   = "activo"
	ProductInactive = "inactivo"
)

// Product producto del catálogo. El flujo de movimientos solo lo lee (stock, nombre, marca).
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimum decimal.Decimal `json:"stock_minimum"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.StockActual.LessThan(p.StockMinimum)
}
