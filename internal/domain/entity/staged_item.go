package entity

import "github.com/shopspring/decimal"

// StagedItem movimiento candidato aún no confirmado. Solo vive dentro de una sesión de captura;
// los campos de producto son una foto tomada al momento de agregarlo.
type StagedItem struct {
	ProductID     int64           `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Type          MovementType    `json:"movement_type"`
	ProductName   string          `json:"product_name"`
	Brand         string          `json:"brand"`
	StockSnapshot decimal.Decimal `json:"stock_snapshot"`
}
