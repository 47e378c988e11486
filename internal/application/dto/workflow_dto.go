package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenTransactionRequest body de POST /api/workflow/transaction.
type OpenTransactionRequest struct {
	Code      string     `json:"code" validate:"required,max=60"`
	Date      *time.Time `json:"date"`
	Reference string     `json:"reference" validate:"max=255"`
}

// StageItemRequest body de POST /api/workflow/items. movement_type acepta venta|compra|ajuste
// (o sale|purchase|adjustment).
type StageItemRequest struct {
	ProductID    int64           `json:"product_id" validate:"required,gt=0"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementType string          `json:"movement_type" validate:"required"`
}

// StagedItemResponse línea capturada con su posición.
type StagedItemResponse struct {
	Index         int             `json:"index"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Brand         string          `json:"brand"`
	Quantity      decimal.Decimal `json:"quantity"`
	MovementType  string          `json:"movement_type"`
	StockSnapshot decimal.Decimal `json:"stock_snapshot"`
}

// SessionResponse vista de la sesión de captura.
type SessionResponse struct {
	State      string               `json:"state"`
	ActiveCode string               `json:"active_code,omitempty"`
	Items      []StagedItemResponse `json:"items"`
	UpdatedAt  *time.Time           `json:"updated_at,omitempty"`
}

// TransactionResponse cabecera registrada.
type TransactionResponse struct {
	ID      int64           `json:"id"`
	Code    string          `json:"code"`
	Date    time.Time       `json:"date"`
	Session SessionResponse `json:"session"`
}

// CommitLineResponse movimiento insertado.
type CommitLineResponse struct {
	MovementID  int64           `json:"movement_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CommitResponse resultado de la confirmación.
type CommitResponse struct {
	Code    string               `json:"code"`
	Lines   []CommitLineResponse `json:"lines"`
	Session SessionResponse      `json:"session"`
}

// MovementResponse fila del listado de últimos movimientos.
type MovementResponse struct {
	Code         string          `json:"code"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Date         time.Time       `json:"date"`
	MovementType string          `json:"movement_type"`
}
