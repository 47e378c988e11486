package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario. Se persiste en español (columna tipo_movimiento).
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeSale       MovementType = "venta"  // salida por venta
	MovementTypePurchase   MovementType = "compra" // entrada por compra
	MovementTypeAdjustment MovementType = "ajuste" // corrección de inventario
)

// ParseMovementType acepta el valor persistido o su alias en inglés, sin distinguir mayúsculas.
func ParseMovementType(s string) (MovementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "venta", "sale":
		return MovementTypeSale, nil
	case "compra", "purchase":
		return MovementTypePurchase, nil
	case "ajuste", "adjustment":
		return MovementTypeAdjustment, nil
	}
	return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
}

// Valid indica si el tipo es uno de los tres admitidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment:
		return true
	}
	return false
}

// Movement representa una línea de mov_inventario: cantidad de un producto bajo una transacción.
// Nunca se actualiza ni elimina; las correcciones son nuevos movimientos de tipo ajuste.
type Movement struct {
	ID        int64
	Code      string // codigo_mov, referencia lógica a transacciones
	ProductID int64
	Quantity  decimal.Decimal
	Type      MovementType
	CreatedAt time.Time // asignada por el servidor al insertar
}

// MovementView movimiento unido con el nombre del producto (listado de últimos movimientos).
type MovementView struct {
	Code        string          `db:"codigo_mov" json:"code"`
	ProductName *string         `db:"nombre_producto" json:"product_name"`
	Quantity    decimal.Decimal `db:"cantidad" json:"quantity"`
	CreatedAt   time.Time       `db:"fecha" json:"created_at"`
	Type        string          `db:"tipo_movimiento" json:"type"`
}
