// Package ledger contiene las reglas que ligan transacciones y movimientos de inventario.
// Es lógica pura: no accede a almacenamiento ni a la capa HTTP, y es segura de llamar repetidamente.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

const (
	defaultProductName = "Desconocido"
	defaultBrand       = "Sin marca"
)

// Candidate línea propuesta por el usuario antes de validarse.
type Candidate struct {
	ProductID int64
	Quantity  decimal.Decimal
	Type      entity.MovementType
}

// InsufficientStockError venta que excede el stock registrado del producto.
type InsufficientStockError struct {
	ProductID int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Disponible: %s, solicitado: %s", e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// ValidateNewStagedItem valida un candidato contra la lista ya capturada y la foto del producto.
// Devuelve el StagedItem listo para agregarse; existing no se modifica.
func ValidateNewStagedItem(existing []entity.StagedItem, c Candidate, p *entity.Product) (entity.StagedItem, error) {
	if p == nil {
		return entity.StagedItem{}, domain.ErrProductNotFound
	}
	if !c.Type.Valid() {
		return entity.StagedItem{}, domain.ErrInvalidMovementType
	}
	for _, it := range existing {
		if it.ProductID == c.ProductID {
			return entity.StagedItem{}, domain.ErrDuplicateProduct
		}
	}
	if !c.Quantity.IsPositive() {
		return entity.StagedItem{}, domain.ErrInvalidQuantity
	}
	if c.Type == entity.MovementTypeSale && p.StockActual.LessThan(c.Quantity) {
		return entity.StagedItem{}, &InsufficientStockError{
			ProductID: c.ProductID,
			Available: p.StockActual,
			Requested: c.Quantity,
		}
	}

	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = defaultProductName
	}
	brand := p.Brand
	if strings.TrimSpace(brand) == "" {
		brand = defaultBrand
	}
	return entity.StagedItem{
		ProductID:     c.ProductID,
		Quantity:      c.Quantity,
		Type:          c.Type,
		ProductName:   name,
		Brand:         brand,
		StockSnapshot: p.StockActual,
	}, nil
}

// ValidateFinalization comprueba que el lote pueda pasar a revisión o confirmarse.
// Orden de verificación: lote vacío, código vacío, transacción inexistente.
func ValidateFinalization(staged []entity.StagedItem, code string, transactionExists bool) error {
	if len(staged) == 0 {
		return domain.ErrEmptyBatch
	}
	if strings.TrimSpace(code) == "" {
		return domain.ErrMissingCode
	}
	if !transactionExists {
		return domain.ErrUnknownTransaction
	}
	return nil
}

var validationErrors = []error{
	domain.ErrProductNotFound,
	domain.ErrInvalidMovementType,
	domain.ErrDuplicateProduct,
	domain.ErrInvalidQuantity,
	domain.ErrInsufficientStock,
	domain.ErrEmptyBatch,
	domain.ErrMissingCode,
	domain.ErrUnknownTransaction,
	domain.ErrDuplicateCode,
}

// IsValidationError indica si err es recuperable localmente (se reporta al usuario sin cambiar estado).
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
