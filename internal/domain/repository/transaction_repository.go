package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// TransactionRepository puerto de persistencia para las cabeceras (tabla transacciones).
type TransactionRepository interface {
	// Create inserta la cabecera y completa ID y Date con lo devuelto por la base.
	Create(ctx context.Context, t *entity.Transaction) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	GetByCode(ctx context.Context, code string) (*entity.Transaction, error)
}
