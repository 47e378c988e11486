package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de inventario (mov_inventario).
type MovementRepository interface {
	// Create inserta el movimiento y completa ID y CreatedAt.
	Create(ctx context.Context, m *entity.Movement) error
	ListByCode(ctx context.Context, code string) ([]*entity.Movement, error)
	ListRecent(ctx context.Context, limit int) ([]entity.MovementView, error)
}
