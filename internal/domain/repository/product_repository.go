package repository

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo. Devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
}
