package workflow

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante cualquier error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Catalog colaborador de catálogo: foto del producto para validar stock y mostrar nombre/marca.
// Devuelve (nil, nil) si el producto no existe.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
}

// TransactionChecker verificación de existencia de la cabecera por código.
type TransactionChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// SessionStore persiste la Session de cada usuario entre peticiones.
// Load devuelve una sesión vacía (NewSession) si el usuario no tiene ninguna guardada.
type SessionStore interface {
	Load(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID int64) error
}
