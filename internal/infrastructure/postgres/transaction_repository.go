package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo cabeceras en la tabla transacciones (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la cabecera. Un codigo_mov repetido devuelve domain.ErrDuplicateCode.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	const query = `
		INSERT INTO transacciones (codigo_mov, id_usuario, fecha_mov, referencia, metodo_registro)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_transaccion, fecha_mov`
	err := r.q.QueryRow(ctx, query,
		t.Code, t.UserID, t.Date, nullIfEmpty(t.Reference), t.RegistrationMethod,
	).Scan(&t.ID, &t.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return storageError("insert transaccion", err)
	}
	return nil
}

// ExistsByCode indica si hay una cabecera con ese código.
func (r *TransactionRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transacciones WHERE codigo_mov = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, storageError("exists transaccion", err)
	}
	return exists, nil
}

// GetByCode obtiene la cabecera por código; (nil, nil) si no existe.
func (r *TransactionRepo) GetByCode(ctx context.Context, code string) (*entity.Transaction, error) {
	const query = `
		SELECT id_transaccion, codigo_mov, id_usuario, fecha_mov, referencia, metodo_registro
		FROM transacciones WHERE codigo_mov = $1`
	var t entity.Transaction
	var ref *string
	err := r.q.QueryRow(ctx, query, code).Scan(
		&t.ID, &t.Code, &t.UserID, &t.Date, &ref, &t.RegistrationMethod,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get transaccion", err)
	}
	if ref != nil {
		t.Reference = *ref
	}
	return &t, nil
}
