package postgres

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos en mov_inventario (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. codigo_mov no es llave foránea: la existencia de la cabecera
// la garantiza el flujo antes de llegar aquí.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	const query = `
		INSERT INTO mov_inventario (codigo_mov, id_producto, cantidad, tipo_movimiento)
		VALUES ($1, $2, $3, $4)
		RETURNING id_mov, fecha`
	err := r.q.QueryRow(ctx, query, m.Code, m.ProductID, m.Quantity, string(m.Type)).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return storageError("insert mov_inventario", err)
	}
	return nil
}

// ListByCode movimientos de una transacción en orden de inserción.
func (r *MovementRepo) ListByCode(ctx context.Context, code string) ([]*entity.Movement, error) {
	const query = `
		SELECT id_mov, codigo_mov, id_producto, cantidad, tipo_movimiento, fecha
		FROM mov_inventario WHERE codigo_mov = $1 ORDER BY id_mov`
	rows, err := r.q.Query(ctx, query, code)
	if err != nil {
		return nil, storageError("list mov_inventario", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.Code, &m.ProductID, &m.Quantity, &typ, &m.CreatedAt); err != nil {
			return nil, storageError("scan mov_inventario", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListRecent últimos movimientos unidos al nombre del producto (LEFT JOIN: el producto pudo borrarse).
func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]entity.MovementView, error) {
	const query = `
		SELECT m.codigo_mov, p.nombre_producto, m.cantidad, m.fecha, m.tipo_movimiento
		FROM mov_inventario m
		LEFT JOIN productos p ON p.id_producto = m.id_producto
		ORDER BY m.fecha DESC, m.id_mov DESC
		LIMIT $1`
	list, err := Query[entity.MovementView](ctx, r.q, query, limit)
	if err != nil {
		return nil, storageError("recent mov_inventario", err)
	}
	return list, nil
}
