package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id_producto, nombre_producto, COALESCE(categoria, ''), COALESCE(marca, ''),
	stock_actual, stock_minimo, precio_unitario, estado, fecha_creacion`

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id_producto = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id_producto = $1 FOR UPDATE`, id)
}

// ListActive lista los productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE estado = $1 ORDER BY nombre_producto`
	rows, err := r.q.Query(ctx, query, entity.ProductActive)
	if err != nil {
		return nil, storageError("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageError("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get product", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Brand,
		&p.StockActual, &p.StockMinimum, &p.UnitPrice, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
