package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard de ventas.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// MonthSummary cuenta ventas e ingresos del mes, ventas de hoy y productos bajo stock.
func (r *DashboardRepo) MonthSummary(ctx context.Context, year int, month time.Month) (*repository.MonthSummary, error) {
	const query = `
	WITH ventas AS (
	    SELECT m.cantidad, p.precio_unitario, t.fecha_mov
	    FROM mov_inventario m
	    JOIN transacciones t ON t.codigo_mov  = m.codigo_mov
	    JOIN productos     p ON p.id_producto = m.id_producto
	    WHERE m.tipo_movimiento = $1
	)
	SELECT
	    (SELECT COUNT(*) FROM ventas
	      WHERE EXTRACT(YEAR FROM fecha_mov) = $2 AND EXTRACT(MONTH FROM fecha_mov) = $3)::INT     AS ventas_mes,
	    (SELECT COALESCE(SUM(cantidad * precio_unitario), 0) FROM ventas
	      WHERE EXTRACT(YEAR FROM fecha_mov) = $2 AND EXTRACT(MONTH FROM fecha_mov) = $3)          AS ingresos_mes,
	    (SELECT COUNT(*) FROM ventas WHERE fecha_mov::DATE = CURRENT_DATE)::INT                   AS ventas_hoy,
	    (SELECT COUNT(*) FROM productos
	      WHERE stock_actual < stock_minimo AND estado = $4)::INT                                  AS productos_bajo_stock`
	s, err := QueryOne[repository.MonthSummary](ctx, r.q, query,
		string(entity.MovementTypeSale), year, int(month), entity.ProductActive)
	if err != nil {
		return nil, storageError("dashboard.MonthSummary", err)
	}
	if s == nil {
		s = &repository.MonthSummary{}
	}
	return s, nil
}

// DailySales total vendido por día del mes; solo aparecen los días con ventas.
func (r *DashboardRepo) DailySales(ctx context.Context, year int, month time.Month) ([]repository.DailySales, error) {
	const query = `
	SELECT t.fecha_mov::DATE                     AS dia,
	       SUM(m.cantidad * p.precio_unitario)   AS total_dia
	FROM mov_inventario m
	JOIN transacciones t ON t.codigo_mov  = m.codigo_mov
	JOIN productos     p ON p.id_producto = m.id_producto
	WHERE m.tipo_movimiento = $1
	  AND EXTRACT(YEAR FROM t.fecha_mov) = $2
	  AND EXTRACT(MONTH FROM t.fecha_mov) = $3
	GROUP BY dia
	ORDER BY dia`
	list, err := Query[repository.DailySales](ctx, r.q, query, string(entity.MovementTypeSale), year, int(month))
	if err != nil {
		return nil, storageError("dashboard.DailySales", err)
	}
	return list, nil
}

// TopProducts ranking histórico por cantidad vendida.
func (r *DashboardRepo) TopProducts(ctx context.Context, limit int) ([]repository.ProductSold, error) {
	const query = `
	SELECT p.nombre_producto, SUM(m.cantidad) AS total_vendido
	FROM mov_inventario m
	JOIN productos p ON p.id_producto = m.id_producto
	WHERE m.tipo_movimiento = $1
	GROUP BY p.nombre_producto
	ORDER BY total_vendido DESC
	LIMIT $2`
	list, err := Query[repository.ProductSold](ctx, r.q, query, string(entity.MovementTypeSale), limit)
	if err != nil {
		return nil, storageError("dashboard.TopProducts", err)
	}
	return list, nil
}

// RecentSales últimas líneas de venta con su precio total.
func (r *DashboardRepo) RecentSales(ctx context.Context, limit int) ([]repository.SaleLine, error) {
	const query = `
	SELECT m.codigo_mov,
	       p.nombre_producto,
	       m.cantidad,
	       p.precio_unitario,
	       p.precio_unitario * m.cantidad AS precio_total,
	       t.fecha_mov
	FROM mov_inventario m
	JOIN transacciones t ON t.codigo_mov  = m.codigo_mov
	JOIN productos     p ON p.id_producto = m.id_producto
	WHERE m.tipo_movimiento = $1
	ORDER BY t.fecha_mov DESC, m.id_mov DESC
	LIMIT $2`
	list, err := Query[repository.SaleLine](ctx, r.q, query, string(entity.MovementTypeSale), limit)
	if err != nil {
		return nil, storageError("dashboard.RecentSales", err)
	}
	return list, nil
}

// LowStock productos activos por debajo de su stock mínimo, del más crítico al menos.
func (r *DashboardRepo) LowStock(ctx context.Context) ([]repository.LowStockProduct, error) {
	const query = `
	SELECT id_producto, nombre_producto, stock_actual, stock_minimo
	FROM productos
	WHERE stock_actual < stock_minimo AND estado = $1
	ORDER BY stock_actual ASC`
	list, err := Query[repository.LowStockProduct](ctx, r.q, query, entity.ProductActive)
	if err != nil {
		return nil, storageError("dashboard.LowStock", err)
	}
	return list, nil
}

// SalesByCategory total vendido por categoría en el mes.
func (r *DashboardRepo) SalesByCategory(ctx context.Context, year int, month time.Month) ([]repository.CategorySales, error) {
	const query = `
	SELECT COALESCE(p.categoria, 'Sin categoría')    AS categoria,
	       SUM(m.cantidad * p.precio_unitario)        AS total_categoria
	FROM mov_inventario m
	JOIN productos     p ON p.id_producto = m.id_producto
	JOIN transacciones t ON t.codigo_mov  = m.codigo_mov
	WHERE m.tipo_movimiento = $1
	  AND EXTRACT(YEAR FROM t.fecha_mov) = $2
	  AND EXTRACT(MONTH FROM t.fecha_mov) = $3
	GROUP BY 1
	ORDER BY total_categoria DESC`
	list, err := Query[repository.CategorySales](ctx, r.q, query, string(entity.MovementTypeSale), year, int(month))
	if err != nil {
		return nil, storageError("dashboard.SalesByCategory", err)
	}
	return list, nil
}
