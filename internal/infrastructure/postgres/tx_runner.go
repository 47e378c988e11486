package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ workflow.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	gw *Gateway
}

// NewTxRunner construye el runner sobre el gateway.
func NewTxRunner(gw *Gateway) *TxRunner {
	return &TxRunner{gw: gw}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.gw.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		return fn(NewMovementRepository(tx), NewTransactionRepository(tx), NewProductRepository(tx))
	})
}
