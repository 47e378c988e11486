package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// Gateway punto de acceso a PostgreSQL: lecturas sobre el pool y unidades de trabajo transaccionales.
type Gateway struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewGateway construye el gateway sobre un pool ya creado (ver NewPool).
func NewGateway(pool *pgxpool.Pool, log zerolog.Logger) *Gateway {
	return &Gateway{pool: pool, log: log}
}

// Ping verifica la conectividad.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnectionUnavailable, err)
	}
	return nil
}

// ExecuteInTransaction toma una conexión del pool, abre una transacción y ejecuta fn sobre ella.
// Commit si fn termina sin error; rollback si devuelve error o entra en pánico (el pánico se
// relanza). La conexión se devuelve al pool siempre.
func (g *Gateway) ExecuteInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire: %v", domain.ErrConnectionUnavailable, err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrConnectionUnavailable, err)
	}

	defer func() {
		if p := recover(); p != nil {
			g.rollback(tx)
			panic(p)
		}
		if err != nil {
			g.rollback(tx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// rollback usa un contexto propio: si ctx ya fue cancelado la transacción igual debe cerrarse.
func (g *Gateway) rollback(tx pgx.Tx) {
	if err := tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		g.log.Warn().Err(err).Msg("rollback fallido")
	}
}
