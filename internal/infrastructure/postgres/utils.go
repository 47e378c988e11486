package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

const codeUniqueViolation = "23505"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return false
}

// isConnectionFailure reconoce errores en los que la consulta no llegó al servidor: conexión
// rechazada, pool sin conexiones a tiempo o error previo al envío.
func isConnectionFailure(err error) bool {
	var connErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connErr):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return pgconn.SafeToRetry(err)
	}
}

// storageError envuelve err con la operación; los fallos de conexión llevan además
// domain.ErrConnectionUnavailable.
func storageError(op string, err error) error {
	if isConnectionFailure(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrConnectionUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
