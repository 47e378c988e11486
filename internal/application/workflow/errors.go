package workflow

import (
	"fmt"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// StateError operación invocada en un estado que no la admite. La sesión no se modifica.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: no permitido en estado %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error { return domain.ErrInvalidState }

// CommitError fallo de almacenamiento al confirmar el lote. El lote completo se revirtió
// y la sesión sigue en revisión para reintentar.
type CommitError struct {
	Code  string
	Cause error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("confirmar movimientos de %s: %v", e.Code, e.Cause)
}

func (e *CommitError) Unwrap() []error {
	return []error{domain.ErrStorageFailure, e.Cause}
}
