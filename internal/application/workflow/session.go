package workflow

import (
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// State estado de la sesión de captura.
type State string

const (
	StateEmpty           State = "empty"            // sin transacción activa
	StateTransactionOpen State = "transaction_open" // cabecera creada, captura activa
	StateReviewPending   State = "review_pending"   // lote congelado esperando confirmación
)

// Session contexto explícito de una sesión de captura. Lo posee el host, que lo persiste entre
// peticiones y lo pasa por referencia a cada operación del Engine.
type Session struct {
	State      State               `json:"state"`
	ActiveCode string              `json:"active_code"`
	UserID     int64               `json:"user_id"`
	Items      []entity.StagedItem `json:"items"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NewSession crea una sesión vacía para el usuario.
func NewSession(userID int64) *Session {
	return &Session{State: StateEmpty, UserID: userID, Items: []entity.StagedItem{}}
}

// Current devuelve el estado, tratando el valor cero como vacío.
func (s *Session) Current() State {
	if s.State == "" {
		return StateEmpty
	}
	return s.State
}

func (s *Session) reset(now time.Time) {
	s.State = StateEmpty
	s.ActiveCode = ""
	s.Items = []entity.StagedItem{}
	s.UpdatedAt = now
}
