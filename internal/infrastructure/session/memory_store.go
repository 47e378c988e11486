package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
)

var _ workflow.SessionStore = (*MemoryStore)(nil)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore sesiones en memoria del proceso, con expiración perezosa.
// Guarda copias serializadas: quien recibe una Session de Load no comparte memoria con el almacén.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]memoryEntry
}

// NewMemoryStore crea el almacén; ttl <= 0 significa sin expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: map[int64]memoryEntry{}}
}

func (m *MemoryStore) Load(_ context.Context, userID int64) (*workflow.Session, error) {
	m.mu.Lock()
	e, ok := m.entries[userID]
	if ok && m.ttl > 0 && m.now().After(e.expiresAt) {
		delete(m.entries, userID)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return workflow.NewSession(userID), nil
	}
	return decode(e.data, userID)
}

func (m *MemoryStore) Save(_ context.Context, s *workflow.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.UserID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}
