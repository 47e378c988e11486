package http_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// fakeDB almacenamiento en memoria; lo escrito en Run se publica solo si fn no falla.
type fakeDB struct {
	mu         sync.Mutex
	codes      map[string]int64
	movements  []*entity.Movement
	products   map[int64]*entity.Product
	failInsert bool
	readErr    error // lo devuelven ExistsByCode y GetByID fuera de la tx
	nextID     int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		codes: map[string]int64{},
		products: map[int64]*entity.Product{
			5: {ID: 5, Name: "Martillo", Brand: "Truper", StockActual: decimal.NewFromInt(10), Status: entity.ProductActive},
			7: {ID: 7, Name: "Clavos", StockActual: decimal.Zero, Status: entity.ProductActive},
		},
	}
}

var errDisk = errors.New("disk full")

func (db *fakeDB) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	st := &fakeTx{db: db, next: db.nextID, codes: map[string]int64{}}
	if err := fn(fakeMovements{st}, fakeTransactions{st}, fakeProducts{st}); err != nil {
		return err
	}
	for code, id := range st.codes {
		db.codes[code] = id
	}
	db.movements = append(db.movements, st.movements...)
	db.nextID = st.next
	return nil
}

func (db *fakeDB) ExistsByCode(_ context.Context, code string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.readErr != nil {
		return false, db.readErr
	}
	_, ok := db.codes[code]
	return ok, nil
}

func (db *fakeDB) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.readErr != nil {
		return nil, db.readErr
	}
	if p, ok := db.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (db *fakeDB) movementCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.movements)
}

type fakeTx struct {
	db        *fakeDB
	codes     map[string]int64
	movements []*entity.Movement
	next      int64
}

type fakeTransactions struct{ *fakeTx }

func (r fakeTransactions) Create(_ context.Context, t *entity.Transaction) error {
	if _, ok := r.db.codes[t.Code]; ok {
		return domain.ErrDuplicateCode
	}
	r.next++
	t.ID = r.next
	r.codes[t.Code] = t.ID
	return nil
}

func (r fakeTransactions) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.db.codes[code]
	return ok, nil
}

func (r fakeTransactions) GetByCode(context.Context, string) (*entity.Transaction, error) {
	return nil, nil
}

type fakeMovements struct{ *fakeTx }

func (r fakeMovements) Create(_ context.Context, m *entity.Movement) error {
	if r.db.failInsert {
		return errDisk
	}
	r.next++
	m.ID = r.next
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, m)
	return nil
}

func (r fakeMovements) ListByCode(context.Context, string) ([]*entity.Movement, error) {
	return nil, nil
}

func (r fakeMovements) ListRecent(context.Context, int) ([]entity.MovementView, error) {
	return nil, nil
}

type fakeProducts struct{ *fakeTx }

func (r fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	if p, ok := r.db.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakeProducts) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r fakeProducts) ListActive(context.Context) ([]*entity.Product, error) {
	return nil, nil
}

// flakyStore SessionStore que puede fallar al guardar; registra los Delete.
type flakyStore struct {
	workflow.SessionStore
	saveErr error
	deleted []int64
}

func (s *flakyStore) Save(ctx context.Context, sess *workflow.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.SessionStore.Save(ctx, sess)
}

func (s *flakyStore) Delete(ctx context.Context, userID int64) error {
	s.deleted = append(s.deleted, userID)
	return s.SessionStore.Delete(ctx, userID)
}
