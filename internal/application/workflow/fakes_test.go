package workflow_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// memoryDB base de datos en memoria con semántica transaccional: lo escrito dentro de Run
// solo se publica si fn termina sin error.
type memoryDB struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
	movements    []*entity.Movement
	products     map[int64]*entity.Product
	nextTxID     int64
	nextMovID    int64

	beginErr     error
	failInsertAt int // n-ésimo insert de movimiento (1-based) que falla dentro de una tx; 0 = nunca
	runs         int
}

func newMemoryDB(products ...*entity.Product) *memoryDB {
	db := &memoryDB{
		transactions: map[string]*entity.Transaction{},
		products:     map[int64]*entity.Product{},
	}
	for _, p := range products {
		db.products[p.ID] = p
	}
	return db
}

var errDisk = errors.New("disk full")

func (db *memoryDB) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.runs++
	if db.beginErr != nil {
		return db.beginErr
	}
	tx := &memoryTx{db: db, nextTxID: db.nextTxID, nextMovID: db.nextMovID}
	if err := fn(memMovements{tx}, memTransactions{tx}, memProducts{tx}); err != nil {
		return err
	}
	for _, t := range tx.transactions {
		db.transactions[t.Code] = t
	}
	db.movements = append(db.movements, tx.movements...)
	db.nextTxID = tx.nextTxID
	db.nextMovID = tx.nextMovID
	return nil
}

func (db *memoryDB) ExistsByCode(_ context.Context, code string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.transactions[code]
	return ok, nil
}

func (db *memoryDB) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (db *memoryDB) movementCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.movements)
}

type memoryTx struct {
	db           *memoryDB
	transactions []*entity.Transaction
	movements    []*entity.Movement
	nextTxID     int64
	nextMovID    int64
}

type memTransactions struct{ *memoryTx }

func (r memTransactions) Create(_ context.Context, t *entity.Transaction) error {
	tx := r.memoryTx
	if _, ok := tx.db.transactions[t.Code]; ok {
		return domain.ErrDuplicateCode
	}
	tx.nextTxID++
	t.ID = tx.nextTxID
	tx.transactions = append(tx.transactions, t)
	return nil
}

func (r memTransactions) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.db.transactions[code]
	return ok, nil
}

func (r memTransactions) GetByCode(_ context.Context, code string) (*entity.Transaction, error) {
	return r.db.transactions[code], nil
}

type memMovements struct{ *memoryTx }

func (r memMovements) Create(_ context.Context, m *entity.Movement) error {
	tx := r.memoryTx
	if tx.db.failInsertAt > 0 && len(tx.movements)+1 == tx.db.failInsertAt {
		return errDisk
	}
	tx.nextMovID++
	m.ID = tx.nextMovID
	m.CreatedAt = time.Now()
	tx.movements = append(tx.movements, m)
	return nil
}

func (r memMovements) ListByCode(_ context.Context, code string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.db.movements {
		if m.Code == code {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r memMovements) ListRecent(context.Context, int) ([]entity.MovementView, error) {
	return nil, nil
}

type memProducts struct{ *memoryTx }

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) ListActive(context.Context) ([]*entity.Product, error) {
	return nil, nil
}

// mockChecker TransactionChecker con testify/mock para forzar errores de almacenamiento.
type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// mockCatalog Catalog con testify/mock.
type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}
