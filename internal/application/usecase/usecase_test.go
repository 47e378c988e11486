package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *mockProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*entity.Product)
	return v, args.Error(1)
}

type mockMovementRepo struct {
	mock.Mock
}

func (m *mockMovementRepo) Create(ctx context.Context, mv *entity.Movement) error {
	return m.Called(ctx, mv).Error(0)
}

func (m *mockMovementRepo) ListByCode(ctx context.Context, code string) ([]*entity.Movement, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).([]*entity.Movement)
	return v, args.Error(1)
}

func (m *mockMovementRepo) ListRecent(ctx context.Context, limit int) ([]entity.MovementView, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]entity.MovementView)
	return v, args.Error(1)
}

func TestProductUseCase_ListActive_Search(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("ListActive", mock.Anything).Return([]*entity.Product{
		{ID: 5, Name: "Martillo", Brand: "Truper", StockActual: decimal.NewFromInt(1), StockMinimum: decimal.NewFromInt(2)},
		{ID: 7, Name: "Clavos", Brand: "Acme"},
	}, nil)
	uc := NewProductUseCase(repo)

	all, err := uc.ListActive(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].BelowMinimum)

	byBrand, err := uc.ListActive(context.Background(), "TRU")
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, int64(5), byBrand[0].ID)
}

func TestProductUseCase_GetByID_NotFound(t *testing.T) {
	repo := new(mockProductRepo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	out, err := NewProductUseCase(repo).GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMovementUseCase_Recent_DeletedProduct(t *testing.T) {
	name := "Martillo"
	now := time.Now()
	repo := new(mockMovementRepo)
	repo.On("ListRecent", mock.Anything, 20).Return([]entity.MovementView{
		{Code: "VTA0001", ProductName: &name, Quantity: decimal.NewFromInt(2), CreatedAt: now, Type: "venta"},
		{Code: "VTA0001", ProductName: nil, Quantity: decimal.NewFromInt(1), CreatedAt: now, Type: "compra"},
	}, nil)

	out, err := NewMovementUseCase(repo).Recent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Martillo", out[0].ProductName)
	assert.Equal(t, "Desconocido", out[1].ProductName)
	assert.Equal(t, "compra", out[1].MovementType)
}
