package usecase

import (
	"context"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

const unknownProduct = "Desconocido"

// MovementUseCase listado de movimientos ya registrados.
type MovementUseCase struct {
	repo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo}
}

// Recent últimos limit movimientos, más recientes primero.
func (uc *MovementUseCase) Recent(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	list, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		name := unknownProduct
		if m.ProductName != nil {
			name = *m.ProductName
		}
		out = append(out, dto.MovementResponse{
			Code:         m.Code,
			ProductName:  name,
			Quantity:     m.Quantity,
			Date:         m.CreatedAt,
			MovementType: m.Type,
		})
	}
	return out, nil
}
