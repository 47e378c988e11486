package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

// ProductUseCase consultas de catálogo para el selector de productos. Solo lectura: stock y
// precios se mantienen fuera de este servicio.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := toProductResponse(product)
	return &out, nil
}

// ListActive lista productos activos; search filtra por nombre o marca sin distinguir mayúsculas.
func (uc *ProductUseCase) ListActive(ctx context.Context, search string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Brand:        p.Brand,
		StockActual:  p.StockActual,
		StockMinimum: p.StockMinimum,
		UnitPrice:    p.UnitPrice,
		BelowMinimum: p.BelowMinimum(),
	}
}
