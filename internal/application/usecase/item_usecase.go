// Package usecase contiene los casos de uso CRUD simples del catálogo.
package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-admin/internal/application/dto"
	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
)

// ItemUseCase lecturas del catálogo de ítems para la capa de presentación.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// List devuelve los ítems de la empresa.
func (uc *ItemUseCase) List(ctx context.Context, companyID string) ([]dto.ItemDTO, error) {
	items, err := uc.itemRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar ítems: %w", err)
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, itemToDTO(&items[i]))
	}
	return out, nil
}

// GetByID devuelve un ítem validando que pertenezca a la empresa del token.
func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	d := itemToDTO(item)
	return &d, nil
}

func itemToDTO(item *entity.Item) dto.ItemDTO {
	return dto.ItemDTO{
		ID:           item.ID,
		Name:         item.Name,
		CategoryID:   item.CategoryID,
		ReorderPoint: item.ReorderPoint,
		UnitPrice:    item.UnitPrice,
		CreatedAt:    item.CreatedAt,
	}
}
