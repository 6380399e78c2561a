package repository

import (
	"context"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	ListByCompany(ctx context.Context, companyID string) ([]entity.Item, error)
}
