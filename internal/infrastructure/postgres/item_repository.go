package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo adaptador PostgreSQL para el catálogo de ítems.
// nota: la tabla no tiene columna de stock; el nivel actual se deriva del
// log de transacciones en cada lectura.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create inserta un ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	const query = `
		INSERT INTO items (id, company_id, category_id, name, reorder_point, unit_price, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.CompanyID, item.CategoryID, item.Name,
		item.ReorderPoint, item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar ítem: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por su ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	const query = `
		SELECT id, company_id, COALESCE(category_id, ''), name, reorder_point, unit_price, created_at, updated_at
		FROM items WHERE id = $1`
	var item entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.CompanyID, &item.CategoryID, &item.Name,
		&item.ReorderPoint, &item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get ítem: %w", err)
	}
	return &item, nil
}

// ListByCompany devuelve el catálogo completo de la empresa.
func (r *ItemRepo) ListByCompany(ctx context.Context, companyID string) ([]entity.Item, error) {
	const query = `
		SELECT id, company_id, COALESCE(category_id, ''), name, reorder_point, unit_price, created_at, updated_at
		FROM items WHERE company_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar ítems: %w", err)
	}
	defer rows.Close()

	var out []entity.Item
	for rows.Next() {
		var item entity.Item
		if err := rows.Scan(
			&item.ID, &item.CompanyID, &item.CategoryID, &item.Name,
			&item.ReorderPoint, &item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("listar ítems scan: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
