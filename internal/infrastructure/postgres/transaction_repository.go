package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo adaptador PostgreSQL del log de transacciones.
// La tabla es append-only: solo INSERT y SELECT, nunca UPDATE.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create apila una transacción al log.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	const query = `
		INSERT INTO transactions (id, company_id, item_id, type, quantity, total_value, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.CompanyID, tx.ItemID, tx.Type,
		tx.Quantity, tx.TotalValue, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar transacción: %w", err)
	}
	return nil
}

// List devuelve transacciones según el filtro. From/To acotan con
// [From, To) semiabierto. El orden devuelto no es parte del contrato del
// puerto (el motor de métricas reordena); se ordena por created_at solo
// como cortesía para los listados de la UI.
func (r *TransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]entity.Transaction, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, cond+"$"+strconv.Itoa(len(args)))
	}

	if filter.CompanyID != "" {
		add("company_id = ", filter.CompanyID)
	}
	if filter.ItemID != "" {
		add("item_id = ", filter.ItemID)
	}
	if filter.From != nil {
		add("created_at >= ", *filter.From)
	}
	if filter.To != nil {
		add("created_at < ", *filter.To)
	}

	query := `SELECT id, company_id, item_id, type, quantity, total_value, created_at, created_by
		FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar transacciones: %w", err)
	}
	defer rows.Close()

	var out []entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.CompanyID, &tx.ItemID, &tx.Type,
			&tx.Quantity, &tx.TotalValue, &tx.CreatedAt, &tx.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("listar transacciones scan: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}
