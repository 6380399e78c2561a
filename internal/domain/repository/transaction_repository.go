package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// TransactionFilter restringe un listado de transacciones. From/To definen
// un intervalo semiabierto [From, To); en nil no se aplica esa cota.
// Limit <= 0 significa sin límite (el motor de métricas necesita el
// historial completo de la empresa).
type TransactionFilter struct {
	CompanyID string
	ItemID    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository define el puerto de persistencia del log de
// transacciones (DIP). El store devuelve las filas en orden arbitrario;
// el motor de métricas impone su propio orden al reproducirlas.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	List(ctx context.Context, filter TransactionFilter) ([]entity.Transaction, error)
}
