package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterTransactionRequest entrada de POST /api/transactions.
// Quantity siempre positiva; el sentido lo da Type (stock_in, stock_out).
type RegisterTransactionRequest struct {
	ItemID     string          `json:"item_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// TransactionDTO una transacción del log en respuestas HTTP.
type TransactionDTO struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ItemDTO un ítem del catálogo en respuestas HTTP.
type ItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id,omitempty"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CreatedAt    time.Time       `json:"created_at"`
}
