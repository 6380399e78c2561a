package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario (value object conceptual).
const (
	TransactionTypeStockIn  = "stock_in"  // entrada de mercancía (compra)
	TransactionTypeStockOut = "stock_out" // salida de mercancía (venta)
)

// Transaction es un evento inmutable del log de inventario (append-only).
// El stock actual nunca se guarda como contador mutable: se reconstruye
// reproduciendo este log, por lo que CreatedAt es la única clave de orden.
// El signo de la cantidad lo determina Type; Quantity siempre es positiva.
type Transaction struct {
	ID         string
	CompanyID  string
	ItemID     string
	Type       string          // stock_in, stock_out
	Quantity   decimal.Decimal
	TotalValue decimal.Decimal // costo total en stock_in, ingreso total en stock_out
	CreatedAt  time.Time
	CreatedBy  string // UserID
}
