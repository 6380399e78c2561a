package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del inventario. No guarda stock: el nivel
// actual se deriva del log de transacciones (ver StockLevel).
type Item struct {
	ID           string
	CompanyID    string
	CategoryID   string // vacío si no tiene categoría
	Name         string
	ReorderPoint decimal.Decimal // umbral de stock bajo (inclusive)
	UnitPrice    decimal.Decimal // precio de venta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
