package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsSnapshotDTO respuesta de GET /api/dashboard/metrics.
// Totales del período resuelto: unidades y dinero movido en cada sentido.
type MetricsSnapshotDTO struct {
	Period                    string          `json:"period"`
	TotalStockIn              decimal.Decimal `json:"total_stock_in"`
	TotalStockOut             decimal.Decimal `json:"total_stock_out"`
	RevenueSpentOnStockIn     decimal.Decimal `json:"revenue_spent_on_stock_in"`
	RevenueEarnedFromStockOut decimal.Decimal `json:"revenue_earned_from_stock_out"`
}

// TrendBucketDTO un punto de la serie de tendencias del dashboard.
// BucketTime permite al frontend ordenar cronológicamente: las etiquetas
// ("Mon", "14:00") no ordenan como strings.
type TrendBucketDTO struct {
	Period     string          `json:"period"` // etiqueta del bucket
	BucketTime time.Time       `json:"bucket_time"`
	StockIn    decimal.Decimal `json:"stock_in"`
	StockOut   decimal.Decimal `json:"stock_out"`
	RevenueIn  decimal.Decimal `json:"revenue_in"`
	RevenueOut decimal.Decimal `json:"revenue_out"`
}

// StockLevelDTO nivel de stock derivado de un ítem, con enriquecimiento
// opcional de nombre y categoría. CategoryName queda vacío si el ítem no
// tiene categoría o si el lookup de enriquecimiento falló (degradación
// parcial, nunca aborta el lote).
type StockLevelDTO struct {
	ItemID              string          `json:"item_id"`
	ItemName            string          `json:"item_name,omitempty"`
	CategoryID          string          `json:"category_id,omitempty"`
	CategoryName        string          `json:"category_name,omitempty"`
	CurrentQuantity     decimal.Decimal `json:"current_quantity"`
	AverageUnitCost     decimal.Decimal `json:"average_unit_cost"`
	TotalValue          decimal.Decimal `json:"total_value"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`
}

// LowStockItemDTO ítem en o por debajo de su punto de reorden.
type LowStockItemDTO struct {
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	OutOfStock      bool            `json:"out_of_stock"`
}
