package metrics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// ReconstructStockLevel deriva el nivel de stock actual de un ítem
// reproduciendo su log completo de transacciones en orden CreatedAt
// ascendente (empates por ID para que el resultado sea determinista bajo
// cualquier permutación de entrada).
//
// Entradas (stock_in) suman cantidad e incorporan su costo unitario
// implícito (TotalValue/Quantity) al promedio ponderado, manteniendo como
// peso la cantidad acumulada recibida. Salidas (stock_out) solo restan
// cantidad: la base de costo la fijan únicamente las entradas.
//
// Una entrada con cantidad cero o negativa no participa del promedio (la
// división sería indefinida) pero su efecto sobre la cantidad se aplica
// tal cual. La cantidad resultante puede ser negativa si las salidas
// superan a las entradas registradas; no se recorta a cero.
func ReconstructStockLevel(itemID string, txs []entity.Transaction) entity.StockLevel {
	sorted := make([]entity.Transaction, len(txs))
	copy(sorted, txs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	level := entity.StockLevel{
		ItemID:          itemID,
		CurrentQuantity: decimal.Zero,
		AverageUnitCost: decimal.Zero,
		TotalValue:      decimal.Zero,
	}
	received := decimal.Zero // acumulado recibido, peso del promedio ponderado

	for i := range sorted {
		tx := &sorted[i]
		switch tx.Type {
		case entity.TransactionTypeStockIn:
			if tx.Quantity.IsPositive() {
				unitCost := tx.TotalValue.Div(tx.Quantity)
				level.AverageUnitCost = foldAverageCost(received, level.AverageUnitCost, tx.Quantity, unitCost)
				received = received.Add(tx.Quantity)
			}
			level.CurrentQuantity = level.CurrentQuantity.Add(tx.Quantity)
		case entity.TransactionTypeStockOut:
			level.CurrentQuantity = level.CurrentQuantity.Sub(tx.Quantity)
		}
		if level.LastTransactionDate == nil || tx.CreatedAt.After(*level.LastTransactionDate) {
			last := tx.CreatedAt
			level.LastTransactionDate = &last
		}
	}

	level.TotalValue = level.CurrentQuantity.Mul(level.AverageUnitCost)
	return level
}

// foldAverageCost incorpora una entrada al costo promedio ponderado:
// ((acumulado × costoActual) + (cantidad × costoEntrada)) / (acumulado + cantidad)
func foldAverageCost(accumulated, currentCost, quantity, unitCost decimal.Decimal) decimal.Decimal {
	total := accumulated.Add(quantity)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := accumulated.Mul(currentCost).Add(quantity.Mul(unitCost))
	return num.Div(total)
}
