package metrics

import "github.com/tu-usuario/pos-admin/internal/domain/entity"

// ItemStock empareja un ítem con su nivel de stock reconstruido.
type ItemStock struct {
	Item  entity.Item
	Level entity.StockLevel
}

// IsLowStock indica si el ítem está en stock bajo: cantidad actual menor o
// igual a su punto de reorden (frontera inclusiva: un ítem exactamente en
// el umbral ya cuenta como stock bajo).
func IsLowStock(pair ItemStock) bool {
	return pair.Level.CurrentQuantity.LessThanOrEqual(pair.Item.ReorderPoint)
}

// IsOutOfStock indica el subconjunto estricto con cantidad exactamente cero.
func IsOutOfStock(pair ItemStock) bool {
	return pair.Level.CurrentQuantity.IsZero()
}

// FilterLowStock devuelve los pares en stock bajo conservando el orden de
// entrada.
func FilterLowStock(pairs []ItemStock) []ItemStock {
	var low []ItemStock
	for _, p := range pairs {
		if IsLowStock(p) {
			low = append(low, p)
		}
	}
	return low
}
