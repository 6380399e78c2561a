package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es el nivel de stock derivado de un ítem. Nunca se persiste:
// es una función pura del log de transacciones y se recalcula en cada
// lectura, por lo que no puede desincronizarse del historial.
//
// CurrentQuantity puede ser negativa si las salidas registradas superan a
// las entradas; el motor no la recorta a cero para no ocultar el problema
// de integridad de datos subyacente.
type StockLevel struct {
	ItemID              string
	CurrentQuantity     decimal.Decimal
	AverageUnitCost     decimal.Decimal // costo promedio ponderado, solo desde entradas
	TotalValue          decimal.Decimal // CurrentQuantity × AverageUnitCost
	LastTransactionDate *time.Time      // nil si el ítem no tiene transacciones
}
