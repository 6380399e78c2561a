package metrics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// Snapshot son los totales agregados de un período resuelto: las cuatro
// cifras del encabezado del dashboard.
type Snapshot struct {
	TotalStockIn              decimal.Decimal
	TotalStockOut             decimal.Decimal
	RevenueSpentOnStockIn     decimal.Decimal
	RevenueEarnedFromStockOut decimal.Decimal
}

// TrendBucket acumula el movimiento de un sub-intervalo del período.
// Label no es ordenable como string para todas las granularidades ("Mon" <
// "Tue" no vale lexicográficamente); Time existe para ordenar.
type TrendBucket struct {
	Label      string
	Time       time.Time // inicio del bucket
	StockIn    decimal.Decimal
	StockOut   decimal.Decimal
	RevenueIn  decimal.Decimal
	RevenueOut decimal.Decimal
}

// Summarize reduce transacciones ya filtradas a [start, end) al Snapshot
// del período. Debe recibir exactamente el mismo slice que AggregateTrend
// para que los totales concilien con la suma de los buckets.
func Summarize(txs []entity.Transaction) Snapshot {
	s := Snapshot{
		TotalStockIn:              decimal.Zero,
		TotalStockOut:             decimal.Zero,
		RevenueSpentOnStockIn:     decimal.Zero,
		RevenueEarnedFromStockOut: decimal.Zero,
	}
	for i := range txs {
		tx := &txs[i]
		switch tx.Type {
		case entity.TransactionTypeStockIn:
			s.TotalStockIn = s.TotalStockIn.Add(tx.Quantity)
			s.RevenueSpentOnStockIn = s.RevenueSpentOnStockIn.Add(tx.TotalValue)
		case entity.TransactionTypeStockOut:
			s.TotalStockOut = s.TotalStockOut.Add(tx.Quantity)
			s.RevenueEarnedFromStockOut = s.RevenueEarnedFromStockOut.Add(tx.TotalValue)
		}
	}
	return s
}

// AggregateTrend agrupa transacciones ya filtradas al período en buckets
// según la granularidad del token solicitado. Solo aparecen buckets con al
// menos una transacción: los huecos no se rellenan con ceros aquí (eso es
// decisión de la capa de presentación). El orden del resultado no está
// especificado; el consumidor ordena por Time.
func AggregateTrend(p Period, txs []entity.Transaction) []TrendBucket {
	g := p.Granularity()
	buckets := make(map[string]*TrendBucket)

	for i := range txs {
		tx := &txs[i]
		key := g.BucketKey(tx.CreatedAt)
		b, ok := buckets[key]
		if !ok {
			b = &TrendBucket{
				Label:      key,
				Time:       g.BucketTime(tx.CreatedAt),
				StockIn:    decimal.Zero,
				StockOut:   decimal.Zero,
				RevenueIn:  decimal.Zero,
				RevenueOut: decimal.Zero,
			}
			buckets[key] = b
		}
		switch tx.Type {
		case entity.TransactionTypeStockIn:
			b.StockIn = b.StockIn.Add(tx.Quantity)
			b.RevenueIn = b.RevenueIn.Add(tx.TotalValue)
		case entity.TransactionTypeStockOut:
			b.StockOut = b.StockOut.Add(tx.Quantity)
			b.RevenueOut = b.RevenueOut.Add(tx.TotalValue)
		}
	}

	out := make([]TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	return out
}
