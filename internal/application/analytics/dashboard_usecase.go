// Package analytics contiene el caso de uso del Dashboard de Inventario:
// métricas del período, tendencias por bucket y niveles de stock derivados
// del log de transacciones.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tu-usuario/pos-admin/internal/application/dto"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/metrics"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// DashboardUseCase orquesta el motor de métricas: resuelve el período,
// trae la rebanada de transacciones del store y reduce en memoria.
//
// No mantiene estado mutable entre peticiones: cada llamada deriva todo de
// nuevo desde el log, así que las peticiones concurrentes son independientes
// y no hay nada que cachear ni sincronizar.
type DashboardUseCase struct {
	txRepo       repository.TransactionRepository
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	log          *logger.Logger

	now func() time.Time // inyectable en tests
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		txRepo:       txRepo,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		log:          log,
		now:          time.Now,
	}
}

// GetDashboardMetrics devuelve los totales del período solicitado.
// Un fallo del store es fatal para la llamada: no se sintetizan resultados
// parciales.
func (uc *DashboardUseCase) GetDashboardMetrics(
	ctx context.Context,
	companyID string,
	period metrics.Period,
) (*dto.MetricsSnapshotDTO, error) {
	txs, err := uc.periodTransactions(ctx, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("dashboard: métricas del período: %w", err)
	}

	snap := metrics.Summarize(txs)
	return &dto.MetricsSnapshotDTO{
		Period:                    string(period),
		TotalStockIn:              snap.TotalStockIn,
		TotalStockOut:             snap.TotalStockOut,
		RevenueSpentOnStockIn:     snap.RevenueSpentOnStockIn,
		RevenueEarnedFromStockOut: snap.RevenueEarnedFromStockOut,
	}, nil
}

// GetInventoryTrends devuelve la serie de buckets del período, ordenada
// cronológicamente por el timestamp de bucket (las etiquetas no ordenan
// como strings). Usa la misma resolución de intervalo que
// GetDashboardMetrics, así que para un mismo período la suma de los buckets
// concilia exactamente con el snapshot.
func (uc *DashboardUseCase) GetInventoryTrends(
	ctx context.Context,
	companyID string,
	period metrics.Period,
) ([]dto.TrendBucketDTO, error) {
	txs, err := uc.periodTransactions(ctx, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tendencias del período: %w", err)
	}

	buckets := metrics.AggregateTrend(period, txs)
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Time.Before(buckets[j].Time)
	})

	out := make([]dto.TrendBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.TrendBucketDTO{
			Period:     b.Label,
			BucketTime: b.Time,
			StockIn:    b.StockIn,
			StockOut:   b.StockOut,
			RevenueIn:  b.RevenueIn,
			RevenueOut: b.RevenueOut,
		})
	}
	return out, nil
}

// GetStockLevels reconstruye el nivel de stock de todos los ítems de la
// empresa reproduciendo el historial completo (nunca acotado a un período:
// el stock actual siempre es "a hoy"). Incluye ítems sin transacciones
// (nivel en cero) e ítems que solo existen en el log (registro de catálogo
// borrado: se devuelven sin nombre, el enriquecimiento degrada en silencio).
func (uc *DashboardUseCase) GetStockLevels(
	ctx context.Context,
	companyID string,
) ([]dto.StockLevelDTO, error) {
	pairs, orphans, err := uc.reconstructAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: niveles de stock: %w", err)
	}

	categoryNames := uc.resolveCategoryNames(ctx, pairs)

	out := make([]dto.StockLevelDTO, 0, len(pairs)+len(orphans))
	for _, p := range pairs {
		out = append(out, dto.StockLevelDTO{
			ItemID:              p.Item.ID,
			ItemName:            p.Item.Name,
			CategoryID:          p.Item.CategoryID,
			CategoryName:        categoryNames[p.Item.CategoryID],
			CurrentQuantity:     p.Level.CurrentQuantity,
			AverageUnitCost:     p.Level.AverageUnitCost,
			TotalValue:          p.Level.TotalValue,
			LastTransactionDate: p.Level.LastTransactionDate,
		})
	}
	for _, level := range orphans {
		out = append(out, dto.StockLevelDTO{
			ItemID:              level.ItemID,
			CurrentQuantity:     level.CurrentQuantity,
			AverageUnitCost:     level.AverageUnitCost,
			TotalValue:          level.TotalValue,
			LastTransactionDate: level.LastTransactionDate,
		})
	}
	return out, nil
}

// GetLowStockItems devuelve los ítems en o por debajo de su punto de
// reorden, sobre los niveles derivados del historial completo.
func (uc *DashboardUseCase) GetLowStockItems(
	ctx context.Context,
	companyID string,
) ([]dto.LowStockItemDTO, error) {
	pairs, _, err := uc.reconstructAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", err)
	}

	low := metrics.FilterLowStock(pairs)
	out := make([]dto.LowStockItemDTO, 0, len(low))
	for _, p := range low {
		out = append(out, dto.LowStockItemDTO{
			ItemID:          p.Item.ID,
			ItemName:        p.Item.Name,
			CurrentQuantity: p.Level.CurrentQuantity,
			ReorderPoint:    p.Item.ReorderPoint,
			OutOfStock:      metrics.IsOutOfStock(p),
		})
	}
	return out, nil
}

// periodTransactions resuelve el período una sola vez y trae la rebanada
// [start, end) del store.
func (uc *DashboardUseCase) periodTransactions(
	ctx context.Context,
	companyID string,
	period metrics.Period,
) ([]entity.Transaction, error) {
	start, end := period.Range(uc.now())
	return uc.txRepo.List(ctx, repository.TransactionFilter{
		CompanyID: companyID,
		From:      &start,
		To:        &end,
	})
}

// reconstructAll trae el catálogo y el log completo de la empresa y deriva
// un StockLevel por ítem. Devuelve aparte los niveles "huérfanos": ítems
// presentes en el log pero ausentes del catálogo.
func (uc *DashboardUseCase) reconstructAll(
	ctx context.Context,
	companyID string,
) (pairs []metrics.ItemStock, orphans []entity.StockLevel, err error) {
	items, err := uc.itemRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("listar ítems: %w", err)
	}
	txs, err := uc.txRepo.List(ctx, repository.TransactionFilter{CompanyID: companyID})
	if err != nil {
		return nil, nil, fmt.Errorf("listar transacciones: %w", err)
	}

	byItem := make(map[string][]entity.Transaction)
	for _, tx := range txs {
		byItem[tx.ItemID] = append(byItem[tx.ItemID], tx)
	}

	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
		pairs = append(pairs, metrics.ItemStock{
			Item:  item,
			Level: metrics.ReconstructStockLevel(item.ID, byItem[item.ID]),
		})
	}

	orphanIDs := make([]string, 0)
	for itemID := range byItem {
		if !known[itemID] {
			orphanIDs = append(orphanIDs, itemID)
		}
	}
	sort.Strings(orphanIDs)
	for _, itemID := range orphanIDs {
		uc.log.Warn().
			Str("item_id", itemID).
			Str("company_id", companyID).
			Msg("transacciones de un ítem ausente del catálogo")
		orphans = append(orphans, metrics.ReconstructStockLevel(itemID, byItem[itemID]))
	}
	return pairs, orphans, nil
}

// resolveCategoryNames resuelve en paralelo (fan-out) los nombres de las
// categorías referenciadas. Un lookup fallido se registra y deja a sus
// ítems sin clasificar; nunca cancela a los demás ni aborta el lote.
func (uc *DashboardUseCase) resolveCategoryNames(
	ctx context.Context,
	pairs []metrics.ItemStock,
) map[string]string {
	ids := make([]string, 0)
	seen := make(map[string]bool)
	for _, p := range pairs {
		if p.Item.CategoryID != "" && !seen[p.Item.CategoryID] {
			seen[p.Item.CategoryID] = true
			ids = append(ids, p.Item.CategoryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	type lookupResult struct {
		id   string
		name string
		err  error
	}
	ch := make(chan lookupResult, len(ids))
	for _, id := range ids {
		go func(id string) {
			cat, err := uc.categoryRepo.GetByID(ctx, id)
			if err != nil {
				ch <- lookupResult{id: id, err: err}
				return
			}
			ch <- lookupResult{id: id, name: cat.Name}
		}(id)
	}

	names := make(map[string]string, len(ids))
	for range ids {
		r := <-ch
		if r.err != nil {
			uc.log.Warn().
				Err(r.err).
				Str("category_id", r.id).
				Msg("enriquecimiento de categoría falló; ítems quedan sin clasificar")
			continue
		}
		names[r.id] = r.name
	}
	return names
}
