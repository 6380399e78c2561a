package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/metrics"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRepo struct {
	txs []entity.Transaction
	err error
}

func (f *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	f.txs = append(f.txs, *tx)
	return nil
}

// List aplica el filtro igual que lo haría el store: [From, To) semiabierto.
func (f *fakeTxRepo) List(_ context.Context, filter repository.TransactionFilter) ([]entity.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Transaction
	for _, tx := range f.txs {
		if filter.CompanyID != "" && tx.CompanyID != filter.CompanyID {
			continue
		}
		if filter.ItemID != "" && tx.ItemID != filter.ItemID {
			continue
		}
		if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !tx.CreatedAt.Before(*filter.To) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

type fakeItemRepo struct {
	items []entity.Item
	err   error
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, errors.New("ítem no encontrado")
}

func (f *fakeItemRepo) ListByCompany(_ context.Context, companyID string) ([]entity.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Item
	for _, it := range f.items {
		if it.CompanyID == companyID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]entity.Category
	failIDs    map[string]bool
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if f.failIDs[id] {
		return nil, errors.New("categoría inaccesible")
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, errors.New("categoría no encontrada")
	}
	return &c, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "co-1"
	testNowDay    = 15
)

var ucNow = time.Date(2026, time.March, testNowDay, 16, 0, 0, 0, time.UTC)

func newTestUseCase(txRepo *fakeTxRepo, itemRepo *fakeItemRepo, catRepo *fakeCategoryRepo) *DashboardUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := NewDashboardUseCase(txRepo, itemRepo, catRepo, log)
	uc.now = func() time.Time { return ucNow }
	return uc
}

func companyTx(id, itemID, txType string, qty, value int64, at time.Time) entity.Transaction {
	return entity.Transaction{
		ID:         id,
		CompanyID:  testCompanyID,
		ItemID:     itemID,
		Type:       txType,
		Quantity:   decimal.NewFromInt(qty),
		TotalValue: decimal.NewFromInt(value),
		CreatedAt:  at,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas y tendencias
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboardMetrics_FiltraAlPeriodo(t *testing.T) {
	today := time.Date(2026, time.March, testNowDay, 9, 0, 0, 0, time.UTC)
	lastWeek := today.AddDate(0, 0, -8) // fuera de "today"
	txRepo := &fakeTxRepo{txs: []entity.Transaction{
		companyTx("t1", "item-1", entity.TransactionTypeStockIn, 20, 200, today),
		companyTx("t2", "item-1", entity.TransactionTypeStockOut, 5, 100, today.Add(5*time.Hour)),
		companyTx("t3", "item-1", entity.TransactionTypeStockIn, 99, 990, lastWeek),
	}}
	uc := newTestUseCase(txRepo, &fakeItemRepo{}, &fakeCategoryRepo{})

	snap, err := uc.GetDashboardMetrics(context.Background(), testCompanyID, metrics.PeriodToday)
	require.NoError(t, err)

	assert.Equal(t, "today", snap.Period)
	assert.True(t, snap.TotalStockIn.Equal(decimal.NewFromInt(20)),
		"la entrada de la semana pasada no pertenece a today")
	assert.True(t, snap.TotalStockOut.Equal(decimal.NewFromInt(5)))
	assert.True(t, snap.RevenueSpentOnStockIn.Equal(decimal.NewFromInt(200)))
	assert.True(t, snap.RevenueEarnedFromStockOut.Equal(decimal.NewFromInt(100)))
}

// Métricas y tendencias de un mismo período resuelven el mismo intervalo:
// la suma de los buckets concilia exactamente con el snapshot.
func TestMetricsYTrends_Concilian(t *testing.T) {
	base := time.Date(2026, time.March, testNowDay-6, 8, 0, 0, 0, time.UTC)
	txRepo := &fakeTxRepo{}
	for i := 0; i < 12; i++ {
		txType := entity.TransactionTypeStockIn
		if i%2 == 0 {
			txType = entity.TransactionTypeStockOut
		}
		tx := companyTx(
			string(rune('a'+i)), "item-1", txType,
			int64(i+1), int64((i+1)*13),
			base.Add(time.Duration(i*9)*time.Hour),
		)
		txRepo.txs = append(txRepo.txs, tx)
	}
	uc := newTestUseCase(txRepo, &fakeItemRepo{}, &fakeCategoryRepo{})
	ctx := context.Background()

	snap, err := uc.GetDashboardMetrics(ctx, testCompanyID, metrics.PeriodThisWeek)
	require.NoError(t, err)
	trends, err := uc.GetInventoryTrends(ctx, testCompanyID, metrics.PeriodThisWeek)
	require.NoError(t, err)

	sumIn, sumOut := decimal.Zero, decimal.Zero
	revIn, revOut := decimal.Zero, decimal.Zero
	for _, b := range trends {
		sumIn = sumIn.Add(b.StockIn)
		sumOut = sumOut.Add(b.StockOut)
		revIn = revIn.Add(b.RevenueIn)
		revOut = revOut.Add(b.RevenueOut)
	}

	assert.True(t, sumIn.Equal(snap.TotalStockIn))
	assert.True(t, sumOut.Equal(snap.TotalStockOut))
	assert.True(t, revIn.Equal(snap.RevenueSpentOnStockIn))
	assert.True(t, revOut.Equal(snap.RevenueEarnedFromStockOut))
}

func TestGetInventoryTrends_OrdenCronologico(t *testing.T) {
	day := func(d, h int) time.Time {
		return time.Date(2026, time.March, d, h, 0, 0, 0, time.UTC)
	}
	// Viernes 13 y lunes 9: "Fri" < "Mon" como strings, pero la serie debe
	// venir en orden cronológico.
	txRepo := &fakeTxRepo{txs: []entity.Transaction{
		companyTx("t1", "item-1", entity.TransactionTypeStockIn, 1, 10, day(13, 10)),
		companyTx("t2", "item-1", entity.TransactionTypeStockIn, 2, 20, day(9, 10)),
		companyTx("t3", "item-1", entity.TransactionTypeStockIn, 3, 30, day(11, 10)),
	}}
	uc := newTestUseCase(txRepo, &fakeItemRepo{}, &fakeCategoryRepo{})

	trends, err := uc.GetInventoryTrends(context.Background(), testCompanyID, metrics.PeriodThisWeek)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	assert.Equal(t, "Mon", trends[0].Period)
	assert.Equal(t, "Wed", trends[1].Period)
	assert.Equal(t, "Fri", trends[2].Period)
	assert.True(t, trends[0].BucketTime.Before(trends[1].BucketTime))
	assert.True(t, trends[1].BucketTime.Before(trends[2].BucketTime))
}

func TestGetDashboardMetrics_FalloDelStoreEsFatal(t *testing.T) {
	txRepo := &fakeTxRepo{err: errors.New("conexión rechazada")}
	uc := newTestUseCase(txRepo, &fakeItemRepo{}, &fakeCategoryRepo{})
	ctx := context.Background()

	_, err := uc.GetDashboardMetrics(ctx, testCompanyID, metrics.PeriodToday)
	assert.Error(t, err)
	_, err = uc.GetInventoryTrends(ctx, testCompanyID, metrics.PeriodToday)
	assert.Error(t, err)
	_, err = uc.GetStockLevels(ctx, testCompanyID)
	assert.Error(t, err)
	_, err = uc.GetLowStockItems(ctx, testCompanyID)
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Niveles de stock y stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func stockFixture() (*fakeTxRepo, *fakeItemRepo, *fakeCategoryRepo) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
	}
	txRepo := &fakeTxRepo{txs: []entity.Transaction{
		companyTx("t1", "item-1", entity.TransactionTypeStockIn, 50, 500, day(1)),
		companyTx("t2", "item-1", entity.TransactionTypeStockOut, 45, 900, day(2)),
		companyTx("t3", "item-2", entity.TransactionTypeStockIn, 100, 2000, day(3)),
		// item-fantasma existe solo en el log (registro de catálogo borrado)
		companyTx("t4", "item-fantasma", entity.TransactionTypeStockIn, 7, 70, day(4)),
	}}
	itemRepo := &fakeItemRepo{items: []entity.Item{
		{ID: "item-1", CompanyID: testCompanyID, Name: "Café molido", CategoryID: "cat-1",
			ReorderPoint: decimal.NewFromInt(10)},
		{ID: "item-2", CompanyID: testCompanyID, Name: "Azúcar", CategoryID: "cat-rota",
			ReorderPoint: decimal.NewFromInt(5)},
		{ID: "item-3", CompanyID: testCompanyID, Name: "Filtros", // sin transacciones
			ReorderPoint: decimal.NewFromInt(3)},
	}}
	catRepo := &fakeCategoryRepo{
		categories: map[string]entity.Category{
			"cat-1": {ID: "cat-1", Name: "Bebidas"},
		},
		failIDs: map[string]bool{"cat-rota": true},
	}
	return txRepo, itemRepo, catRepo
}

func TestGetStockLevels_ReconstruyeYEnriquece(t *testing.T) {
	uc := newTestUseCase(stockFixture())

	levels, err := uc.GetStockLevels(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, levels, 4, "tres ítems del catálogo más el huérfano del log")

	byID := map[string]int{}
	for i, l := range levels {
		byID[l.ItemID] = i
	}

	item1 := levels[byID["item-1"]]
	assert.True(t, item1.CurrentQuantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, item1.AverageUnitCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, item1.TotalValue.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Bebidas", item1.CategoryName)
	require.NotNil(t, item1.LastTransactionDate)
	assert.Equal(t, 2, item1.LastTransactionDate.Day())

	// El lookup de cat-rota falla: el ítem sale sin clasificar, no aborta.
	item2 := levels[byID["item-2"]]
	assert.True(t, item2.CurrentQuantity.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, item2.CategoryName)

	// Ítem sin transacciones: todo en cero y sin última fecha.
	item3 := levels[byID["item-3"]]
	assert.True(t, item3.CurrentQuantity.IsZero())
	assert.True(t, item3.AverageUnitCost.IsZero())
	assert.True(t, item3.TotalValue.IsZero())
	assert.Nil(t, item3.LastTransactionDate)

	// Huérfano: presente en el log, ausente del catálogo; sale sin nombre.
	ghost := levels[byID["item-fantasma"]]
	assert.Empty(t, ghost.ItemName)
	assert.True(t, ghost.CurrentQuantity.Equal(decimal.NewFromInt(7)))
}

func TestGetLowStockItems_FronteraInclusive(t *testing.T) {
	uc := newTestUseCase(stockFixture())

	low, err := uc.GetLowStockItems(context.Background(), testCompanyID)
	require.NoError(t, err)

	// item-1: 5 ≤ 10 → bajo. item-2: 100 > 5 → no. item-3: 0 ≤ 3 → bajo y
	// agotado. El huérfano no aparece: sin catálogo no hay punto de reorden.
	require.Len(t, low, 2)
	assert.Equal(t, "item-1", low[0].ItemID)
	assert.False(t, low[0].OutOfStock)
	assert.Equal(t, "item-3", low[1].ItemID)
	assert.True(t, low[1].OutOfStock)
}

func TestGetStockLevels_IgnoraOtrasEmpresas(t *testing.T) {
	txRepo, itemRepo, catRepo := stockFixture()
	txRepo.txs = append(txRepo.txs, entity.Transaction{
		ID: "ajena", CompanyID: "co-2", ItemID: "item-1",
		Type:     entity.TransactionTypeStockIn,
		Quantity: decimal.NewFromInt(1000), TotalValue: decimal.NewFromInt(1),
		CreatedAt: ucNow.AddDate(0, 0, -1),
	})
	uc := newTestUseCase(txRepo, itemRepo, catRepo)

	levels, err := uc.GetStockLevels(context.Background(), testCompanyID)
	require.NoError(t, err)
	for _, l := range levels {
		if l.ItemID == "item-1" {
			assert.True(t, l.CurrentQuantity.Equal(decimal.NewFromInt(5)),
				"la transacción de otra empresa no debe sumar")
		}
	}
}
