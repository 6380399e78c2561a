package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/tu-usuario/pos-admin/internal/application/analytics"
	"github.com/tu-usuario/pos-admin/internal/application/dto"
	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
	apphttp "github.com/tu-usuario/pos-admin/internal/interfaces/http"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos, suficientes para ejercitar los handlers end-to-end
// ──────────────────────────────────────────────────────────────────────────────

type memTxRepo struct{ txs []entity.Transaction }

func (m *memTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	m.txs = append(m.txs, *tx)
	return nil
}

func (m *memTxRepo) List(_ context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, tx := range m.txs {
		if f.CompanyID != "" && tx.CompanyID != f.CompanyID {
			continue
		}
		if f.From != nil && tx.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !tx.CreatedAt.Before(*f.To) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

type memItemRepo struct{ items []entity.Item }

func (m *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	m.items = append(m.items, *item)
	return nil
}

func (m *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return &m.items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memItemRepo) ListByCompany(_ context.Context, companyID string) ([]entity.Item, error) {
	var out []entity.Item
	for _, it := range m.items {
		if it.CompanyID == companyID {
			out = append(out, it)
		}
	}
	return out, nil
}

type memCategoryRepo struct{}

func (memCategoryRepo) Create(_ context.Context, _ *entity.Category) error { return nil }
func (memCategoryRepo) GetByID(_ context.Context, _ string) (*entity.Category, error) {
	return nil, domain.ErrNotFound
}

func buildDashboardApp(txRepo *memTxRepo, itemRepo *memItemRepo) *fiber.App {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := appanalytics.NewDashboardUseCase(txRepo, itemRepo, memCategoryRepo{}, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DashboardUC: uc,
		JWTSecret:   testJWTSecret,
	})
	return app
}

func dashboardGET(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleVendedor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGetMetrics_PeriodoInvalido400(t *testing.T) {
	app := buildDashboardApp(&memTxRepo{}, &memItemRepo{})

	resp := dashboardGET(t, app, "/api/dashboard/metrics?period=quarterly")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_PERIOD", body.Code)
}

func TestGetMetrics_SumaElPeriodo(t *testing.T) {
	ayer := time.Now().Add(-24 * time.Hour) // dentro de this-week
	txRepo := &memTxRepo{txs: []entity.Transaction{
		{
			ID: "t1", CompanyID: testCompanyID, ItemID: "item-1",
			Type:     entity.TransactionTypeStockIn,
			Quantity: decimal.NewFromInt(20), TotalValue: decimal.NewFromInt(200),
			CreatedAt: ayer,
		},
		{
			ID: "t2", CompanyID: testCompanyID, ItemID: "item-1",
			Type:     entity.TransactionTypeStockOut,
			Quantity: decimal.NewFromInt(5), TotalValue: decimal.NewFromInt(100),
			CreatedAt: ayer.Add(time.Hour),
		},
	}}
	app := buildDashboardApp(txRepo, &memItemRepo{})

	resp := dashboardGET(t, app, "/api/dashboard/metrics?period=this-week")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap dto.MetricsSnapshotDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "this-week", snap.Period)
	assert.True(t, snap.TotalStockIn.Equal(decimal.NewFromInt(20)))
	assert.True(t, snap.TotalStockOut.Equal(decimal.NewFromInt(5)))
	assert.True(t, snap.RevenueSpentOnStockIn.Equal(decimal.NewFromInt(200)))
	assert.True(t, snap.RevenueEarnedFromStockOut.Equal(decimal.NewFromInt(100)))
}

func TestGetStockLevels_DerivaDelHistorial(t *testing.T) {
	hace2d := time.Now().Add(-48 * time.Hour)
	txRepo := &memTxRepo{txs: []entity.Transaction{
		{
			ID: "t1", CompanyID: testCompanyID, ItemID: "item-1",
			Type:     entity.TransactionTypeStockIn,
			Quantity: decimal.NewFromInt(50), TotalValue: decimal.NewFromInt(500),
			CreatedAt: hace2d,
		},
		{
			ID: "t2", CompanyID: testCompanyID, ItemID: "item-1",
			Type:     entity.TransactionTypeStockOut,
			Quantity: decimal.NewFromInt(45), TotalValue: decimal.NewFromInt(900),
			CreatedAt: hace2d.Add(time.Hour),
		},
	}}
	itemRepo := &memItemRepo{items: []entity.Item{{
		ID: "item-1", CompanyID: testCompanyID, Name: "Café molido",
		ReorderPoint: decimal.NewFromInt(10),
	}}}
	app := buildDashboardApp(txRepo, itemRepo)

	resp := dashboardGET(t, app, "/api/stock/levels")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var levels []dto.StockLevelDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&levels))
	require.Len(t, levels, 1)
	assert.True(t, levels[0].CurrentQuantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, levels[0].AverageUnitCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, levels[0].TotalValue.Equal(decimal.NewFromInt(50)))

	// 5 ≤ 10: el mismo ítem debe salir en la lista de stock bajo.
	respLow := dashboardGET(t, app, "/api/stock/low")
	defer respLow.Body.Close()

	require.Equal(t, http.StatusOK, respLow.StatusCode)
	var low []dto.LowStockItemDTO
	require.NoError(t, json.NewDecoder(respLow.Body).Decode(&low))
	require.Len(t, low, 1)
	assert.Equal(t, "item-1", low[0].ItemID)
	assert.False(t, low[0].OutOfStock)
}

func TestDashboard_SinToken401(t *testing.T) {
	app := buildDashboardApp(&memTxRepo{}, &memItemRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics?period=today", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
