// seed crea el esquema mínimo y carga datos de demostración: una empresa,
// categorías, ítems y un historial de transacciones con el que el dashboard
// tiene algo que mostrar.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración de entorno que el servidor (DATABASE_URL, etc.).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-admin/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id         TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
    id            TEXT PRIMARY KEY,
    company_id    TEXT NOT NULL,
    category_id   TEXT REFERENCES categories(id),
    name          TEXT NOT NULL,
    reorder_point NUMERIC NOT NULL DEFAULT 0,
    unit_price    NUMERIC NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
    id          TEXT PRIMARY KEY,
    company_id  TEXT NOT NULL,
    item_id     TEXT NOT NULL,
    type        TEXT NOT NULL CHECK (type IN ('stock_in', 'stock_out')),
    quantity    NUMERIC NOT NULL,
    total_value NUMERIC NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    created_by  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transactions_company_date
    ON transactions (company_id, created_at);
CREATE INDEX IF NOT EXISTS idx_transactions_item
    ON transactions (item_id);
`

const demoCompanyID = "00000000-0000-0000-0000-000000000002"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fail("crear esquema", err)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)

	now := time.Now()
	bebidas := &entity.Category{ID: uuid.New().String(), CompanyID: demoCompanyID, Name: "Bebidas", CreatedAt: now}
	abarrotes := &entity.Category{ID: uuid.New().String(), CompanyID: demoCompanyID, Name: "Abarrotes", CreatedAt: now}
	for _, c := range []*entity.Category{bebidas, abarrotes} {
		if err := categoryRepo.Create(ctx, c); err != nil {
			fail("insertar categoría "+c.Name, err)
		}
	}

	items := []*entity.Item{
		demoItem("Café molido 500g", bebidas.ID, 10, "18500"),
		demoItem("Gaseosa 1.5L", bebidas.ID, 24, "4200"),
		demoItem("Arroz 1kg", abarrotes.ID, 15, "3800"),
		demoItem("Aceite 1L", abarrotes.ID, 8, "9600"),
	}
	for _, it := range items {
		if err := itemRepo.Create(ctx, it); err != nil {
			fail("insertar ítem "+it.Name, err)
		}
	}

	// Historial de los últimos 60 días: una compra grande inicial por ítem
	// y ventas pequeñas repartidas, para que cada período tenga movimiento.
	total := 0
	for i, it := range items {
		in := demoTx(it.ID, entity.TransactionTypeStockIn,
			decimal.NewFromInt(int64(80+i*20)),
			it.UnitPrice.Mul(decimal.NewFromInt(int64(80+i*20))).Mul(decimal.RequireFromString("0.7")),
			now.AddDate(0, 0, -60))
		if err := txRepo.Create(ctx, in); err != nil {
			fail("insertar transacción", err)
		}
		total++

		for d := 55; d > 0; d -= 2 + i {
			qty := decimal.NewFromInt(int64(1 + (d+i)%5))
			out := demoTx(it.ID, entity.TransactionTypeStockOut,
				qty, it.UnitPrice.Mul(qty),
				now.AddDate(0, 0, -d).Add(time.Duration(9+(d%8))*time.Hour))
			if err := txRepo.Create(ctx, out); err != nil {
				fail("insertar transacción", err)
			}
			total++
		}
	}

	fmt.Printf("seed listo: %d categorías, %d ítems, %d transacciones (empresa %s)\n",
		2, len(items), total, demoCompanyID)
}

func demoItem(name, categoryID string, reorder int64, price string) *entity.Item {
	now := time.Now()
	return &entity.Item{
		ID:           uuid.New().String(),
		CompanyID:    demoCompanyID,
		CategoryID:   categoryID,
		Name:         name,
		ReorderPoint: decimal.NewFromInt(reorder),
		UnitPrice:    decimal.RequireFromString(price),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func demoTx(itemID, txType string, qty, value decimal.Decimal, at time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:         uuid.New().String(),
		CompanyID:  demoCompanyID,
		ItemID:     itemID,
		Type:       txType,
		Quantity:   qty,
		TotalValue: value,
		CreatedAt:  at,
	}
}

func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
