// Package inventory contiene los casos de uso de escritura sobre el log de
// transacciones. El log es append-only: registrar es insertar un evento,
// nunca actualizar un contador de stock.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-admin/internal/application/dto"
	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/domain/repository"
)

// RegisterTransactionUseCase registra transacciones de inventario
// (stock_in / stock_out) en el log append-only y expone su listado.
type RegisterTransactionUseCase struct {
	txRepo   repository.TransactionRepository
	itemRepo repository.ItemRepository

	now func() time.Time // inyectable en tests
}

// NewRegisterTransactionUseCase construye el caso de uso.
func NewRegisterTransactionUseCase(
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
) *RegisterTransactionUseCase {
	return &RegisterTransactionUseCase{
		txRepo:   txRepo,
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

// Register valida y apila una transacción al log. Cantidad estrictamente
// positiva (el sentido lo da el tipo) y valor total no negativo; el ítem
// debe existir y pertenecer a la empresa del token.
func (uc *RegisterTransactionUseCase) Register(
	ctx context.Context,
	companyID, userID string,
	req dto.RegisterTransactionRequest,
) (*dto.TransactionDTO, error) {
	switch req.Type {
	case entity.TransactionTypeStockIn, entity.TransactionTypeStockOut:
	default:
		return nil, domain.ErrInvalidInput
	}
	if req.ItemID == "" || !req.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if req.TotalValue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	tx := &entity.Transaction{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ItemID:     req.ItemID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		TotalValue: req.TotalValue,
		CreatedAt:  uc.now(),
		CreatedBy:  userID,
	}
	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("registrar transacción: %w", err)
	}

	return transactionToDTO(tx), nil
}

// List devuelve transacciones de la empresa, opcionalmente acotadas a un
// ítem y a un intervalo [from, to), con paginación.
func (uc *RegisterTransactionUseCase) List(
	ctx context.Context,
	companyID, itemID string,
	from, to *time.Time,
	page dto.PageRequest,
) ([]dto.TransactionDTO, error) {
	page.DefaultPage()
	txs, err := uc.txRepo.List(ctx, repository.TransactionFilter{
		CompanyID: companyID,
		ItemID:    itemID,
		From:      from,
		To:        to,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar transacciones: %w", err)
	}

	out := make([]dto.TransactionDTO, 0, len(txs))
	for i := range txs {
		out = append(out, *transactionToDTO(&txs[i]))
	}
	return out, nil
}

func transactionToDTO(tx *entity.Transaction) *dto.TransactionDTO {
	return &dto.TransactionDTO{
		ID:         tx.ID,
		ItemID:     tx.ItemID,
		Type:       tx.Type,
		Quantity:   tx.Quantity,
		TotalValue: tx.TotalValue,
		CreatedAt:  tx.CreatedAt,
	}
}
