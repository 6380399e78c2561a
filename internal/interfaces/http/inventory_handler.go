package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-admin/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-admin/internal/application/inventory"
	"github.com/tu-usuario/pos-admin/internal/domain"
	"github.com/tu-usuario/pos-admin/internal/domain/metrics"
)

// InventoryHandler maneja el registro y listado de transacciones del log.
type InventoryHandler struct {
	uc *appinventory.RegisterTransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *appinventory.RegisterTransactionUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Register registra una transacción stock_in / stock_out.
// POST /api/transactions
func (h *InventoryHandler) Register(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	var req dto.RegisterTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "cuerpo JSON inválido",
		})
	}

	out, err := h.uc.Register(c.Context(), companyID, GetUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_INPUT", Message: "tipo, cantidad o valor inválido",
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "ítem no encontrado",
			})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "el ítem pertenece a otra empresa",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudo registrar la transacción",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista transacciones con filtros opcionales de ítem y período.
// GET /api/transactions?item_id=&period=&limit=&offset=
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	var from, to *time.Time
	if raw := c.Query("period"); raw != "" {
		period, err := metrics.ParsePeriod(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_PERIOD", Message: err.Error(),
			})
		}
		start, end := period.Range(time.Now())
		from, to = &start, &end
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: "parámetros de paginación inválidos",
		})
	}

	txs, err := h.uc.List(c.Context(), companyID, c.Query("item_id"), from, to, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudieron listar las transacciones",
		})
	}
	return c.JSON(txs)
}
