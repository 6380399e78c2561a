package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/tu-usuario/pos-admin/internal/application/analytics"
	"github.com/tu-usuario/pos-admin/internal/application/dto"
	"github.com/tu-usuario/pos-admin/internal/domain/metrics"
)

// DashboardHandler maneja los endpoints del Dashboard de Inventario.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// parsePeriod valida el query param ?period= en la frontera: a partir de
// aquí el conjunto cerrado de tokens está garantizado y las capas internas
// pueden tratar un token desconocido como error de programación.
func parsePeriod(c *fiber.Ctx) (metrics.Period, bool) {
	p, err := metrics.ParsePeriod(c.Query("period", string(metrics.PeriodToday)))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PERIOD", Message: err.Error(),
		})
		return "", false
	}
	return p, true
}

// GetMetrics devuelve los totales del período.
// GET /api/dashboard/metrics?period=this-week
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}
	period, ok := parsePeriod(c)
	if !ok {
		return nil
	}

	snap, err := h.uc.GetDashboardMetrics(c.Context(), companyID, period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudieron cargar los datos del dashboard",
		})
	}
	return c.JSON(snap)
}

// GetTrends devuelve la serie de buckets del período, en orden cronológico.
// GET /api/dashboard/trends?period=this-week
func (h *DashboardHandler) GetTrends(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}
	period, ok := parsePeriod(c)
	if !ok {
		return nil
	}

	trends, err := h.uc.GetInventoryTrends(c.Context(), companyID, period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudieron cargar los datos del dashboard",
		})
	}
	return c.JSON(trends)
}

// GetStockLevels devuelve el nivel de stock derivado de todos los ítems.
// Siempre sobre el historial completo: no acepta ?period=.
// GET /api/stock/levels
func (h *DashboardHandler) GetStockLevels(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	levels, err := h.uc.GetStockLevels(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudieron cargar los niveles de stock",
		})
	}
	return c.JSON(levels)
}

// GetLowStock devuelve los ítems en o por debajo de su punto de reorden.
// GET /api/stock/low
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	low, err := h.uc.GetLowStockItems(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no se pudieron cargar los ítems con stock bajo",
		})
	}
	return c.JSON(low)
}
