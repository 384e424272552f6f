package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints de estadísticas.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve el resumen del día, la semana y el mes en curso.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsResponse (today_revenue, today_transactions,
// week_revenue, month_revenue, low_stock_count, total_products,
// recent_sales[5]). Los cortes de día usan la zona horaria de negocio
// configurada en el servidor; no recibe parámetros.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(stats)
}
