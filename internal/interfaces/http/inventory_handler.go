package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
)

// InventoryHandler maneja el ajuste manual de stock y la consulta del ledger.
type InventoryHandler struct {
	movementUC *inventory.MovementUseCase
	ledger     *inventory.LedgerQuery
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(movementUC *inventory.MovementUseCase, ledger *inventory.LedgerQuery) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, ledger: ledger}
}

// UpdateStock godoc
// @Summary      Ajuste manual de stock
// @Description  movement_type purchase suma la cantidad al stock actual;
//
//	adjustment fija el stock en el valor absoluto indicado. Cada
//	llamada deja exactamente un registro en el ledger.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "movement_type, quantity, notes"
// @Success      200   {object}  dto.UpdateStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/update-stock [post]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQty, err := h.movementUC.AdjustStock(c.Context(), c.Params("id"), in.MovementType, in.Quantity, in.Notes, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMovementType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MOVEMENT_TYPE", Message: "movement_type debe ser purchase o adjustment"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrConflictRetry) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CONFLICT_RETRY", Message: "conflicto de concurrencia, intente de nuevo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.UpdateStockResponse{Message: "stock actualizado", NewQuantity: newQty})
}

// ListMovements godoc
// @Summary      Consultar ledger de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product  query  string  false  "filtrar por ID de producto"
// @Param        limit    query  int     false  "máximo de filas (default 50)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	list, err := h.ledger.ListMovements(c.Context(),
		c.Query("product"),
		c.QueryInt("limit", 50),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
