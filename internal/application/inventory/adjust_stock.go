package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// AdjustStock es la actualización manual de stock del endpoint
// update-stock: purchase suma la cantidad, adjustment fija el valor
// absoluto. Cualquier otro tipo se rechaza; sale y return solo entran
// al ledger vía checkout y devoluciones, no a mano.
func (uc *MovementUseCase) AdjustStock(ctx context.Context, productID, movementType string, quantity int, notes, userID string) (int, error) {
	switch movementType {
	case entity.MovementTypePurchase, entity.MovementTypeAdjustment:
	default:
		return 0, domain.ErrInvalidMovementType
	}
	newQty, _, err := uc.ApplyMovement(ctx, ApplyMovementInput{
		ProductID: productID,
		Type:      movementType,
		Quantity:  quantity,
		Notes:     notes,
		UserID:    userID,
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}
