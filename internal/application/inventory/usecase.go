package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// MovementUseCase aplica movimientos de stock de forma transaccional:
// exactamente un update de Product.stock_quantity y un insert en el
// ledger por llamada, con bloqueo de fila (SELECT FOR UPDATE) para que
// dos movimientos concurrentes sobre el mismo producto no se pisen.
type MovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// ApplyMovementInput entrada para aplicar un movimiento de stock.
// Quantity es cantidad positiva en purchase/sale/return, y valor
// absoluto objetivo (>= 0) en adjustment.
type ApplyMovementInput struct {
	ProductID   string
	Type        string
	Quantity    int
	ReferenceID string
	Notes       string
	UserID      string
}

// ApplyMovement valida la entrada, abre una transacción y aplica el
// movimiento. Devuelve la cantidad resultante y el registro del ledger.
// Si algo falla no queda estado parcial: rollback de ambos efectos.
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, input ApplyMovementInput) (int, *entity.StockMovement, error) {
	if err := validateInput(input); err != nil {
		return 0, nil, err
	}

	// Existencia del producto fuera de la tx (solo lectura).
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return 0, nil, err
	}
	if product == nil {
		return 0, nil, domain.ErrNotFound
	}

	var newQty int
	var movement *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		newQty, movement, err = ApplyInTx(movRepo, productRepo, input, time.Now())
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return newQty, movement, nil
}

// ApplyInTx aplica un movimiento usando los repositorios del caller
// (misma transacción). Lo usa el checkout de ventas para descontar
// stock línea por línea dentro de su propia tx; si devuelve error el
// caller hace rollback de toda la venta.
func ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input ApplyMovementInput,
	now time.Time,
) (int, *entity.StockMovement, error) {
	// Bloquea la fila del producto hasta el fin de la transacción.
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return 0, nil, err
	}
	if product == nil {
		return 0, nil, domain.ErrNotFound
	}

	previous := product.StockQuantity
	var delta int
	switch input.Type {
	case entity.MovementTypePurchase, entity.MovementTypeReturn:
		delta = input.Quantity
	case entity.MovementTypeSale:
		if previous < input.Quantity {
			return 0, nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   input.Quantity,
				Available:   previous,
			}
		}
		delta = -input.Quantity
	case entity.MovementTypeAdjustment:
		delta = input.Quantity - previous
	default:
		return 0, nil, domain.ErrInvalidMovementType
	}

	newQty := previous + delta
	if newQty < 0 {
		// Inalcanzable con la validación por tipo; se conserva como
		// barrera del invariante stock_quantity >= 0.
		return 0, nil, domain.ErrInsufficientStock
	}

	if err := productRepo.UpdateStock(product.ID, newQty); err != nil {
		return 0, nil, err
	}

	movement := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		Type:             input.Type,
		Quantity:         delta,
		PreviousQuantity: previous,
		NewQuantity:      newQty,
		ReferenceID:      input.ReferenceID,
		Notes:            input.Notes,
		CreatedBy:        input.UserID,
		CreatedAt:        now,
	}
	if err := movRepo.Create(movement); err != nil {
		return 0, nil, err
	}
	return newQty, movement, nil
}

func validateInput(input ApplyMovementInput) error {
	if input.ProductID == "" || input.UserID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidMovementType
	}
	switch input.Type {
	case entity.MovementTypeAdjustment:
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	default:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
