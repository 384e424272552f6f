package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// StockMovementRepository define el puerto del ledger de inventario.
// El ledger es append-only: solo Create y lecturas; no existen
// operaciones de update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	List(limit, offset int) ([]*entity.StockMovement, error)
}
