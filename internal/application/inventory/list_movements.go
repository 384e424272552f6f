package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// LedgerQuery consultas de solo lectura sobre el ledger de movimientos.
type LedgerQuery struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewLedgerQuery construye el caso de uso de consulta.
func NewLedgerQuery(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *LedgerQuery {
	return &LedgerQuery{movRepo: movRepo, productRepo: productRepo, userRepo: userRepo}
}

// ListMovements lista el ledger más reciente primero, opcionalmente
// filtrado por producto, con nombres de producto y usuario expandidos.
func (q *LedgerQuery) ListMovements(ctx context.Context, productID string, limit, offset int) (*dto.StockMovementListResponse, error) {
	var movements []*entity.StockMovement
	var err error
	if productID != "" {
		movements, err = q.movRepo.ListByProduct(productID, limit, offset)
	} else {
		movements, err = q.movRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}

	// Cachear nombres para no repetir lecturas por fila.
	productNames := map[string]string{}
	userNames := map[string]string{}

	out := &dto.StockMovementListResponse{Movements: make([]*dto.StockMovementResponse, 0, len(movements))}
	for _, m := range movements {
		pname, ok := productNames[m.ProductID]
		if !ok {
			if p, err := q.productRepo.GetByID(m.ProductID); err == nil && p != nil {
				pname = p.Name
			}
			productNames[m.ProductID] = pname
		}
		uname, ok := userNames[m.CreatedBy]
		if !ok && m.CreatedBy != "" {
			if u, err := q.userRepo.GetByID(m.CreatedBy); err == nil && u != nil {
				uname = u.FullName
			}
			userNames[m.CreatedBy] = uname
		}
		out.Movements = append(out.Movements, &dto.StockMovementResponse{
			ID:               m.ID,
			ProductID:        m.ProductID,
			ProductName:      pname,
			MovementType:     m.Type,
			Quantity:         m.Quantity,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
			ReferenceID:      m.ReferenceID,
			Notes:            m.Notes,
			CreatedBy:        m.CreatedBy,
			CreatedByName:    uname,
			CreatedAt:        m.CreatedAt,
		})
	}
	out.Total = len(out.Movements)
	return out, nil
}
