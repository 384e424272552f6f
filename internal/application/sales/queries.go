package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// SaleQuery consultas de solo lectura sobre ventas.
type SaleQuery struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewSaleQuery construye el caso de uso de consulta.
func NewSaleQuery(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *SaleQuery {
	return &SaleQuery{saleRepo: saleRepo, productRepo: productRepo, userRepo: userRepo}
}

// GetSale devuelve una venta por ID interno o por sale_id legible, con
// items expandidos y nombre del cajero.
func (q *SaleQuery) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := q.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		sale, err = q.saleRepo.GetBySaleID(id)
		if err != nil {
			return nil, err
		}
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return q.expand(sale)
}

// ListSales lista ventas más recientes primero, con filtros de fecha y cajero.
func (q *SaleQuery) ListSales(ctx context.Context, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	sales, err := q.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Sales: make([]*dto.SaleResponse, 0, len(sales))}
	for _, sale := range sales {
		resp, err := q.expand(sale)
		if err != nil {
			return nil, err
		}
		out.Sales = append(out.Sales, resp)
	}
	out.Total = len(out.Sales)
	return out, nil
}

func (q *SaleQuery) expand(sale *entity.Sale) (*dto.SaleResponse, error) {
	items, err := q.saleRepo.GetItems(sale.ID)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[string]*entity.Product, len(items))
	for _, item := range items {
		if _, ok := productsByID[item.ProductID]; ok {
			continue
		}
		if p, err := q.productRepo.GetByID(item.ProductID); err == nil && p != nil {
			productsByID[item.ProductID] = p
		}
	}
	cashierName := ""
	if u, err := q.userRepo.GetByID(sale.CashierID); err == nil && u != nil {
		cashierName = u.FullName
	}
	return toSaleResponse(sale, cashierName, items, productsByID), nil
}
