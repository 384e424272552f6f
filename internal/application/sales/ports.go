package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de inventario y de ventas. El checkout crea la venta,
// sus items y los descuentos de stock dentro de una sola tx: cualquier
// error revierte todo, incluidos los descuentos ya aplicados a líneas
// anteriores del mismo request.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator renderiza el comprobante de una venta como PDF.
type ReceiptGenerator interface {
	Generate(data *ReceiptData) ([]byte, error)
}
