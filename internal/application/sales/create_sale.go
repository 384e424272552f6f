package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// amountTolerance margen de redondeo aceptado entre el final_amount del
// cliente y el recalculado en el servidor.
var amountTolerance = decimal.NewFromFloat(0.01)

// CreateSaleUseCase orquesta el checkout multi-línea: valida stock de
// todas las líneas, crea Sale + SaleItems y aplica un movimiento de
// inventario por línea, todo en una sola transacción.
type CreateSaleUseCase struct {
	txRunner    SaleTxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, productRepo: productRepo, userRepo: userRepo}
}

// NewSaleID genera un identificador legible SALE-XXXXXXXXXXXX con 48
// bits de aleatoriedad (12 hex de un UUID), suficiente para que la
// probabilidad de colisión sea despreciable; el índice único en BD
// cubre el caso restante.
func NewSaleID() string {
	hexID := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "SALE-" + strings.ToUpper(hexID[:12])
}

// CreateSale valida el request, recalcula los montos en el servidor y
// ejecuta la transacción de checkout. Si una sola línea no tiene stock
// suficiente, la venta completa falla sin mutar nada.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, cashierID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if cashierID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountAmount.IsNegative() || in.TaxAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validación de líneas y carga de productos (solo lectura, fuera de la tx).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if !item.UnitPrice.IsPositive() || item.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.IsActive {
			return nil, domain.ErrInactiveProduct
		}
		productsByID[item.ProductID] = product
	}

	// Recalcular montos en el servidor y verificar el final_amount del
	// cliente dentro de la tolerancia de redondeo.
	total := decimal.Zero
	for _, item := range in.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
		if line.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(line)
	}
	finalAmount := total.Sub(in.DiscountAmount).Add(in.TaxAmount)
	if finalAmount.Sub(in.FinalAmount).Abs().GreaterThan(amountTolerance) {
		return nil, domain.ErrAmountMismatch
	}

	// Orden consistente de bloqueo: las líneas se procesan por ID de
	// producto ascendente para que dos ventas concurrentes con productos
	// en común no se bloqueen mutuamente en orden cruzado.
	ordered := make([]dto.SaleItemRequest, len(in.Items))
	copy(ordered, in.Items)
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].ProductID < ordered[b].ProductID })

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		SaleID:         NewSaleID(),
		CashierID:      cashierID,
		TotalAmount:    total,
		DiscountAmount: in.DiscountAmount,
		TaxAmount:      in.TaxAmount,
		FinalAmount:    finalAmount,
		PaymentMethod:  in.PaymentMethod,
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		Notes:          in.Notes,
		CreatedAt:      now,
	}

	var items []*entity.SaleItem
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		items = items[:0]
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range ordered {
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Discount:  line.Discount,
			}
			item.TotalPrice = item.LineTotal()
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			// Descuento de stock con bloqueo de fila; si falla (ej. sin
			// stock) se revierte la venta completa.
			if _, _, err := inventory.ApplyInTx(movRepo, productRepo, inventory.ApplyMovementInput{
				ProductID:   line.ProductID,
				Type:        entity.MovementTypeSale,
				Quantity:    line.Quantity,
				ReferenceID: sale.SaleID,
				UserID:      cashierID,
			}, now); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cashierName := ""
	if u, err := uc.userRepo.GetByID(cashierID); err == nil && u != nil {
		cashierName = u.FullName
	}
	return toSaleResponse(sale, cashierName, items, productsByID), nil
}

func toSaleResponse(sale *entity.Sale, cashierName string, items []*entity.SaleItem, productsByID map[string]*entity.Product) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             sale.ID,
		SaleID:         sale.SaleID,
		CashierID:      sale.CashierID,
		CashierName:    cashierName,
		TotalAmount:    sale.TotalAmount,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		FinalAmount:    sale.FinalAmount,
		PaymentMethod:  sale.PaymentMethod,
		CustomerName:   sale.CustomerName,
		CustomerPhone:  sale.CustomerPhone,
		Notes:          sale.Notes,
		Items:          make([]dto.SaleItemResponse, 0, len(items)),
		CreatedAt:      sale.CreatedAt,
	}
	for _, item := range items {
		ir := dto.SaleItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Discount:   item.Discount,
			TotalPrice: item.TotalPrice,
		}
		if p := productsByID[item.ProductID]; p != nil {
			ir.ProductName = p.Name
			ir.ProductSKU = p.SKU
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
