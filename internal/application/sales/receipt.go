package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	Quantity  int
	Name      string
	SKU       string
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// ReceiptData datos completos para renderizar el comprobante de venta.
type ReceiptData struct {
	StoreName   string
	Sale        *entity.Sale
	CashierName string
	Lines       []ReceiptLine
}

// ReceiptUseCase genera el comprobante PDF de una venta ya registrada.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	generator   ReceiptGenerator
	storeName   string
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	generator ReceiptGenerator,
	storeName string,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		generator:   generator,
		storeName:   storeName,
	}
}

// DownloadReceipt recupera la venta con sus líneas y genera el PDF.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if sale == nil {
		sale, err = uc.saleRepo.GetBySaleID(saleID)
		if err != nil {
			return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
		}
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.saleRepo.GetItems(sale.ID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener items: %w", err)
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := "Producto " + item.ProductID // fallback
		sku := ""
		if product, pErr := uc.productRepo.GetByID(item.ProductID); pErr == nil && product != nil {
			name = product.Name
			sku = product.SKU
		}
		lines = append(lines, ReceiptLine{
			Quantity:  item.Quantity,
			Name:      name,
			SKU:       sku,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Total:     item.TotalPrice,
		})
	}

	cashierName := ""
	if u, uErr := uc.userRepo.GetByID(sale.CashierID); uErr == nil && u != nil {
		cashierName = u.FullName
	}

	pdfBytes, err := uc.generator.Generate(&ReceiptData{
		StoreName:   uc.storeName,
		Sale:        sale,
		CashierName: cashierName,
		Lines:       lines,
	})
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}

	filename := fmt.Sprintf("recibo_%s.pdf", sale.SaleID)
	return pdfBytes, filename, nil
}
