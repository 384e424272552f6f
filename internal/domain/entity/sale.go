package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos para Sale.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentMixed    = "mixed"
)

// ValidPaymentMethod verifica el método de pago.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentMixed:
		return true
	}
	return false
}

// Sale es una transacción de venta completada. Inmutable después de
// crearse; es dueña exclusiva de sus SaleItem.
// FinalAmount = TotalAmount - DiscountAmount + TaxAmount.
type Sale struct {
	ID             string
	SaleID         string // identificador legible, ej. SALE-9F2C01AB34DE
	CashierID      string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	FinalAmount    decimal.Decimal
	PaymentMethod  string
	CustomerName   string
	CustomerPhone  string
	Notes          string
	CreatedAt      time.Time
}

// SaleItem es una línea de venta. Se crea únicamente como parte de la
// creación de la Sale; inmutable.
// TotalPrice = UnitPrice*Quantity - Discount.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int // >= 1
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal
}

// LineTotal calcula el total de la línea a partir de precio, cantidad y descuento.
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}
