package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en POST /api/sales.
type SaleItemRequest struct {
	ProductID string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest cuerpo de POST /api/sales.
// Los montos del cliente se verifican contra el cálculo del servidor.
type CreateSaleRequest struct {
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	FinalAmount    decimal.Decimal   `json:"final_amount"`
	PaymentMethod  string            `json:"payment_method"`
	CustomerName   string            `json:"customer_name"`
	CustomerPhone  string            `json:"customer_phone"`
	Notes          string            `json:"notes"`
	Items          []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta expandida con datos del producto.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse representación pública de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleID         string             `json:"sale_id"`
	CashierID      string             `json:"cashier"`
	CashierName    string             `json:"cashier_name,omitempty"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	FinalAmount    decimal.Decimal    `json:"final_amount"`
	PaymentMethod  string             `json:"payment_method"`
	CustomerName   string             `json:"customer_name"`
	CustomerPhone  string             `json:"customer_phone"`
	Notes          string             `json:"notes"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaleListResponse listado de ventas.
type SaleListResponse struct {
	Total int             `json:"total"`
	Sales []*SaleResponse `json:"sales"`
}
