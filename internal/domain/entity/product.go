package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// StockQuantity solo se modifica a través del motor de inventario
// (movimientos); nunca directamente desde el CRUD de catálogo.
type Product struct {
	ID            string
	SKU           string // código único
	Barcode       string // código de barras, único
	CategoryID    string
	Name          string
	Description   string
	CostPrice     decimal.Decimal // costo de compra
	SellingPrice  decimal.Decimal // precio de venta
	StockQuantity int             // nunca negativo
	MinimumStock  int             // umbral de stock bajo (default 5)
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinimumStock
}
