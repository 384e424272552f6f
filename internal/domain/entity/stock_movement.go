package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypePurchase   = "purchase"   // entrada por compra
	MovementTypeSale       = "sale"       // salida por venta
	MovementTypeAdjustment = "adjustment" // ajuste absoluto
	MovementTypeReturn     = "return"     // devolución de cliente
)

// ValidMovementType verifica que el tipo sea uno de los cuatro conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeAdjustment, MovementTypeReturn:
		return true
	}
	return false
}

// StockMovement es un hecho inmutable del ledger de inventario.
// Invariante: NewQuantity == PreviousQuantity + Quantity para todo registro.
// Una vez creado nunca se actualiza ni se borra.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             string // purchase, sale, adjustment, return
	Quantity         int    // delta con signo: negativo en ventas
	PreviousQuantity int
	NewQuantity      int
	ReferenceID      string // ej. sale_id de la venta que originó la salida
	Notes            string
	CreatedBy        string // UserID
	CreatedAt        time.Time
}
