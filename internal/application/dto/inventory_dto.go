package dto

import "time"

// UpdateStockRequest cuerpo de POST /api/products/:id/update-stock.
// movement_type admite purchase (suma) o adjustment (valor absoluto).
type UpdateStockRequest struct {
	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes"`
}

// UpdateStockResponse resultado del ajuste manual.
type UpdateStockResponse struct {
	Message     string `json:"message"`
	NewQuantity int    `json:"new_quantity"`
}

// StockMovementResponse entrada del ledger expandida para la API.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product"`
	ProductName      string    `json:"product_name,omitempty"`
	MovementType     string    `json:"movement_type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	ReferenceID      string    `json:"reference_id"`
	Notes            string    `json:"notes"`
	CreatedBy        string    `json:"created_by"`
	CreatedByName    string    `json:"created_by_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// StockMovementListResponse listado del ledger, más reciente primero.
type StockMovementListResponse struct {
	Total     int                      `json:"total"`
	Movements []*StockMovementResponse `json:"movements"`
}
