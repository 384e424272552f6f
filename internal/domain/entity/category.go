package entity

import "time"

// Category representa una categoría de productos.
// Se desactiva (IsActive=false) en lugar de borrarse, para no romper
// las referencias de productos existentes.
type Category struct {
	ID          string
	Name        string // único
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
