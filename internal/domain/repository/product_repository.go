package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ProductFilter especifica los filtros del listado de productos de forma
// explícita (search sobre nombre/sku/barcode, categoría y stock bajo),
// en lugar de inspección ad-hoc de query params.
type ProductFilter struct {
	Search       string
	CategoryID   string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción: bloquea la
// fila del producto hasta el commit/rollback.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, newQuantity int) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Deactivate(id string) error
	CountActiveByCategory(categoryID string) (int, error)
}
