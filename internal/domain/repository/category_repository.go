package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListActive(limit, offset int) ([]*entity.Category, error)
	Deactivate(id string) error
}
