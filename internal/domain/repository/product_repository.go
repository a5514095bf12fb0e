package repository

import "github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"

// ProductRepository defines the interface for product catalog persistence.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	Delete(id string) error
	List() ([]*entity.Product, error)
}
