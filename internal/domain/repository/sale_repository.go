package repository

import (
	"errors"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
)

// ErrInsufficientStock is returned when a sale asks for more units of a
// product than the catalog has on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

// SaleRepository persists sales. Create is atomic: it snapshots product
// name and price into each item, decrements stock, and computes the
// total, or fails as a whole.
type SaleRepository interface {
	Create(s *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	UpdateStatus(id, status string) error
	List(limit int) ([]*entity.Sale, error)
}
