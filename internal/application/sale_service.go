package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	repo "github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// SaleService backs the ventas screen and the dashboard's recent-sales
// card.
type SaleService struct {
	Repo   repo.SaleRepository
	Logger *logrus.Logger
}

func NewSaleService(r repo.SaleRepository, logger *logrus.Logger) *SaleService {
	return &SaleService{Repo: r, Logger: logger}
}

func (s *SaleService) List(ctx context.Context, limit int) ([]*entity.Sale, error) {
	return s.Repo.List(limit)
}

func (s *SaleService) Get(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

type SaleItemInput struct {
	ProductID string
	Quantity  int
}

type SaleInput struct {
	Customer string
	Items    []SaleItemInput
}

// Create records a sale. The store snapshots each product's name and
// price into the items, decrements stock, and computes the total.
func (s *SaleService) Create(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	sale := &entity.Sale{
		Customer: in.Customer,
		Status:   entity.SaleCompleted,
		Items:    make([]entity.SaleItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	if err := s.Repo.Create(sale); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repo.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		}
		return nil, err
	}
	return sale, nil
}

// UpdateStatus moves a sale between completed, pending and cancelled.
// Cancelling does not restock; corrections go through the catalog.
func (s *SaleService) UpdateStatus(ctx context.Context, id, status string) (*entity.Sale, error) {
	if err := s.Repo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}
