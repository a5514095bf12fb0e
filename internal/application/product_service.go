package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	repo "github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService backs the productos screen.
type ProductService struct {
	Repo   repo.ProductRepository
	Logger *logrus.Logger
}

func NewProductService(r repo.ProductRepository, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: r, Logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	return s.Repo.List()
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// ProductInput carries create and update payloads. Stock is a pointer so
// a partial update can leave inventory untouched; zero is a valid level.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       *int
	Category    string
	Status      string
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Status:      in.Status,
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if p.Status == "" {
		p.Status = entity.StatusActive
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
