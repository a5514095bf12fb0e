package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
)

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock, category, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Status)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	ctx := context.Background()
	p := &entity.Product{}

	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, stock, category, status, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *ProductRepository) Update(p *entity.Product) error {
	ctx := context.Background()
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category = $5, status = $6, updated_at = $7
		WHERE id = $8
	`, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(id string) error {
	ctx := context.Background()

	res, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) List() ([]*entity.Product, error) {
	ctx := context.Background()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price, stock, category, status, created_at, updated_at
		FROM products
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p := &entity.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
