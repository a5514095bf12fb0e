package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
)

// TxDB is a DB that can also open transactions. Satisfied by
// *pgxpool.Pool.
type TxDB interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}

type SaleRepository struct {
	db TxDB
}

func NewSaleRepository(db TxDB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create records the sale and its items in one transaction. Each item
// decrements the product's stock and snapshots its name and price; the
// whole sale fails if any product is missing or short on stock.
func (r *SaleRepository) Create(s *entity.Sale) error {
	ctx := context.Background()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s.Total = 0
	for i := range s.Items {
		it := &s.Items[i]
		row := tx.QueryRow(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = now()
			WHERE id = $2 AND stock >= $1
			RETURNING name, price
		`, it.Quantity, it.ProductID)
		if err := row.Scan(&it.Name, &it.Price); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return saleItemFailure(ctx, tx, it.ProductID)
			}
			return err
		}
		s.Total += it.Price * float64(it.Quantity)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO sales (customer, total, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, s.Customer, s.Total, s.Status)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}

	for i := range s.Items {
		it := &s.Items[i]
		if err := tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, s.ID, it.ProductID, it.Name, it.Price, it.Quantity).Scan(&it.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// saleItemFailure tells a missing product apart from one that is merely
// out of stock.
func saleItemFailure(ctx context.Context, tx pgx.Tx, productID string) error {
	var stock int
	if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return repository.ErrInsufficientStock
}

func (r *SaleRepository) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	s := &entity.Sale{}

	row := r.db.QueryRow(ctx, `
		SELECT id, customer, total, status, created_at, updated_at
		FROM sales
		WHERE id = $1
	`, id)
	if err := row.Scan(&s.ID, &s.Customer, &s.Total, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return s, nil
}

func (r *SaleRepository) UpdateStatus(id, status string) error {
	ctx := context.Background()

	res, err := r.db.Exec(ctx, `
		UPDATE sales SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns sales newest first. A limit of 0 means no limit; the
// dashboard's recent-sales card asks for the last few.
func (r *SaleRepository) List(limit int) ([]*entity.Sale, error) {
	ctx := context.Background()

	q := `
		SELECT id, customer, total, status, created_at, updated_at
		FROM sales
		ORDER BY created_at DESC
	`
	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.Query(ctx, q+` LIMIT $1`, limit)
	} else {
		rows, err = r.db.Query(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Sale
	var ids []string
	for rows.Next() {
		s := &entity.Sale{}
		if err := rows.Scan(&s.ID, &s.Customer, &s.Total, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range out {
		s.Items = items[s.ID]
	}
	return out, nil
}

func (r *SaleRepository) itemsFor(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, sale_id, product_id, name, price, quantity
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY id
	`, saleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleItem, len(saleIDs))
	for rows.Next() {
		var it entity.SaleItem
		var saleID string
		if err := rows.Scan(&it.ID, &saleID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		out[saleID] = append(out[saleID], it)
	}
	return out, rows.Err()
}

var _ repository.SaleRepository = (*SaleRepository)(nil)
