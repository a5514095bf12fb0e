package postgres

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
)

func newMockSaleRepo(t *testing.T) (*SaleRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewSaleRepository(mock), mock
}

func TestSaleRepositoryCreate(t *testing.T) {
	repo, mock := newMockSaleRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE products\s+SET stock = stock -`).
		WithArgs(2, "p1").
		WillReturnRows(pgxmock.NewRows([]string{"name", "price"}).AddRow("Laptop HP", 799.99))
	mock.ExpectQuery(`INSERT INTO sales`).
		WithArgs("Juan Pérez", 1599.98, "completed").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("s1", now, now))
	mock.ExpectQuery(`INSERT INTO sale_items`).
		WithArgs("s1", "p1", "Laptop HP", 799.99, 2).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("i1"))
	mock.ExpectCommit()

	s := &entity.Sale{
		Customer: "Juan Pérez",
		Status:   entity.SaleCompleted,
		Items:    []entity.SaleItem{{ProductID: "p1", Quantity: 2}},
	}
	require.NoError(t, repo.Create(s))
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 1599.98, s.Total)
	assert.Equal(t, "Laptop HP", s.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepositoryCreateInsufficientStock(t *testing.T) {
	repo, mock := newMockSaleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE products\s+SET stock = stock -`).
		WithArgs(50, "p1").
		WillReturnRows(pgxmock.NewRows([]string{"name", "price"}))
	mock.ExpectQuery(`SELECT stock FROM products`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"stock"}).AddRow(3))
	mock.ExpectRollback()

	s := &entity.Sale{
		Customer: "Ana",
		Status:   entity.SaleCompleted,
		Items:    []entity.SaleItem{{ProductID: "p1", Quantity: 50}},
	}
	assert.ErrorIs(t, repo.Create(s), repository.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepositoryCreateUnknownProduct(t *testing.T) {
	repo, mock := newMockSaleRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE products\s+SET stock = stock -`).
		WithArgs(1, "ghost").
		WillReturnRows(pgxmock.NewRows([]string{"name", "price"}))
	mock.ExpectQuery(`SELECT stock FROM products`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"stock"}))
	mock.ExpectRollback()

	s := &entity.Sale{
		Customer: "Ana",
		Status:   entity.SaleCompleted,
		Items:    []entity.SaleItem{{ProductID: "ghost", Quantity: 1}},
	}
	assert.ErrorIs(t, repo.Create(s), repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockSaleRepo(t)

	mock.ExpectQuery(`SELECT id, customer, total, status, created_at, updated_at\s+FROM sales`).
		WithArgs("404").
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer", "total", "status", "created_at", "updated_at"}))

	_, err := repo.GetByID("404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepositoryUpdateStatus(t *testing.T) {
	repo, mock := newMockSaleRepo(t)

	mock.ExpectExec(`UPDATE sales SET status`).
		WithArgs("cancelled", "s1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.UpdateStatus("s1", entity.SaleCancelled))

	mock.ExpectExec(`UPDATE sales SET status`).
		WithArgs("cancelled", "404").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateStatus("404", entity.SaleCancelled), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleRepositoryList(t *testing.T) {
	repo, mock := newMockSaleRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, customer, total, status, created_at, updated_at\s+FROM sales\s+ORDER BY created_at DESC\s+LIMIT`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer", "total", "status", "created_at", "updated_at"}).
			AddRow("s1", "Juan Pérez", 1299.98, "completed", now, now).
			AddRow("s2", "María López", 199.99, "pending", now, now))
	mock.ExpectQuery(`SELECT id, sale_id, product_id, name, price, quantity\s+FROM sale_items`).
		WithArgs([]string{"s1", "s2"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sale_id", "product_id", "name", "price", "quantity"}).
			AddRow("i1", "s1", "p1", "Laptop HP", 799.99, 1).
			AddRow("i2", "s1", "p3", "Teclado Logitech", 49.99, 10).
			AddRow("i3", "s2", "p2", "Monitor Dell", 199.99, 1))

	sales, err := repo.List(5)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Len(t, sales[0].Items, 2)
	assert.Len(t, sales[1].Items, 1)
	assert.Equal(t, "Monitor Dell", sales[1].Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
