package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
)

func newMockRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestUserRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@x.com", "hash", "user", "active").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("42", now, now))

	u := &entity.User{
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	}
	require.NoError(t, repo.Create(u))
	assert.Equal(t, "42", u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@x.com", "hash", "user", "active").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.Create(&entity.User{
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, status, created_at, updated_at\s+FROM users\s+WHERE email`).
		WithArgs("admin@ecosoft.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "password_hash", "role", "status", "created_at", "updated_at",
		}).AddRow("1", "Admin", "admin@ecosoft.com", "hash", "admin", "active", now, now))

	u, err := repo.GetByEmail("admin@ecosoft.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, "Admin", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM users\s+WHERE email`).
		WithArgs("ghost@x.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "password_hash", "role", "status", "created_at", "updated_at",
		}))

	_, err := repo.GetByEmail("ghost@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("Ana", "ana@x.com", "user", "active", pgxmock.AnyArg(), "42").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(&entity.User{
		ID:     "42",
		Name:   "Ana",
		Email:  "ana@x.com",
		Role:   entity.RoleUser,
		Status: entity.StatusActive,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs("42").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete("42"))

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs("404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete("404"), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, email, role, status, created_at, updated_at\s+FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "role", "status", "created_at", "updated_at",
		}).
			AddRow("1", "Admin", "admin@ecosoft.com", "admin", "active", now, now).
			AddRow("2", "Ana", "ana@x.com", "user", "active", now, now))

	users, err := repo.List()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Empty(t, users[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name, email, role, status, created_at, updated_at\s+FROM users`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.List()
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
