package repository

import (
	"errors"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a write hits the unique
	// constraint on users.email.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository is the credential store: lookups keyed by the unique
// email, plus the admin CRUD operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	Delete(id string) error
	List() ([]*entity.User, error)
}
