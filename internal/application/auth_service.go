package application

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	repo "github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
)

// Session defaults applied when a token field is missing. They mirror
// the values the dashboard has always shown for a half-filled cookie.
const (
	defaultSessionID    = "0"
	defaultSessionName  = "Usuario"
	defaultSessionEmail = "usuario@example.com"
)

// AuthService resolves session cookies into authenticated principals
// and owns the login/registration rules.
type AuthService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, Logger: logger}
}

// ResolveSession turns the raw session cookie value into a Session.
// An absent or malformed token resolves to nil rather than an error:
// an invalid session is an expected condition, handled as logout.
// When the token parses, the referenced user must still exist in the
// store (liveness check); a stale token for a deleted user resolves to
// nil. Field values come from the token itself, with defaults for
// anything missing.
func (s *AuthService) ResolveSession(ctx context.Context, rawToken string) (*entity.Session, error) {
	if rawToken == "" {
		return nil, nil
	}

	var token entity.Session
	if err := json.Unmarshal([]byte(rawToken), &token); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Debug("malformed session cookie")
		}
		return nil, nil
	}

	u, err := s.Repo.GetByEmail(token.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	sess := &entity.Session{
		ID:    token.ID,
		Name:  token.Name,
		Email: token.Email,
		Role:  token.Role,
	}
	if sess.ID == "" {
		sess.ID = defaultSessionID
	}
	if sess.Name == "" {
		sess.Name = defaultSessionName
	}
	if sess.Email == "" {
		sess.Email = defaultSessionEmail
	}
	if sess.Role == "" {
		sess.Role = entity.RoleUser
	}
	return sess, nil
}

// IsAdmin reports whether the raw token resolves to an admin session.
// Any null-session path yields false.
func (s *AuthService) IsAdmin(ctx context.Context, rawToken string) bool {
	sess, err := s.ResolveSession(ctx, rawToken)
	if err != nil || sess == nil {
		return false
	}
	return sess.IsAdmin()
}

// Authenticate validates email/password and returns the user with the
// hash stripped. A missing user, an inactive account, and a wrong
// password all fail with the same ErrInvalidCredentials so the response
// does not reveal which check failed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}
	if u.Status != entity.StatusActive {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

// Register creates a new active user with the default role. The
// pre-check keeps the documented EmailInUse path; the unique constraint
// on users.email backstops the race between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	existing, err := s.Repo.GetByEmail(email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}
