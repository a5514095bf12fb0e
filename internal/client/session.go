// Package client is the dashboard-side session context: it talks to the
// auth endpoints and mirrors the authenticated user into a local JSON
// file so the session survives process restarts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
)

// Session holds the current user for the lifetime of the process. It is
// not safe for concurrent use; auth actions are user-initiated and
// naturally serialized.
type Session struct {
	baseURL     string
	storagePath string
	http        *http.Client
	logger      *logrus.Logger

	CurrentUser *entity.PublicUser
}

func New(baseURL, storagePath string, logger *logrus.Logger) *Session {
	return &Session{
		baseURL:     baseURL,
		storagePath: storagePath,
		http:        &http.Client{Timeout: 15 * time.Second},
		logger:      logger,
	}
}

// envelope mirrors the server's response wrapper; only the fields the
// client needs are decoded.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Load initializes the session from the local store. A corrupted file
// is discarded and the session starts logged out; Load never fails for
// bad local state.
func (s *Session) Load() {
	b, err := os.ReadFile(s.storagePath)
	if err != nil {
		return
	}
	var u entity.PublicUser
	if err := json.Unmarshal(b, &u); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("discarding corrupted session store")
		}
		_ = os.Remove(s.storagePath)
		return
	}
	s.CurrentUser = &u
}

// Login authenticates against the server. On success the returned user
// is persisted locally and becomes the current user; on failure the
// current user is left untouched.
func (s *Session) Login(ctx context.Context, email, password string) (*entity.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}
	resp, env, err := s.post(ctx, "/api/auth/login", body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login failed: %s", env.Message)
	}

	var u entity.PublicUser
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, err
	}
	if err := s.persist(&u); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("persisting session store failed")
	}
	s.CurrentUser = &u
	return &u, nil
}

// Logout tells the server to clear the cookie, best-effort: local state
// is cleared regardless of the remote outcome.
func (s *Session) Logout(ctx context.Context) error {
	_, _, err := s.post(ctx, "/api/auth/logout", nil)
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("remote logout failed; clearing local session anyway")
	}
	s.CurrentUser = nil
	_ = os.Remove(s.storagePath)
	return err
}

// Register creates an account. It does not log the new user in; the
// caller performs an explicit login afterwards.
func (s *Session) Register(ctx context.Context, name, email, password string) (*entity.PublicUser, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	resp, env, err := s.post(ctx, "/api/auth/register", body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusConflict {
		return nil, ErrEmailInUse
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("register failed: %s", env.Message)
	}

	var u entity.PublicUser
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Session) post(ctx context.Context, path string, body any) (*http.Response, *envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return resp, &envelope{}, nil
	}
	return resp, env, nil
}

func (s *Session) persist(u *entity.PublicUser) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.storagePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.storagePath, b, 0o600)
}
