package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
)

func fakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "admin@ecosoft.com" || req.Password != "Admin@123456!" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": entity.PublicUser{
				ID: "1", Name: "Admin", Email: "admin@ecosoft.com",
				Role: entity.RoleAdmin, Status: entity.StatusActive,
			},
		})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Name, Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "taken@x.com" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "email already in use"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": entity.PublicUser{
				ID: "2", Name: req.Name, Email: req.Email,
				Role: entity.RoleUser, Status: entity.StatusActive,
			},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "logged out"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionLoginPersists(t *testing.T) {
	srv := fakeAuthServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(srv.URL, path, nil)

	u, err := s.Login(context.Background(), "admin@ecosoft.com", "Admin@123456!")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	require.NotNil(t, s.CurrentUser)
	assert.Equal(t, "admin@ecosoft.com", s.CurrentUser.Email)

	// survives a restart
	s2 := New(srv.URL, path, nil)
	s2.Load()
	require.NotNil(t, s2.CurrentUser)
	assert.Equal(t, "admin@ecosoft.com", s2.CurrentUser.Email)
}

func TestSessionLoginRejected(t *testing.T) {
	srv := fakeAuthServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(srv.URL, path, nil)

	_, err := s.Login(context.Background(), "admin@ecosoft.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, s.CurrentUser)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSessionLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := New("http://unused", path, nil)
	s.Load()
	assert.Nil(t, s.CurrentUser)

	// corrupt store is discarded
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionLogout(t *testing.T) {
	srv := fakeAuthServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(srv.URL, path, nil)

	_, err := s.Login(context.Background(), "admin@ecosoft.com", "Admin@123456!")
	require.NoError(t, err)
	require.FileExists(t, path)

	require.NoError(t, s.Logout(context.Background()))
	assert.Nil(t, s.CurrentUser)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSessionLogoutClearsLocalOnRemoteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"1","email":"a@x.com"}`), 0o600))

	s := New("http://127.0.0.1:0", path, nil)
	s.Load()
	require.NotNil(t, s.CurrentUser)

	err := s.Logout(context.Background())
	assert.Error(t, err)
	assert.Nil(t, s.CurrentUser)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSessionRegister(t *testing.T) {
	srv := fakeAuthServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(srv.URL, path, nil)

	u, err := s.Register(context.Background(), "Ana", "ana@x.com", "Secret@123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	// registration does not start a session
	assert.Nil(t, s.CurrentUser)

	_, err = s.Register(context.Background(), "Ana", "taken@x.com", "Secret@123")
	assert.ErrorIs(t, err, ErrEmailInUse)
}
