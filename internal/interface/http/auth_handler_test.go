package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	repo "github.com/ecosoft-dev/ecosoft-api/internal/domain/repository"
	"github.com/ecosoft-dev/ecosoft-api/internal/interface/middleware"
	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
	"github.com/ecosoft-dev/ecosoft-api/pkg/validation"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (m *memUserRepo) seed(name, email, password, role string) {
	hash, _ := helpers.HashPassword(password)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email] = &entity.User{
		ID:           "u-" + name,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       entity.StatusActive,
	}
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) Create(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	u.ID = "u-" + u.Name
	m.users[u.Email] = u
	return nil
}

func (m *memUserRepo) Update(u *entity.User) error { return nil }
func (m *memUserRepo) Delete(id string) error      { return nil }
func (m *memUserRepo) List() ([]*entity.User, error) {
	return nil, nil
}

var _ repo.UserRepository = (*memUserRepo)(nil)

func newTestRouter(store *memUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	auth := application.NewAuthService(store, logger)
	cookies := helpers.NewCookie("", false, 24*time.Hour)
	h := NewAuthHandler(auth, cookies, logger, nil, false)

	r := gin.New()
	api := r.Group("/api")
	g := api.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/register", h.Register)
	g.POST("/logout", h.Logout)
	api.GET("/profile", middleware.Session(auth), h.Profile)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	store := newMemUserRepo()
	store.seed("Admin", "admin@ecosoft.com", "Admin@123456!", entity.RoleAdmin)
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"email":"admin@ecosoft.com","password":"Admin@123456!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	c := sessionCookie(t, w)
	require.NotNil(t, c, "login must set the user cookie")
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 86400, c.MaxAge)

	// cookie value is the url-escaped stripped user as JSON
	raw, err := url.QueryUnescape(c.Value)
	require.NoError(t, err)
	var pub entity.PublicUser
	require.NoError(t, json.Unmarshal([]byte(raw), &pub))
	assert.Equal(t, "admin@ecosoft.com", pub.Email)
	assert.Equal(t, entity.RoleAdmin, pub.Role)
}

func TestLoginInvalidCredentialsUniform(t *testing.T) {
	store := newMemUserRepo()
	store.seed("Admin", "admin@ecosoft.com", "Admin@123456!", entity.RoleAdmin)
	store.mu.Lock()
	store.users["off@x.com"] = &entity.User{
		ID: "u-off", Name: "Off", Email: "off@x.com",
		PasswordHash: store.users["admin@ecosoft.com"].PasswordHash,
		Role:         entity.RoleUser, Status: entity.StatusInactive,
	}
	store.mu.Unlock()
	r := newTestRouter(store)

	cases := []string{
		`{"email":"admin@ecosoft.com","password":"wrong"}`,
		`{"email":"ghost@x.com","password":"Admin@123456!"}`,
		`{"email":"off@x.com","password":"Admin@123456!"}`,
	}
	var bodies []string
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, sessionCookie(t, w))
		var resp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		bodies = append(bodies, resp.Message)
	}
	// all three failures read the same to the caller
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestLoginRejectsBadPayload(t *testing.T) {
	r := newTestRouter(newMemUserRepo())

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister(t *testing.T) {
	store := newMemUserRepo()
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Ana","email":"ana@x.com","password":"Secret@123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	// registration does not log the user in
	assert.Nil(t, sessionCookie(t, w))

	var resp struct {
		Data entity.PublicUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.RoleUser, resp.Data.Role)
	assert.Equal(t, entity.StatusActive, resp.Data.Status)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Ana","email":"ana@x.com","password":"Secret@123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Ana","email":"short@x.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newTestRouter(newMemUserRepo())

	// no session required: logout always clears
	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	c := sessionCookie(t, w)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestProfile(t *testing.T) {
	store := newMemUserRepo()
	store.seed("Ana", "ana@x.com", "Secret@123", entity.RoleUser)
	r := newTestRouter(store)

	t.Run("no cookie", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/profile", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stale cookie for deleted user", func(t *testing.T) {
		c := &http.Cookie{
			Name:  helpers.SessionCookieName,
			Value: url.QueryEscape(`{"id":"9","name":"Ghost","email":"ghost@x.com","role":"admin"}`),
		}
		w := doJSON(t, r, http.MethodGet, "/api/profile", "", c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		login := doJSON(t, r, http.MethodPost, "/api/auth/login",
			`{"email":"ana@x.com","password":"Secret@123"}`)
		require.Equal(t, http.StatusOK, login.Code)
		c := sessionCookie(t, login)
		require.NotNil(t, c)

		w := doJSON(t, r, http.MethodGet, "/api/profile", "", c)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data entity.Session `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ana@x.com", resp.Data.Email)
		assert.Equal(t, entity.RoleUser, resp.Data.Role)
	})
}
