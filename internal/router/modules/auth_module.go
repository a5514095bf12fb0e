package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/container"
	handlers "github.com/ecosoft-dev/ecosoft-api/internal/interface/http"
	"github.com/ecosoft-dev/ecosoft-api/internal/interface/middleware"
)

// AuthModule wires the public auth endpoints and the session-protected
// profile route.
// Public: POST /api/auth/login, /api/auth/register, /api/auth/logout
// Protected: GET /api/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	// Logout is public on purpose: clearing the cookie must work even
	// when the session no longer resolves.
	rg.POST("/auth/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Session(m.Auth))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
