package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/container"
	handlers "github.com/ecosoft-dev/ecosoft-api/internal/interface/http"
	"github.com/ecosoft-dev/ecosoft-api/internal/interface/middleware"
)

// ProductModule wires the productos CRUD under /api/products. Any
// authenticated user may read; writes too, matching the dashboard.
type ProductModule struct {
	Handler *handlers.ProductHandler
	Auth    *application.AuthService
}

func NewProductModule(h *handlers.ProductHandler, auth *application.AuthService) *ProductModule {
	return &ProductModule{Handler: h, Auth: auth}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.Use(middleware.Session(m.Auth))
	products.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		products.GET("", m.Handler.List)
		products.GET("/:id", m.Handler.Get)
		products.POST("", m.Handler.Create)
		products.PUT("/:id", m.Handler.Update)
		products.DELETE("/:id", m.Handler.Delete)
	}
}
