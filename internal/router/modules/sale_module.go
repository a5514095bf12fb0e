package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/container"
	handlers "github.com/ecosoft-dev/ecosoft-api/internal/interface/http"
	"github.com/ecosoft-dev/ecosoft-api/internal/interface/middleware"
)

// SaleModule wires the ventas endpoints under /api/sales. Same access
// rules as the catalog: any authenticated user.
type SaleModule struct {
	Handler *handlers.SaleHandler
	Auth    *application.AuthService
}

func NewSaleModule(h *handlers.SaleHandler, auth *application.AuthService) *SaleModule {
	return &SaleModule{Handler: h, Auth: auth}
}

func (m *SaleModule) Register(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	sales.Use(middleware.Session(m.Auth))
	sales.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		sales.GET("", m.Handler.List)
		sales.GET("/:id", m.Handler.Get)
		sales.POST("", m.Handler.Create)
		sales.PUT("/:id/status", m.Handler.UpdateStatus)
	}
}
