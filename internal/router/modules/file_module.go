package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/container"
	handlers "github.com/ecosoft-dev/ecosoft-api/internal/interface/http"
	"github.com/ecosoft-dev/ecosoft-api/internal/interface/middleware"
)

// FileModule wires the archivos routes under /api/files.
type FileModule struct {
	Handler *handlers.FileHandler
	Auth    *application.AuthService
}

func NewFileModule(h *handlers.FileHandler, auth *application.AuthService) *FileModule {
	return &FileModule{Handler: h, Auth: auth}
}

func (m *FileModule) Register(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.Session(m.Auth))
	files.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		files.GET("", m.Handler.List)
		files.POST("", m.Handler.Upload)
		files.DELETE("/:id", m.Handler.Delete)
	}
}
