package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/container"
	"github.com/ecosoft-dev/ecosoft-api/internal/interface/middleware"
)

// DebugModule exposes expvar runtime metrics. Enabled only when
// DEBUG_METRICS_ENABLED is set; private clients bypass the limiter so
// scrapers are never throttled.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute,
		middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
