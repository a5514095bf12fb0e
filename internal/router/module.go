package router

import "github.com/gin-gonic/gin"

// Module is a feature area (auth, users, products, files) that mounts
// its own routes under the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
