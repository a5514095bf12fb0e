package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
	"github.com/ecosoft-dev/ecosoft-api/pkg/response"
)

const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
)

// Session resolves the `user` cookie into a session on every request.
// A missing, malformed, or stale cookie (user no longer in the store)
// aborts with 401; resolution never errors for those cases, only for
// store failures, which surface as 500.
func Session(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(helpers.SessionCookieName)
		if err != nil {
			raw = ""
		}
		sess, err := auth.ResolveSession(c.Request.Context(), raw)
		if err != nil {
			resp := response.Error[any](c, http.StatusInternalServerError, "session resolution failed", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		if sess == nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserIDKey, sess.ID)
		c.Set("userName", sess.Name)
		c.Set("userEmail", sess.Email)
		c.Set("userRole", sess.Role)
		c.Next()
	}
}

// AdminOnly gates a route group on the resolved session's role. It must
// run after Session.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != "admin" {
			resp := response.Error[any](c, http.StatusForbidden, "admin access required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
