package helpers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
)

// SessionCookieName is the single persisted-session artifact. The value
// is the JSON-serialized stripped user record. It is not signed; its
// integrity relies on httpOnly and transport security.
const SessionCookieName = "user"

type Manager struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookie(domain string, secure bool, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{Domain: domain, Secure: secure, TTL: ttl}
}

// SetSession serializes the stripped user into the session cookie.
func (m *Manager) SetSession(c *gin.Context, u entity.PublicUser) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, string(b), int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Secure, true)
}
