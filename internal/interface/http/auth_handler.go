package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/internal/domain/entity"
	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
	"github.com/ecosoft-dev/ecosoft-api/pkg/mailer"
	"github.com/ecosoft-dev/ecosoft-api/pkg/response"
	"github.com/ecosoft-dev/ecosoft-api/pkg/validation"
)

// AuthHandler owns the login/register/logout surface. Registration
// enqueues a welcome email when a publisher is configured; delivery is
// best-effort and never blocks the response.
type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
	Pub     *helpers.RabbitPublisher
	MailOn  bool
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailOn bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies, Logger: logger, Pub: pub, MailOn: mailOn}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Login POST /api/auth/login
// On success sets the session cookie and returns the stripped user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("login failed against credential store")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}

	pub := u.Public()
	if err := h.Cookies.SetSession(c, pub); err != nil {
		h.Logger.WithError(err).Error("set session cookie failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, pub, "login successful", nil)
	c.JSON(resp.Status, resp)
}

// Register POST /api/auth/register
// Returns the created stripped user; 409 when the email is taken.
// Does not log the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailInUse) {
			resp := response.Error[any](c, http.StatusConflict, "email already in use", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("register failed against credential store")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}

	h.enqueueWelcome(c, u)

	resp := response.Success(c, http.StatusCreated, u.Public(), "user registered", nil)
	c.JSON(resp.Status, resp)
}

// Logout POST /api/auth/logout
// Clears the cookie unconditionally; there is no server-side session
// state to tear down.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}

// Profile GET /api/profile
// Returns the session as resolved by the middleware.
func (h *AuthHandler) Profile(c *gin.Context) {
	v, ok := c.Get("session")
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
		c.JSON(resp.Status, resp)
		return
	}
	sess := v.(*entity.Session)
	resp := response.Success(c, http.StatusOK, sess, "profile", nil)
	c.JSON(resp.Status, resp)
}

func (h *AuthHandler) enqueueWelcome(c *gin.Context, u *entity.User) {
	if h.Pub == nil || !h.MailOn {
		return
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Bienvenido a EcoSoft",
		Text:    "Hola " + u.Name + ", tu cuenta ha sido creada correctamente.",
	}
	if err := h.Pub.PublishJSON(c, job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}
