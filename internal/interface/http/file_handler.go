package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/pkg/response"
)

// FileHandler is the archivos surface; files are scoped to the session
// user's prefix in the bucket.
type FileHandler struct {
	Svc    *application.FileService
	Logger *logrus.Logger
}

func NewFileHandler(svc *application.FileService, logger *logrus.Logger) *FileHandler {
	return &FileHandler{Svc: svc, Logger: logger}
}

// Upload POST /api/files (multipart field "file")
func (h *FileHandler) Upload(c *gin.Context) {
	uid := c.GetString("userID")

	fh, err := c.FormFile("file")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer func() { _ = f.Close() }()

	stored, err := h.Svc.Upload(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("file upload failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusCreated, stored, "file uploaded", nil)
	c.JSON(resp.Status, resp)
}

// List GET /api/files
func (h *FileHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	files, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("list files failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, files, "files", map[string]any{"count": len(files)})
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, application.ErrFileNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "file not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("delete file failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "file deleted", nil)
	c.JSON(resp.Status, resp)
}
