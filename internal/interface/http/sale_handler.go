package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ecosoft-dev/ecosoft-api/internal/application"
	"github.com/ecosoft-dev/ecosoft-api/pkg/response"
	"github.com/ecosoft-dev/ecosoft-api/pkg/validation"
)

type SaleHandler struct {
	Svc    *application.SaleService
	Logger *logrus.Logger
}

func NewSaleHandler(svc *application.SaleService, logger *logrus.Logger) *SaleHandler {
	return &SaleHandler{Svc: svc, Logger: logger}
}

type saleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type saleRequest struct {
	Customer string            `json:"customer" binding:"required,min=2"`
	Items    []saleItemRequest `json:"items" binding:"required,min=1,dive"`
}

type saleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed pending cancelled"`
}

// List GET /api/sales?limit=n
func (h *SaleHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 0 {
		limit = 0
	}
	sales, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		h.Logger.WithError(err).Error("list sales failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, sales, "sales", map[string]any{"count": len(sales)})
	c.JSON(resp.Status, resp)
}

// Get GET /api/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrSaleNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "sale not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("get sale failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, s, "sale", nil)
	c.JSON(resp.Status, resp)
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	in := application.SaleInput{Customer: req.Customer}
	for _, it := range req.Items {
		in.Items = append(in.Items, application.SaleItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	s, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			resp := response.Error[any](c, http.StatusNotFound, "product not found", nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrInsufficientStock):
			resp := response.Error[any](c, http.StatusConflict, "insufficient stock", nil)
			c.JSON(resp.Status, resp)
		default:
			h.Logger.WithError(err).Error("create sale failed")
			resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
			c.JSON(resp.Status, resp)
		}
		return
	}
	resp := response.Success(c, http.StatusCreated, s, "sale recorded", nil)
	c.JSON(resp.Status, resp)
}

// UpdateStatus PUT /api/sales/:id/status
func (h *SaleHandler) UpdateStatus(c *gin.Context) {
	var req saleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}
	s, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, application.ErrSaleNotFound) {
			resp := response.Error[any](c, http.StatusNotFound, "sale not found", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.Logger.WithError(err).Error("update sale status failed")
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, s, "sale updated", nil)
	c.JSON(resp.Status, resp)
}
