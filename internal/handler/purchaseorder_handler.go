package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"printstock/internal/service"
)

// PurchaseOrderHandler handles purchase order draft endpoints.
type PurchaseOrderHandler struct {
	poService service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(poService service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

// List handles GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders, total, err := h.poService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, ok := poID(c)
	if !ok {
		return
	}
	po, err := h.poService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, po)
}

// Export handles GET /api/v1/purchase-orders/:id/export
// Streams the purchase order as an xlsx attachment.
func (h *PurchaseOrderHandler) Export(c *gin.Context) {
	id, ok := poID(c)
	if !ok {
		return
	}
	data, err := h.poService.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("purchase-order-%s.xlsx", id)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func poID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid purchase order ID")
		return uuid.Nil, false
	}
	return id, true
}
