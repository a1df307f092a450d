package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"printstock/internal/domain"
	"printstock/internal/service"
)

// InventoryHandler handles material and consumable endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateMaterial handles POST /api/v1/materials
func (h *InventoryHandler) CreateMaterial(c *gin.Context) {
	var draft domain.MaterialDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid material draft: "+err.Error())
		return
	}

	m, err := h.inventoryService.CreateMaterial(c.Request.Context(), draft)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, m)
}

// ListMaterials handles GET /api/v1/materials
func (h *InventoryHandler) ListMaterials(c *gin.Context) {
	materials, err := h.inventoryService.ListMaterials(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, materials)
}

// GetMaterial handles GET /api/v1/materials/:id
func (h *InventoryHandler) GetMaterial(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	m, err := h.inventoryService.GetMaterial(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, m)
}

// UpdateMaterial handles PUT /api/v1/materials/:id
func (h *InventoryHandler) UpdateMaterial(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var draft domain.MaterialDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid material draft: "+err.Error())
		return
	}

	m, err := h.inventoryService.UpdateMaterial(c.Request.Context(), id, draft)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, m)
}

// DeleteMaterial handles DELETE /api/v1/materials/:id
func (h *InventoryHandler) DeleteMaterial(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteMaterial(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "material deleted"})
}

// CreateConsumable handles POST /api/v1/consumables
func (h *InventoryHandler) CreateConsumable(c *gin.Context) {
	var draft domain.ConsumableDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid consumable draft: "+err.Error())
		return
	}

	consumable, err := h.inventoryService.CreateConsumable(c.Request.Context(), draft)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, consumable)
}

// ListConsumables handles GET /api/v1/consumables
func (h *InventoryHandler) ListConsumables(c *gin.Context) {
	consumables, err := h.inventoryService.ListConsumables(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, consumables)
}

// GetConsumable handles GET /api/v1/consumables/:id
func (h *InventoryHandler) GetConsumable(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	consumable, err := h.inventoryService.GetConsumable(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, consumable)
}

// UpdateConsumable handles PUT /api/v1/consumables/:id
func (h *InventoryHandler) UpdateConsumable(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var draft domain.ConsumableDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid consumable draft: "+err.Error())
		return
	}

	consumable, err := h.inventoryService.UpdateConsumable(c.Request.Context(), id, draft)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, consumable)
}

// DeleteConsumable handles DELETE /api/v1/consumables/:id
func (h *InventoryHandler) DeleteConsumable(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteConsumable(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "consumable deleted"})
}

func recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record ID")
		return uuid.Nil, false
	}
	return id, true
}
