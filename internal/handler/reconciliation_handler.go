package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"printstock/internal/domain"
	"printstock/internal/service"
)

// ReconciliationHandler handles the invoice reconciliation session endpoints.
type ReconciliationHandler struct {
	reconService service.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconService service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconService: reconService}
}

// Start handles POST /api/v1/reconciliation/sessions
// Accepts a multipart invoice upload and returns the session in review phase.
func (h *ReconciliationHandler) Start(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")

	view, err := h.reconService.Start(c.Request.Context(), service.StartInput{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		File:        file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// Get handles GET /api/v1/reconciliation/sessions/:id
func (h *ReconciliationHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.reconService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// UpdateDecision handles PATCH /api/v1/reconciliation/sessions/:id/decisions/:index
func (h *ReconciliationHandler) UpdateDecision(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "invalid item index")
		return
	}

	var patch domain.DecisionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid decision patch: "+err.Error())
		return
	}

	decision, err := h.reconService.UpdateDecision(c.Request.Context(), id, index, patch)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, decision)
}

// Commit handles POST /api/v1/reconciliation/sessions/:id/commit
// The bulk-create loop runs on its own goroutine, detached from the request
// context, so it survives the response and the client polls Progress.
func (h *ReconciliationHandler) Commit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	go func() {
		if err := h.reconService.Commit(context.Background(), id); err != nil {
			log.Printf("reconciliationHandler.Commit: session %s: %v", id, err)
		}
	}()

	RespondAccepted(c, gin.H{"message": "commit started"})
}

// Progress handles GET /api/v1/reconciliation/sessions/:id/progress
func (h *ReconciliationHandler) Progress(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	progress, phase, err := h.reconService.Progress(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"phase":     phase,
		"completed": progress.Completed,
		"total":     progress.Total,
	})
}

// Archive handles GET /api/v1/reconciliation/sessions/:id/archive
// Redirect-free: the presigned URL is returned for the client to open.
func (h *ReconciliationHandler) Archive(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	url, err := h.reconService.ArchiveURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Handoff handles POST /api/v1/reconciliation/sessions/:id/handoff
func (h *ReconciliationHandler) Handoff(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	po, err := h.reconService.Handoff(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, po)
}

// Abandon handles DELETE /api/v1/reconciliation/sessions/:id
func (h *ReconciliationHandler) Abandon(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.reconService.Abandon(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session abandoned"})
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
