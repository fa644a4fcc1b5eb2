package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/synesthesie/gallery/internal/services"
)

type AdminHandler struct {
	auditService *services.AuditService
}

func NewAdminHandler(auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{auditService: auditService}
}

// GetAuditLogs lists recorded gallery writes
// GET /admin/audit/logs?page=1&limit=50&actor_id=...&action=gallery_delete
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	page, limit, _ := pagination(c, 50)

	var actorID *uuid.UUID
	if raw := c.Query("actor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actor_id"})
			return
		}
		actorID = &id
	}

	logs, total, err := h.auditService.GetRecentActions(page, limit, actorID, c.Query("action"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": logs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
