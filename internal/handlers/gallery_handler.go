package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/middleware"
	"github.com/synesthesie/gallery/internal/models"
	"github.com/synesthesie/gallery/internal/services"
)

type GalleryHandler struct {
	galleryService *services.GalleryService
	imageService   *services.ImageService
	pageSize       int
}

func NewGalleryHandler(galleryService *services.GalleryService, imageService *services.ImageService, pageSize int) *GalleryHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &GalleryHandler{
		galleryService: galleryService,
		imageService:   imageService,
		pageSize:       pageSize,
	}
}

// ListGalleries returns hydrated galleries
// GET /galleries?page=1&limit=20
func (h *GalleryHandler) ListGalleries(c *gin.Context) {
	page, limit, offset := pagination(c, h.pageSize)

	galleries, total, err := h.galleryService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(galleries))
	for i := range galleries {
		results[i] = h.galleryJSON(c.Request.Context(), &galleries[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": results,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetGallery returns one gallery
// GET /galleries/:id
func (h *GalleryHandler) GetGallery(c *gin.Context) {
	id, ok := galleryID(c)
	if !ok {
		return
	}

	gallery, err := h.galleryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.galleryJSON(c.Request.Context(), gallery))
}

// CreateGallery creates a gallery from a title and attachment_json
// POST /galleries
func (h *GalleryHandler) CreateGallery(c *gin.Context) {
	var req services.GalleryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gallery, err := h.galleryService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.galleryJSON(c.Request.Context(), gallery))
}

// ReplaceGallery overwrites title and attachments
// PUT|PATCH /galleries/:id
func (h *GalleryHandler) ReplaceGallery(c *gin.Context) {
	id, ok := galleryID(c)
	if !ok {
		return
	}

	var req services.GalleryInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	gallery, err := h.galleryService.Replace(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.galleryJSON(c.Request.Context(), gallery))
}

// DeleteGallery removes a gallery
// DELETE /galleries/:id
func (h *GalleryHandler) DeleteGallery(c *gin.Context) {
	id, ok := galleryID(c)
	if !ok {
		return
	}

	if err := h.galleryService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GalleryHandler) galleryJSON(ctx context.Context, g *models.Gallery) gin.H {
	images := make([]gin.H, len(g.Attachments))
	for i, a := range g.Attachments {
		images[i] = gin.H{
			"caption": a.Caption,
			"image":   imageJSON(ctx, h.imageService, a.Image),
		}
	}
	return gin.H{
		"id":         g.ID,
		"title":      g.Title,
		"images":     images,
		"created_at": g.CreatedAt,
		"updated_at": g.UpdatedAt,
	}
}

// galleryID parses the :id path parameter. Ids that cannot name a gallery
// answer 404 like any other missing gallery.
func galleryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errors.NotFoundf("gallery %q", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
