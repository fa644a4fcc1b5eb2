package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/models"
	"github.com/synesthesie/gallery/internal/services"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// GetAllImages lists images that can be attached to galleries
// GET /images?page=1&limit=20
func (h *ImageHandler) GetAllImages(c *gin.Context) {
	page, limit, offset := pagination(c, 20)

	images, total, err := h.imageService.GetAllImages(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	imageList := make([]gin.H, len(images))
	for i := range images {
		imageList[i] = imageJSON(c.Request.Context(), h.imageService, &images[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"images": imageList,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetImage gets single image details
// GET /images/:id
func (h *ImageHandler) GetImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errors.NotFoundf("image %q", c.Param("id")))
		return
	}

	image, err := h.imageService.GetImageByID(c.Request.Context(), imageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, imageJSON(c.Request.Context(), h.imageService, image))
}

// imageJSON is the full image representation embedded in gallery responses.
func imageJSON(ctx context.Context, imageService *services.ImageService, img *models.Image) gin.H {
	if img == nil {
		return nil
	}
	out := gin.H{
		"id":          img.ID,
		"title":       img.Title,
		"description": img.Description,
		"visibility":  img.Visibility,
		"created_at":  img.CreatedAt,
		"updated_at":  img.UpdatedAt,
	}
	if img.Asset != nil {
		out["filename"] = img.Asset.Filename
		out["mime_type"] = img.Asset.MimeType
		out["size_bytes"] = img.Asset.SizeBytes
	}
	if url := imageService.URLFor(ctx, img); url != "" {
		out["url"] = url
	}
	return out
}
