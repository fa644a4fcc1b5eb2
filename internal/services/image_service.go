package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/models"
	"gorm.io/gorm"
)

// URLSigner produces time-limited download URLs for stored objects.
type URLSigner interface {
	PresignImageGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ImageService reads uploaded images. Uploading is handled elsewhere;
// galleries only ever look images up.
type ImageService struct {
	db     *gorm.DB
	signer URLSigner
	ttl    time.Duration
}

func NewImageService(db *gorm.DB) *ImageService {
	return &ImageService{db: db}
}

// AttachSigner enables presigned URLs in image representations
func (s *ImageService) AttachSigner(signer URLSigner, ttl time.Duration) {
	s.signer = signer
	s.ttl = ttl
}

// Resolve looks up an image by its textual id. Ids that are not UUIDs
// cannot exist and are reported as not found.
func (s *ImageService) Resolve(ctx context.Context, ref string) (*models.Image, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, errors.NotFoundf("image %q", ref)
	}
	return s.GetImageByID(ctx, id)
}

// GetImageByID returns a single image by ID
func (s *ImageService) GetImageByID(ctx context.Context, imageID uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := s.db.WithContext(ctx).Preload("Asset").First(&image, "id = ?", imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NotFoundf("image %s", imageID)
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &image, nil
}

// GetAllImages returns a page of images, newest first
func (s *ImageService) GetAllImages(ctx context.Context, limit, offset int) ([]models.Image, int64, error) {
	var images []models.Image
	var total int64

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Image{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Trace(err)
	}

	if err := db.Preload("Asset").Order("created_at DESC").Limit(limit).Offset(offset).Find(&images).Error; err != nil {
		return nil, 0, errors.Trace(err)
	}

	return images, total, nil
}

// URLFor returns a presigned URL for the image file, or "" when signing
// is not configured or fails.
func (s *ImageService) URLFor(ctx context.Context, image *models.Image) string {
	if s.signer == nil || image == nil || image.StorageKey() == "" {
		return ""
	}
	url, err := s.signer.PresignImageGet(ctx, image.StorageKey(), s.ttl)
	if err != nil {
		log.Printf("WARN: failed to presign image %s: %v", image.ID, err)
		return ""
	}
	return url
}
