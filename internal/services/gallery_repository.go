package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GalleryRepository stores galleries and their attachments with gorm.
type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// hydrated preloads attachments in display order with their images.
func hydrated(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Attachments.Image").
		Preload("Attachments.Image.Asset")
}

// Create inserts the gallery and its attachments in one transaction.
func (r *GalleryRepository) Create(ctx context.Context, gallery *models.Gallery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(gallery).Error; err != nil {
			return errors.Annotate(err, "inserting gallery")
		}
		return insertAttachments(tx, gallery.ID, gallery.Attachments)
	})
}

// Load returns one hydrated gallery.
func (r *GalleryRepository) Load(ctx context.Context, id uuid.UUID) (*models.Gallery, error) {
	var gallery models.Gallery
	err := hydrated(r.db.WithContext(ctx)).First(&gallery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NotFoundf("gallery %s", id)
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &gallery, nil
}

// List returns hydrated galleries oldest first.
func (r *GalleryRepository) List(ctx context.Context, limit, offset int) ([]models.Gallery, int64, error) {
	var galleries []models.Gallery
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Gallery{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Trace(err)
	}

	query := hydrated(db).Order("created_at ASC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&galleries).Error; err != nil {
		return nil, 0, errors.Trace(err)
	}
	return galleries, total, nil
}

// Replace swaps the title and the full attachment list. Old attachments
// are deleted, never merged with the new ones.
func (r *GalleryRepository) Replace(ctx context.Context, id uuid.UUID, title string, attachments []models.GalleryAttachment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Gallery
		err := tx.Select("id").First(&existing, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFoundf("gallery %s", id)
		}
		if err != nil {
			return errors.Trace(err)
		}

		if err := tx.Model(&models.Gallery{}).Where("id = ?", id).Update("title", title).Error; err != nil {
			return errors.Annotate(err, "updating gallery title")
		}
		if err := tx.Where("gallery_id = ?", id).Delete(&models.GalleryAttachment{}).Error; err != nil {
			return errors.Annotate(err, "removing previous attachments")
		}
		return insertAttachments(tx, id, attachments)
	})
}

// Delete removes the gallery and everything it owns.
func (r *GalleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&models.GalleryAttachment{}).Error; err != nil {
			return errors.Annotate(err, "removing attachments")
		}
		res := tx.Where("id = ?", id).Delete(&models.Gallery{})
		if res.Error != nil {
			return errors.Annotate(res.Error, "removing gallery")
		}
		if res.RowsAffected == 0 {
			return errors.NotFoundf("gallery %s", id)
		}
		return nil
	})
}

func insertAttachments(tx *gorm.DB, galleryID uuid.UUID, attachments []models.GalleryAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	rows := make([]models.GalleryAttachment, len(attachments))
	for i, a := range attachments {
		rows[i] = models.GalleryAttachment{
			GalleryID: galleryID,
			Position:  i,
			Caption:   a.Caption,
			ImageID:   a.ImageID,
		}
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return errors.Annotate(err, "inserting attachments")
	}
	return nil
}
