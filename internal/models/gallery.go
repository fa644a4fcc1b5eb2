package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gallery is a titled, ordered collection of captioned images.
type Gallery struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"size:255" json:"title"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Attachments are kept in display order; Position mirrors the slice index.
	Attachments []GalleryAttachment `gorm:"foreignKey:GalleryID;constraint:OnDelete:CASCADE" json:"images"`
}

func (g *Gallery) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GalleryAttachment places one image in a gallery with a caption.
type GalleryAttachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	GalleryID uuid.UUID `gorm:"type:uuid;not null;index:idx_gallery_position,priority:1" json:"-"`
	Position  int       `gorm:"not null;index:idx_gallery_position,priority:2" json:"-"`
	Caption   string    `gorm:"type:text;not null" json:"caption"`
	ImageID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	Image *Image `gorm:"foreignKey:ImageID" json:"image"`
}

func (a *GalleryAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
