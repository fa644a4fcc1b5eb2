package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetVisibility string

const (
	AssetVisibilityPrivate AssetVisibility = "private"
	AssetVisibilityPublic  AssetVisibility = "public"
)

// Asset is the stored file behind an image. Galleries never write assets;
// they are read to render image metadata.
type Asset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:512;uniqueIndex" json:"key"` // storage path
	Filename  string    `gorm:"size:255" json:"filename"`
	MimeType  string    `gorm:"size:120" json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `gorm:"size:128" json:"checksum"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Image is an uploaded picture that gallery attachments point at.
// The same image may be attached to any number of galleries.
type Image struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID     uuid.UUID       `gorm:"type:uuid;not null" json:"asset_id"`
	Title       string          `gorm:"size:255" json:"title"`
	Description string          `gorm:"size:1000" json:"description"`
	Visibility  AssetVisibility `gorm:"size:16;default:private" json:"visibility"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// StorageKey returns the asset key or "" when the asset row is missing.
func (i *Image) StorageKey() string {
	if i.Asset == nil {
		return ""
	}
	return i.Asset.Key
}
