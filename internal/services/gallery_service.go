package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/models"
	"github.com/synesthesie/gallery/pkg/validation"
)

const maxTitleLength = 255

// ImageStore resolves image references for gallery attachments.
type ImageStore interface {
	// Resolve returns the image with its asset, or an error satisfying
	// errors.Is(err, errors.NotFound).
	Resolve(ctx context.Context, ref string) (*models.Image, error)
}

// GalleryStore persists galleries. Every write is atomic.
type GalleryStore interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	Load(ctx context.Context, id uuid.UUID) (*models.Gallery, error)
	List(ctx context.Context, limit, offset int) ([]models.Gallery, int64, error)
	Replace(ctx context.Context, id uuid.UUID, title string, attachments []models.GalleryAttachment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

//go:generate go run go.uber.org/mock/mockgen -package services -destination mocks_test.go github.com/synesthesie/gallery/internal/services ImageStore,GalleryStore

// Auditor records successful writes.
type Auditor interface {
	LogAction(actorID uuid.UUID, action, targetType string, targetID uuid.UUID, details map[string]interface{}) error
}

type GalleryService struct {
	store          GalleryStore
	images         ImageStore
	auditor        Auditor
	maxAttachments int
}

func NewGalleryService(store GalleryStore, images ImageStore, maxAttachments int) *GalleryService {
	return &GalleryService{
		store:          store,
		images:         images,
		maxAttachments: maxAttachments,
	}
}

// AttachAuditor enables audit entries for gallery writes
func (s *GalleryService) AttachAuditor(auditor Auditor) {
	s.auditor = auditor
}

// Create validates the input and stores a new gallery owned by actor.
func (s *GalleryService) Create(ctx context.Context, actor uuid.UUID, in GalleryInput) (*models.Gallery, error) {
	if actor == uuid.Nil {
		return nil, errors.Unauthorizedf("authentication required to create a gallery")
	}

	title, attachments, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	gallery := &models.Gallery{
		Title:       title,
		CreatedBy:   &actor,
		Attachments: attachments,
	}
	if err := s.store.Create(ctx, gallery); err != nil {
		return nil, errors.Annotate(err, "creating gallery")
	}
	log.Printf("Gallery %s created by %s with %d attachments", gallery.ID, actor, len(attachments))
	s.audit(actor, "gallery_create", gallery.ID, len(attachments))

	return s.Get(ctx, gallery.ID)
}

// Get returns the gallery with every attachment's image expanded.
func (s *GalleryService) Get(ctx context.Context, id uuid.UUID) (*models.Gallery, error) {
	gallery, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return gallery, nil
}

// List returns a page of hydrated galleries and the total count.
func (s *GalleryService) List(ctx context.Context, limit, offset int) ([]models.Gallery, int64, error) {
	galleries, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	return galleries, total, nil
}

// Replace overwrites the title and the complete attachment list.
// Nothing is changed unless every attachment validates.
func (s *GalleryService) Replace(ctx context.Context, actor uuid.UUID, id uuid.UUID, in GalleryInput) (*models.Gallery, error) {
	if actor == uuid.Nil {
		return nil, errors.Unauthorizedf("authentication required to update a gallery")
	}
	if _, err := s.store.Load(ctx, id); err != nil {
		return nil, errors.Trace(err)
	}

	title, attachments, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.Replace(ctx, id, title, attachments); err != nil {
		return nil, errors.Trace(err)
	}
	log.Printf("Gallery %s replaced by %s with %d attachments", id, actor, len(attachments))
	s.audit(actor, "gallery_replace", id, len(attachments))

	return s.Get(ctx, id)
}

// Delete removes a gallery and its attachments.
func (s *GalleryService) Delete(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	if actor == uuid.Nil {
		return errors.Unauthorizedf("authentication required to delete a gallery")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return errors.Trace(err)
	}
	log.Printf("Gallery %s deleted by %s", id, actor)
	s.audit(actor, "gallery_delete", id, 0)
	return nil
}

// validate checks the whole request before any write. Missing fields are
// reported without touching the image store; references are resolved only
// once every entry is complete.
func (s *GalleryService) validate(ctx context.Context, in GalleryInput) (string, []models.GalleryAttachment, error) {
	title := ""
	if in.Title != nil {
		title = validation.SanitizeString(*in.Title)
	}
	if !validation.MaxLength(title, maxTitleLength) {
		return "", nil, &ValidationError{
			Kind:     InvalidField,
			Problems: []AttachmentProblem{{Index: -1, Field: fmt.Sprintf("title exceeds %d characters", maxTitleLength)}},
		}
	}
	if s.maxAttachments > 0 && len(in.Attachments) > s.maxAttachments {
		return "", nil, &ValidationError{
			Kind:     InvalidField,
			Problems: []AttachmentProblem{{Index: -1, Field: fmt.Sprintf("at most %d attachments allowed", s.maxAttachments)}},
		}
	}

	var missing []AttachmentProblem
	for i, a := range in.Attachments {
		if a.Caption == nil {
			missing = append(missing, AttachmentProblem{Index: i, Field: "caption"})
		}
		if a.ImageID == nil {
			missing = append(missing, AttachmentProblem{Index: i, Field: "image_id"})
		}
	}
	if len(missing) > 0 {
		return "", nil, &ValidationError{Kind: MissingField, Problems: missing}
	}

	resolved := make(map[string]*models.Image, len(in.Attachments))
	var invalid []AttachmentProblem
	attachments := make([]models.GalleryAttachment, 0, len(in.Attachments))
	for i, a := range in.Attachments {
		ref := *a.ImageID
		img, seen := resolved[ref]
		if !seen {
			var err error
			img, err = s.images.Resolve(ctx, ref)
			if errors.Is(err, errors.NotFound) {
				img = nil
			} else if err != nil {
				return "", nil, errors.Annotatef(err, "resolving image %q", ref)
			}
			resolved[ref] = img
		}
		if img == nil {
			invalid = append(invalid, AttachmentProblem{Index: i, ImageID: ref})
			continue
		}
		attachments = append(attachments, models.GalleryAttachment{
			Position: i,
			Caption:  *a.Caption,
			ImageID:  img.ID,
		})
	}
	if len(invalid) > 0 {
		return "", nil, &ValidationError{Kind: InvalidReference, Problems: invalid}
	}
	return title, attachments, nil
}

func (s *GalleryService) audit(actor uuid.UUID, action string, galleryID uuid.UUID, attachments int) {
	if s.auditor == nil {
		return
	}
	details := map[string]interface{}{"attachments": attachments}
	if err := s.auditor.LogAction(actor, action, "gallery", galleryID, details); err != nil {
		log.Printf("WARN: failed to audit %s on gallery %s: %v", action, galleryID, err)
	}
}
