package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synesthesie/gallery/internal/models"
	"go.uber.org/mock/gomock"
)

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) LogAction(actorID uuid.UUID, action, targetType string, targetID uuid.UUID, details map[string]interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

type galleryFixture struct {
	service *GalleryService
	store   *MockGalleryStore
	images  *MockImageStore
	auditor *recordingAuditor
}

func newGalleryFixture(t *testing.T) *galleryFixture {
	ctrl := gomock.NewController(t)
	f := &galleryFixture{
		store:   NewMockGalleryStore(ctrl),
		images:  NewMockImageStore(ctrl),
		auditor: &recordingAuditor{},
	}
	f.service = NewGalleryService(f.store, f.images, 10)
	f.service.AttachAuditor(f.auditor)
	return f
}

func strPtr(s string) *string { return &s }

func testImage(id uuid.UUID) *models.Image {
	return &models.Image{ID: id, Title: "img-" + id.String()[:8]}
}

func notFound(ref string) error {
	return errors.NotFoundf("image %q", ref)
}

func TestCreateRequiresAuthentication(t *testing.T) {
	f := newGalleryFixture(t)

	_, err := f.service.Create(context.Background(), uuid.Nil, GalleryInput{
		Title:       strPtr("Gallery Title"),
		Attachments: []AttachmentInput{NewAttachment("test caption 1", uuid.NewString())},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.Unauthorized))
	assert.Empty(t, f.auditor.actions)
}

func TestCreateEmptyGallery(t *testing.T) {
	f := newGalleryFixture(t)
	actor := uuid.New()
	id := uuid.New()

	f.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *models.Gallery) error {
		assert.Equal(t, "Gallery Title", g.Title)
		assert.Empty(t, g.Attachments)
		require.NotNil(t, g.CreatedBy)
		assert.Equal(t, actor, *g.CreatedBy)
		g.ID = id
		return nil
	})
	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id, Title: "Gallery Title"}, nil)

	gallery, err := f.service.Create(context.Background(), actor, GalleryInput{Title: strPtr("Gallery Title")})
	require.NoError(t, err)
	assert.Equal(t, id, gallery.ID)
	assert.Empty(t, gallery.Attachments)
	assert.Equal(t, []string{"gallery_create"}, f.auditor.actions)
}

func TestCreateKeepsSubmittedOrder(t *testing.T) {
	f := newGalleryFixture(t)
	actor := uuid.New()
	id := uuid.New()
	x, y := uuid.New(), uuid.New()

	gomock.InOrder(
		f.images.EXPECT().Resolve(gomock.Any(), x.String()).Return(testImage(x), nil),
		f.images.EXPECT().Resolve(gomock.Any(), y.String()).Return(testImage(y), nil),
	)
	f.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *models.Gallery) error {
		require.Len(t, g.Attachments, 2)
		assert.Equal(t, "a", g.Attachments[0].Caption)
		assert.Equal(t, x, g.Attachments[0].ImageID)
		assert.Equal(t, 0, g.Attachments[0].Position)
		assert.Equal(t, "b", g.Attachments[1].Caption)
		assert.Equal(t, y, g.Attachments[1].ImageID)
		assert.Equal(t, 1, g.Attachments[1].Position)
		g.ID = id
		return nil
	})
	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id, Title: "T"}, nil)

	_, err := f.service.Create(context.Background(), actor, GalleryInput{
		Title: strPtr("T"),
		Attachments: []AttachmentInput{
			NewAttachment("a", x.String()),
			NewAttachment("b", y.String()),
		},
	})
	require.NoError(t, err)
}

func TestCreateAllowsEmptyCaption(t *testing.T) {
	f := newGalleryFixture(t)
	x := uuid.New()
	id := uuid.New()

	f.images.EXPECT().Resolve(gomock.Any(), x.String()).Return(testImage(x), nil)
	f.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *models.Gallery) error {
		require.Len(t, g.Attachments, 1)
		assert.Equal(t, "", g.Attachments[0].Caption)
		g.ID = id
		return nil
	})
	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id}, nil)

	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Attachments: []AttachmentInput{NewAttachment("", x.String())},
	})
	require.NoError(t, err)
}

func TestCreateMissingImageID(t *testing.T) {
	f := newGalleryFixture(t)

	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Title:       strPtr("Gallery Title"),
		Attachments: []AttachmentInput{{Caption: strPtr("test caption 1")}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.NotValid))

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, MissingField, verr.Kind)
	assert.Equal(t, []AttachmentProblem{{Index: 0, Field: "image_id"}}, verr.Problems)
}

func TestCreateMissingCaptionDoesNotResolveImages(t *testing.T) {
	f := newGalleryFixture(t)

	// No Resolve expectations: a missing field rejects the request first.
	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Attachments: []AttachmentInput{
			NewAttachment("ok", uuid.NewString()),
			{ImageID: strPtr(uuid.NewString())},
		},
	})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, MissingField, verr.Kind)
	assert.Equal(t, []AttachmentProblem{{Index: 1, Field: "caption"}}, verr.Problems)
}

func TestCreateInvalidReferenceIsAllOrNothing(t *testing.T) {
	f := newGalleryFixture(t)
	x := uuid.New()

	f.images.EXPECT().Resolve(gomock.Any(), x.String()).Return(testImage(x), nil)
	f.images.EXPECT().Resolve(gomock.Any(), "-1").Return(nil, notFound("-1"))

	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Title: strPtr("Gallery Title"),
		Attachments: []AttachmentInput{
			NewAttachment("valid", x.String()),
			NewAttachment("invalid", "-1"),
		},
	})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, InvalidReference, verr.Kind)
	assert.Equal(t, []AttachmentProblem{{Index: 1, ImageID: "-1"}}, verr.Problems)
	assert.Empty(t, f.auditor.actions)
}

func TestCreateResolvesRepeatedImageOnce(t *testing.T) {
	f := newGalleryFixture(t)
	x := uuid.New()
	id := uuid.New()

	f.images.EXPECT().Resolve(gomock.Any(), x.String()).Return(testImage(x), nil).Times(1)
	f.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g *models.Gallery) error {
		require.Len(t, g.Attachments, 2)
		assert.Equal(t, x, g.Attachments[0].ImageID)
		assert.Equal(t, x, g.Attachments[1].ImageID)
		g.ID = id
		return nil
	})
	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id}, nil)

	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Attachments: []AttachmentInput{
			NewAttachment("first", x.String()),
			NewAttachment("again", x.String()),
		},
	})
	require.NoError(t, err)
}

func TestCreateResolverFailureIsNotValidationError(t *testing.T) {
	f := newGalleryFixture(t)
	x := uuid.New()

	f.images.EXPECT().Resolve(gomock.Any(), x.String()).Return(nil, errors.New("connection reset"))

	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Attachments: []AttachmentInput{NewAttachment("a", x.String())},
	})
	require.Error(t, err)
	_, isValidation := AsValidationError(err)
	assert.False(t, isValidation)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCreateRejectsLongTitle(t *testing.T) {
	f := newGalleryFixture(t)

	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{
		Title: strPtr(strings.Repeat("x", maxTitleLength+1)),
	})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, InvalidField, verr.Kind)
}

func TestCreateRejectsTooManyAttachments(t *testing.T) {
	f := newGalleryFixture(t)

	attachments := make([]AttachmentInput, 11)
	for i := range attachments {
		attachments[i] = NewAttachment("c", uuid.NewString())
	}
	_, err := f.service.Create(context.Background(), uuid.New(), GalleryInput{Attachments: attachments})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, InvalidField, verr.Kind)
}

func TestGetNotFound(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()

	f.store.EXPECT().Load(gomock.Any(), id).Return(nil, errors.NotFoundf("gallery %s", id))

	_, err := f.service.Get(context.Background(), id)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestListPassesPagination(t *testing.T) {
	f := newGalleryFixture(t)

	f.store.EXPECT().List(gomock.Any(), 20, 40).Return([]models.Gallery{{Title: "a"}}, int64(41), nil)

	galleries, total, err := f.service.List(context.Background(), 20, 40)
	require.NoError(t, err)
	assert.Len(t, galleries, 1)
	assert.EqualValues(t, 41, total)
}

func TestReplaceRequiresAuthentication(t *testing.T) {
	f := newGalleryFixture(t)

	_, err := f.service.Replace(context.Background(), uuid.Nil, uuid.New(), GalleryInput{Title: strPtr("New")})
	assert.True(t, errors.Is(err, errors.Unauthorized))
}

func TestReplaceNotFound(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()

	f.store.EXPECT().Load(gomock.Any(), id).Return(nil, errors.NotFoundf("gallery %s", id))

	_, err := f.service.Replace(context.Background(), uuid.New(), id, GalleryInput{
		Attachments: []AttachmentInput{NewAttachment("a", uuid.NewString())},
	})
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestReplaceInvalidReferenceLeavesGalleryAlone(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()

	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id, Title: "Gallery Title 1"}, nil)
	f.images.EXPECT().Resolve(gomock.Any(), "-1").Return(nil, notFound("-1"))

	_, err := f.service.Replace(context.Background(), uuid.New(), id, GalleryInput{
		Title:       strPtr("New Gallery Title"),
		Attachments: []AttachmentInput{NewAttachment("new test caption", "-1")},
	})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, InvalidReference, verr.Kind)
}

func TestReplaceMissingImageID(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()

	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id}, nil)

	_, err := f.service.Replace(context.Background(), uuid.New(), id, GalleryInput{
		Title:       strPtr("New Gallery Title"),
		Attachments: []AttachmentInput{{Caption: strPtr("new test caption")}},
	})
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, MissingField, verr.Kind)
}

func TestReplaceSubstitutesWholeList(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()
	x, y := uuid.New(), uuid.New()

	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id}, nil)
	f.images.EXPECT().Resolve(gomock.Any(), y.String()).Return(testImage(y), nil)
	f.images.EXPECT().Resolve(gomock.Any(), x.String()).Return(testImage(x), nil)
	f.store.EXPECT().Replace(gomock.Any(), id, "New Gallery Title", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, _ string, attachments []models.GalleryAttachment) error {
			require.Len(t, attachments, 2)
			assert.Equal(t, y, attachments[0].ImageID)
			assert.Equal(t, "new test caption 1", attachments[0].Caption)
			assert.Equal(t, x, attachments[1].ImageID)
			assert.Equal(t, "new test caption 2", attachments[1].Caption)
			return nil
		})
	f.store.EXPECT().Load(gomock.Any(), id).Return(&models.Gallery{ID: id, Title: "New Gallery Title"}, nil)

	gallery, err := f.service.Replace(context.Background(), uuid.New(), id, GalleryInput{
		Title: strPtr("New Gallery Title"),
		Attachments: []AttachmentInput{
			NewAttachment("new test caption 1", y.String()),
			NewAttachment("new test caption 2", x.String()),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Gallery Title", gallery.Title)
	assert.Equal(t, []string{"gallery_replace"}, f.auditor.actions)
}

func TestDeleteRequiresAuthentication(t *testing.T) {
	f := newGalleryFixture(t)

	err := f.service.Delete(context.Background(), uuid.Nil, uuid.New())
	assert.True(t, errors.Is(err, errors.Unauthorized))
}

func TestDeleteNotFound(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()

	f.store.EXPECT().Delete(gomock.Any(), id).Return(errors.NotFoundf("gallery %s", id))

	err := f.service.Delete(context.Background(), uuid.New(), id)
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.Empty(t, f.auditor.actions)
}

func TestDelete(t *testing.T) {
	f := newGalleryFixture(t)
	id := uuid.New()

	f.store.EXPECT().Delete(gomock.Any(), id).Return(nil)

	require.NoError(t, f.service.Delete(context.Background(), uuid.New(), id))
	assert.Equal(t, []string{"gallery_delete"}, f.auditor.actions)
}
