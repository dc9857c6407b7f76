package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/models"
	"github.com/AUXLE/clavedeoroBackend/internal/storage"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

type fakePropertyRepo struct {
	rows map[uuid.UUID]*models.Property
}

func newFakePropertyRepo(seed ...*models.Property) *fakePropertyRepo {
	r := &fakePropertyRepo{rows: map[uuid.UUID]*models.Property{}}
	for _, p := range seed {
		r.rows[p.ID] = p
	}
	return r
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	cp := *p
	cp.RowVersion = 1
	r.rows[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Images = append([]string{}, p.Images...)
	return &cp, nil
}

func (r *fakePropertyRepo) ListAll(_ context.Context) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePropertyRepo) UpdateIfVersion(_ context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	cur, ok := r.rows[p.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *p
	cp.RowVersion = expected + 1
	r.rows[p.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	p, _ := r.GetByID(ctx, id)
	if p == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(p); err != nil {
		return err
	}
	_, err := r.UpdateIfVersion(ctx, p, p.RowVersion)
	return err
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}

func (r *fakePropertyRepo) ListImageURLs(_ context.Context) ([]string, error) {
	var urls []string
	for _, p := range r.rows {
		urls = append(urls, p.Images...)
	}
	return urls, nil
}

type fakeStore struct {
	uploads   int
	removed   []string
	uploadErr error
	removeErr error
}

func (s *fakeStore) Upload(_ context.Context, bucket, folder, originalName, _ string, _ []byte) (string, string, error) {
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	s.uploads++
	key := fmt.Sprintf("%d-%s", s.uploads, originalName)
	if folder != "" {
		key = folder + "/" + key
	}
	return key, fakeURL(bucket, key), nil
}

func (s *fakeStore) Remove(_ context.Context, _, key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, key)
	return nil
}

func (s *fakeStore) KeyFromPublicURL(bucket, publicURL string) (string, error) {
	prefix := fakeURL(bucket, "")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", utils.ErrUnrecognizedReference
	}
	return strings.TrimPrefix(publicURL, prefix), nil
}

func (s *fakeStore) ListObjects(_ context.Context, _, _ string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func fakeURL(bucket, key string) string {
	return fmt.Sprintf("https://store.test/object/public/%s/%s", bucket, key)
}

func seedProperty(images ...string) *models.Property {
	if images == nil {
		images = []string{}
	}
	return &models.Property{
		ID:         uuid.New(),
		Name:       "Sea View Villa",
		Owner:      "R. Mehta",
		Price:      125000,
		Area:       2100,
		BHKType:    "3BHK",
		Images:     images,
		RowVersion: 1,
	}
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestPropertyServiceGetUnknown(t *testing.T) {
	svc := NewPropertyService(newFakePropertyRepo(), &fakeStore{})

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPropertyServiceCreate(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := NewPropertyService(repo, &fakeStore{})
	creator := uuid.New()

	p, err := svc.Create(context.Background(), dtos.CreatePropertyRequest{
		Name:         "Sea View Villa",
		Owner:        "R. Mehta",
		Price:        utils.Ptr(125000.0),
		Area:         utils.Ptr(2100.0),
		ExactAddress: "12 Marine Drive",
		BHKType:      "3BHK",
		Location:     "Mumbai",
	}, creator)

	require.NoError(t, err)
	require.Equal(t, creator, p.CreatedBy)
	require.NotNil(t, p.Images)
	require.Empty(t, p.Images)
	require.Contains(t, repo.rows, p.ID)
}

func TestPropertyServiceUpdatePartial(t *testing.T) {
	seed := seedProperty()
	repo := newFakePropertyRepo(seed)
	svc := NewPropertyService(repo, &fakeStore{})

	p, err := svc.Update(context.Background(), seed.ID, dtos.UpdatePropertyRequest{
		Price: utils.Ptr(130000.0),
	})

	require.NoError(t, err)
	require.Equal(t, 130000.0, p.Price)
	// untouched fields survive a sparse update
	require.Equal(t, "Sea View Villa", p.Name)
	require.Equal(t, "3BHK", p.BHKType)
}

func TestPropertyServiceUpdateUnknown(t *testing.T) {
	svc := NewPropertyService(newFakePropertyRepo(), &fakeStore{})

	_, err := svc.Update(context.Background(), uuid.New(), dtos.UpdatePropertyRequest{
		Price: utils.Ptr(1.0),
	})
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPropertyServiceDelete(t *testing.T) {
	seed := seedProperty()
	repo := newFakePropertyRepo(seed)
	svc := NewPropertyService(repo, &fakeStore{})

	require.NoError(t, svc.Delete(context.Background(), seed.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), seed.ID), utils.ErrNotFound)
}

func TestPropertyServiceAttachImages(t *testing.T) {
	seed := seedProperty("existing-url")
	repo := newFakePropertyRepo(seed)
	store := &fakeStore{}
	svc := NewPropertyService(repo, store)

	p, err := svc.AttachImages(context.Background(), seed.ID, []UploadInput{
		{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Filename: "back.jpg", ContentType: "image/jpeg", Data: []byte("b")},
	})

	require.NoError(t, err)
	require.Len(t, p.Images, 3)
	require.Equal(t, "existing-url", p.Images[0])
	require.Equal(t, 2, store.uploads)
	// every uploaded object lands under the listing's own folder
	for _, url := range p.Images[1:] {
		key, err := store.KeyFromPublicURL(storage.PropertyImagesBucket, url)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(key, seed.ID.String()+"/"))
	}
}

func TestPropertyServiceAttachImagesUnknownListing(t *testing.T) {
	store := &fakeStore{}
	svc := NewPropertyService(newFakePropertyRepo(), store)

	_, err := svc.AttachImages(context.Background(), uuid.New(), []UploadInput{
		{Filename: "front.jpg", ContentType: "image/jpeg"},
	})

	require.ErrorIs(t, err, utils.ErrNotFound)
	require.Zero(t, store.uploads)
}

func TestPropertyServiceAttachImagesUploadFailure(t *testing.T) {
	seed := seedProperty()
	repo := newFakePropertyRepo(seed)
	store := &fakeStore{uploadErr: errors.New("bucket unavailable")}
	svc := NewPropertyService(repo, store)

	_, err := svc.AttachImages(context.Background(), seed.ID, []UploadInput{
		{Filename: "front.jpg", ContentType: "image/jpeg"},
	})

	require.ErrorIs(t, err, utils.ErrUpload)
	require.Empty(t, repo.rows[seed.ID].Images)
}

func TestPropertyServiceDetachImage(t *testing.T) {
	attached := fakeURL(storage.PropertyImagesBucket, "abc/1-front.jpg")
	seed := seedProperty(attached, "other-url")
	repo := newFakePropertyRepo(seed)
	store := &fakeStore{}
	svc := NewPropertyService(repo, store)

	p, err := svc.DetachImage(context.Background(), seed.ID, attached)

	require.NoError(t, err)
	require.Equal(t, []string{"other-url"}, p.Images)
	// object is gone from the store as well
	require.Equal(t, []string{"abc/1-front.jpg"}, store.removed)
}

func TestPropertyServiceDetachImageNotAttached(t *testing.T) {
	seed := seedProperty("some-url")
	repo := newFakePropertyRepo(seed)
	store := &fakeStore{}
	svc := NewPropertyService(repo, store)

	_, err := svc.DetachImage(context.Background(), seed.ID, fakeURL(storage.PropertyImagesBucket, "never-attached.jpg"))

	require.ErrorIs(t, err, utils.ErrImageNotAttached)
	require.Empty(t, store.removed)
	require.Equal(t, []string{"some-url"}, repo.rows[seed.ID].Images)
}

func TestPropertyServiceDetachImageRemoveFailure(t *testing.T) {
	attached := fakeURL(storage.PropertyImagesBucket, "abc/1-front.jpg")
	seed := seedProperty(attached)
	repo := newFakePropertyRepo(seed)
	store := &fakeStore{removeErr: errors.New("object locked")}
	svc := NewPropertyService(repo, store)

	_, err := svc.DetachImage(context.Background(), seed.ID, attached)

	require.ErrorIs(t, err, utils.ErrRemoval)
	// a failed delete leaves the row untouched
	require.Equal(t, []string{attached}, repo.rows[seed.ID].Images)
}
