package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AUXLE/clavedeoroBackend/internal/dtos"
	"github.com/AUXLE/clavedeoroBackend/internal/models"
	"github.com/AUXLE/clavedeoroBackend/internal/repositories"
	"github.com/AUXLE/clavedeoroBackend/internal/storage"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// UploadInput is one multipart file as handed over by a controller, already
// size-checked.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

type PropertyService interface {
	List(ctx context.Context) ([]*models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Create(ctx context.Context, req dtos.CreatePropertyRequest, createdBy uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AttachImages(ctx context.Context, id uuid.UUID, files []UploadInput) (*models.Property, error)
	DetachImage(ctx context.Context, id uuid.UUID, url string) (*models.Property, error)
}

type propertyService struct {
	repo  repositories.PropertyRepository
	store storage.ObjectStore
}

func NewPropertyService(repo repositories.PropertyRepository, store storage.ObjectStore) PropertyService {
	return &propertyService{repo: repo, store: store}
}

func (s *propertyService) List(ctx context.Context) ([]*models.Property, error) {
	return s.repo.ListAll(ctx)
}

func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (s *propertyService) Create(ctx context.Context, req dtos.CreatePropertyRequest, createdBy uuid.UUID) (*models.Property, error) {
	p := &models.Property{
		ID:           uuid.New(),
		Name:         req.Name,
		Owner:        req.Owner,
		Price:        utils.Val(req.Price),
		Area:         utils.Val(req.Area),
		Description:  req.Description,
		ExactAddress: req.ExactAddress,
		BHKType:      req.BHKType,
		Amenities:    req.Amenities,
		Ratings:      req.Ratings,
		Reviews:      req.Reviews,
		Images:       []string{},
		Location:     req.Location,
		CreatedBy:    createdBy,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

func (s *propertyService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	err := s.repo.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		applyIfSet(&p.Name, req.Name)
		applyIfSet(&p.Owner, req.Owner)
		applyIfSet(&p.Price, req.Price)
		applyIfSet(&p.Area, req.Area)
		applyIfSet(&p.Description, req.Description)
		applyIfSet(&p.ExactAddress, req.ExactAddress)
		applyIfSet(&p.BHKType, req.BHKType)
		applyIfSet(&p.Amenities, req.Amenities)
		applyIfSet(&p.Ratings, req.Ratings)
		applyIfSet(&p.Reviews, req.Reviews)
		applyIfSet(&p.Location, req.Location)
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *propertyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return utils.ErrNotFound
		}
		return err
	}
	return nil
}

// AttachImages uploads every file under the listing's folder and appends the
// resulting URLs to the images sequence. The append goes through the
// optimistic-locking loop so concurrent attaches cannot drop each other's
// URLs. Objects uploaded before a failed row update are left for the
// nightly sweep to reclaim.
func (s *propertyService) AttachImages(ctx context.Context, id uuid.UUID, files []UploadInput) (*models.Property, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		_, url, err := s.store.Upload(ctx, storage.PropertyImagesBucket, id.String(), f.Filename, f.ContentType, f.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrUpload, err)
		}
		urls = append(urls, url)
	}

	err := s.repo.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		p.Images = append(p.Images, urls...)
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// DetachImage removes the backing object first and only then drops the URL
// from the row, so a failed delete leaves the sequence untouched.
func (s *propertyService) DetachImage(ctx context.Context, id uuid.UUID, url string) (*models.Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contains(p.Images, url) {
		return nil, utils.ErrImageNotAttached
	}

	key, err := s.store.KeyFromPublicURL(storage.PropertyImagesBucket, url)
	if err != nil {
		return nil, err
	}
	if err := s.store.Remove(ctx, storage.PropertyImagesBucket, key); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrRemoval, err)
	}

	err = s.repo.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		p.Images = remove(p.Images, url)
		return nil
	})
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func applyIfSet[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func remove(ss []string, s string) []string {
	out := make([]string, 0, len(ss))
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
