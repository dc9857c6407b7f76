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

type ReviewService interface {
	List(ctx context.Context) ([]*models.Review, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Create(ctx context.Context, req dtos.CreateReviewRequest, createdBy uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateReviewRequest, updatedBy uuid.UUID) (*models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadImage stores a single file and returns only its public URL; the
	// caller references it in a later create/update.
	UploadImage(ctx context.Context, file UploadInput) (string, error)
}

type reviewService struct {
	repo  repositories.ReviewRepository
	store storage.ObjectStore
}

func NewReviewService(repo repositories.ReviewRepository, store storage.ObjectStore) ReviewService {
	return &reviewService{repo: repo, store: store}
}

func (s *reviewService) List(ctx context.Context) ([]*models.Review, error) {
	return s.repo.ListAll(ctx)
}

func (s *reviewService) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, utils.ErrNotFound
	}
	return rev, nil
}

func (s *reviewService) Create(ctx context.Context, req dtos.CreateReviewRequest, createdBy uuid.UUID) (*models.Review, error) {
	rev := &models.Review{
		ID:           uuid.New(),
		CustomerName: req.CustomerName,
		Ratings:      utils.Val(req.Ratings),
		Review:       req.Review,
		ImageURL:     req.Image,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return s.Get(ctx, rev.ID)
}

func (s *reviewService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateReviewRequest, updatedBy uuid.UUID) (*models.Review, error) {
	err := s.repo.UpdateWithRetry(ctx, id, func(rev *models.Review) error {
		applyIfSet(&rev.CustomerName, req.CustomerName)
		applyIfSet(&rev.Ratings, req.Ratings)
		applyIfSet(&rev.Review, req.Review)
		applyIfSet(&rev.ImageURL, req.Image)
		rev.UpdatedBy = updatedBy
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

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return utils.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) UploadImage(ctx context.Context, file UploadInput) (string, error) {
	_, url, err := s.store.Upload(ctx, storage.ReviewImagesBucket, "", file.Filename, file.ContentType, file.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrUpload, err)
	}
	return url, nil
}
