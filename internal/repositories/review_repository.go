package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AUXLE/clavedeoroBackend/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, rev *models.Review) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListAll(ctx context.Context) ([]*models.Review, error)

	UpdateIfVersion(ctx context.Context, rev *models.Review, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Review) error) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListImageURLs(ctx context.Context) ([]string, error)
}

type reviewRepo struct {
	*VersionedRepo[*models.Review]
	db DB
}

func NewReviewRepository(db DB) ReviewRepository {
	r := &reviewRepo{db: db}
	selectStmt := baseSelectReview() + " WHERE id=$1"
	r.VersionedRepo = NewVersionedRepo(db, selectStmt, scanReview)
	return r
}

func (r *reviewRepo) Create(ctx context.Context, rev *models.Review) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO reviews (
            id, customer_name, ratings, review, image_url,
            created_by, updated_by, created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `,
		rev.ID,
		rev.CustomerName,
		rev.Ratings,
		rev.Review,
		rev.ImageURL,
		rev.CreatedBy,
		rev.UpdatedBy,
	)
	return err
}

func (r *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return r.VersionedRepo.GetByID(ctx, id.String())
}

func (r *reviewRepo) ListAll(ctx context.Context) ([]*models.Review, error) {
	rows, err := r.db.Query(ctx, baseSelectReview()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *reviewRepo) UpdateIfVersion(ctx context.Context, rev *models.Review, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE reviews SET
            customer_name=$1, ratings=$2, review=$3, image_url=$4,
            updated_by=$5, updated_at=NOW(), row_version=row_version+1
        WHERE id=$6 AND row_version=$7
    `,
		rev.CustomerName, rev.Ratings, rev.Review, rev.ImageURL,
		rev.UpdatedBy, rev.ID, expected,
	)
}

func (r *reviewRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Review) error) error {
	return r.VersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepo) ListImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT image_url FROM reviews WHERE image_url <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func baseSelectReview() string {
	return `
        SELECT
            id, customer_name, ratings, review, image_url,
            created_by, updated_by, created_at, updated_at, row_version
        FROM reviews
    `
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var rev models.Review
	err := row.Scan(
		&rev.ID,
		&rev.CustomerName,
		&rev.Ratings,
		&rev.Review,
		&rev.ImageURL,
		&rev.CreatedBy,
		&rev.UpdatedBy,
		&rev.CreatedAt,
		&rev.UpdatedAt,
		&rev.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}
