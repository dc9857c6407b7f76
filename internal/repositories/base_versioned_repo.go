package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// Versioned is implemented by every row type that carries a row_version
// column. The comparable constraint lets the retry loop detect a nil result
// with ==.
type Versioned interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

// UpdateIfVersionFunc performs a conditional UPDATE that only matches when
// row_version still equals expectedVersion.
type UpdateIfVersionFunc[T Versioned] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

const casMaxRetries = 3

// VersionedRepo holds the DB handle, a SELECT-by-ID statement and a scanner
// for one row type. Concrete repositories embed it to get GetByID and the
// optimistic-locking update loop.
type VersionedRepo[T Versioned] struct {
	db         DB
	selectByID string
	scan       func(row pgx.Row) (T, error)
}

func NewVersionedRepo[T Versioned](
	db DB,
	selectByID string,
	scan func(pgx.Row) (T, error),
) *VersionedRepo[T] {
	return &VersionedRepo[T]{db: db, selectByID: selectByID, scan: scan}
}

// GetByID returns the zero value of T (nil for pointer types) with a nil
// error when no row matches.
func (b *VersionedRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	row := b.db.QueryRow(ctx, b.selectByID, id)
	return b.scan(row)
}

// UpdateWithRetry runs a read-mutate-update loop with optimistic locking:
// load the row, apply mutate, write back only if row_version is unchanged,
// and start over when a concurrent writer got there first.
func (b *VersionedRepo[T]) UpdateWithRetry(
	ctx context.Context,
	id string,
	mutate func(T) error,
	updateIfVersion UpdateIfVersionFunc[T],
) error {
	for attempt := 0; attempt < casMaxRetries; attempt++ {
		current, err := b.GetByID(ctx, id)
		if err != nil {
			return err
		}

		var zero T
		if current == zero {
			return pgx.ErrNoRows
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}
		// someone else updated first – retry
	}
	return fmt.Errorf("%w: too much contention updating %q", utils.ErrRowVersionConflict, id)
}
