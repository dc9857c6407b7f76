package services

import (
	"context"
	"strings"
	"time"

	"github.com/AUXLE/clavedeoroBackend/internal/repositories"
	"github.com/AUXLE/clavedeoroBackend/internal/storage"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// sweepMinAge protects in-flight attaches: an object uploaded before its row
// update lands looks unreferenced until the write commits, so only objects
// comfortably older than any request lifetime are eligible for removal.
const sweepMinAge = 24 * time.Hour

// SweepService reclaims orphaned objects: uploads whose row update never
// landed, and images of rows that were deleted afterwards. The database is
// the source of truth; anything old and unreferenced in a bucket goes.
type SweepService interface {
	CleanupDaily(ctx context.Context) error
}

type sweepService struct {
	properties repositories.PropertyRepository
	reviews    repositories.ReviewRepository
	store      storage.ObjectStore
}

func NewSweepService(
	properties repositories.PropertyRepository,
	reviews repositories.ReviewRepository,
	store storage.ObjectStore,
) SweepService {
	return &sweepService{properties: properties, reviews: reviews, store: store}
}

func (s *sweepService) CleanupDaily(ctx context.Context) error {
	if err := s.sweepBucket(ctx, storage.PropertyImagesBucket, s.properties.ListImageURLs); err != nil {
		return err
	}
	return s.sweepBucket(ctx, storage.ReviewImagesBucket, s.reviews.ListImageURLs)
}

func (s *sweepService) sweepBucket(ctx context.Context, bucket string, listURLs func(context.Context) ([]string, error)) error {
	objects, err := s.listRecursive(ctx, bucket)
	if err != nil {
		return err
	}

	// read references after the listing so a row committed mid-sweep is seen
	referencedURLs, err := listURLs(ctx)
	if err != nil {
		return err
	}
	referenced := make(map[string]struct{}, len(referencedURLs))
	for _, url := range referencedURLs {
		key, err := s.store.KeyFromPublicURL(bucket, url)
		if err != nil {
			// URL written by something else; leave whatever it points at alone
			continue
		}
		referenced[key] = struct{}{}
	}

	cutoff := time.Now().Add(-sweepMinAge)
	removed, spared := 0, 0
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.CreatedAt.IsZero() || obj.CreatedAt.After(cutoff) {
			spared++
			continue
		}
		if err := s.store.Remove(ctx, bucket, obj.Key); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to remove orphaned object %s/%s", bucket, obj.Key)
			continue
		}
		removed++
	}

	utils.Logger.Infof("Sweep of %s: %d objects, %d referenced, %d removed, %d too recent",
		bucket, len(objects), len(referenced), removed, spared)
	return nil
}

// listRecursive walks one folder level deep, which covers both key layouts
// in use: "<uuid>.<ext>" and "<property-id>/<uuid>.<ext>".
func (s *sweepService) listRecursive(ctx context.Context, bucket string) ([]storage.ObjectInfo, error) {
	top, err := s.store.ListObjects(ctx, bucket, "")
	if err != nil {
		return nil, err
	}

	var objects []storage.ObjectInfo
	for _, entry := range top {
		if strings.Contains(entry.Key, ".") {
			objects = append(objects, entry)
			continue
		}
		nested, err := s.store.ListObjects(ctx, bucket, entry.Key)
		if err != nil {
			return nil, err
		}
		objects = append(objects, nested...)
	}
	return objects, nil
}
