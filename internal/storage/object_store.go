package storage

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buckets the backend writes to. Keys are "<optional-folder>/<uuid>.<ext>".
const (
	PropertyImagesBucket = "property-images"
	ReviewImagesBucket   = "review-images"
)

// MaxFileSize caps a single uploaded file at 10 MiB; controllers reject
// oversized files before any upload is attempted.
const MaxFileSize = 10 << 20

// ObjectInfo is one stored object as seen by a listing. A zero CreatedAt
// means the store reported no usable timestamp.
type ObjectInfo struct {
	Key       string
	CreatedAt time.Time
}

// ObjectStore is the adapter over the external object store. The store owns
// the bytes; database rows only hold the returned public URL.
type ObjectStore interface {
	// Upload writes data under a freshly generated key and returns the key
	// and its public URL. Keys are never overwritten.
	Upload(ctx context.Context, bucket, folder, originalName, contentType string, data []byte) (key, publicURL string, err error)

	// Remove deletes one object by key.
	Remove(ctx context.Context, bucket, key string) error

	// KeyFromPublicURL derives the object key from a stored public URL,
	// refusing (ErrUnrecognizedReference) URLs that do not match the
	// expected template.
	KeyFromPublicURL(bucket, publicURL string) (string, error)

	// ListObjects returns the objects under folder with their creation
	// times; used by the sweep job.
	ListObjects(ctx context.Context, bucket, folder string) ([]ObjectInfo, error)
}

// preferred extensions for the image types the site actually serves;
// mime.ExtensionsByType orders alternatives alphabetically (".jpe" before
// ".jpg"), so the common ones are pinned.
var preferredExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// extensionFor picks the object-key extension: MIME type first, then the
// original filename's extension, then "bin".
func extensionFor(contentType, originalName string) string {
	ct := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if ext, ok := preferredExt[ct]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(ct); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	if ext := strings.TrimPrefix(filepath.Ext(originalName), "."); ext != "" {
		return ext
	}
	return "bin"
}

// newObjectKey builds "<folder>/<uuid>.<ext>", or "<uuid>.<ext>" when no
// folder prefix is wanted.
func newObjectKey(folder, originalName, contentType string) string {
	name := uuid.NewString() + "." + extensionFor(contentType, originalName)
	if folder == "" {
		return name
	}
	return strings.Trim(folder, "/") + "/" + name
}
