package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

// SupabaseStore talks to the Supabase storage endpoint with the service
// key. Public URLs follow "<base>/object/public/<bucket>/<key>".
type SupabaseStore struct {
	client  *storage_go.Client
	baseURL string
}

func NewSupabaseStore(supabaseURL, serviceKey string) *SupabaseStore {
	base := strings.TrimRight(supabaseURL, "/") + "/storage/v1"
	return &SupabaseStore{
		client:  storage_go.NewClient(base, serviceKey, nil),
		baseURL: base,
	}
}

func (s *SupabaseStore) Upload(_ context.Context, bucket, folder, originalName, contentType string, data []byte) (string, string, error) {
	key := newObjectKey(folder, originalName, contentType)

	_, err := s.client.UploadFile(bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: utils.Ptr(contentType),
		Upsert:      utils.Ptr(false),
	})
	if err != nil {
		return "", "", fmt.Errorf("upload to %s/%s: %w", bucket, key, err)
	}

	return key, s.publicURL(bucket, key), nil
}

func (s *SupabaseStore) Remove(_ context.Context, bucket, key string) error {
	if _, err := s.client.RemoveFile(bucket, []string{key}); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *SupabaseStore) KeyFromPublicURL(bucket, publicURL string) (string, error) {
	prefix := s.publicURL(bucket, "")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", utils.ErrUnrecognizedReference
	}
	key := strings.TrimPrefix(publicURL, prefix)
	if key == "" {
		return "", utils.ErrUnrecognizedReference
	}
	return key, nil
}

// listPageSize bounds one ListFiles call; listing pages until a short batch
// so large buckets are walked completely.
const listPageSize = 100

func (s *SupabaseStore) ListObjects(_ context.Context, bucket, folder string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for offset := 0; ; offset += listPageSize {
		files, err := s.client.ListFiles(bucket, folder, storage_go.FileSearchOptions{
			Limit:  listPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", bucket, folder, err)
		}

		for _, f := range files {
			key := f.Name
			if folder != "" {
				key = strings.Trim(folder, "/") + "/" + key
			}
			// zero time when the store reports no parseable timestamp
			createdAt, _ := time.Parse(time.RFC3339, f.CreatedAt)
			out = append(out, ObjectInfo{Key: key, CreatedAt: createdAt})
		}

		if len(files) < listPageSize {
			return out, nil
		}
	}
}

func (s *SupabaseStore) publicURL(bucket, key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, bucket, key)
}
