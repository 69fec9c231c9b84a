package repositories

import (
	"context"
	"time"
)

// ObjectStorage is the boundary to the blob store. Grants are presigned
// URLs scoped to exactly one operation on one key.
type ObjectStorage interface {
	// PresignUpload issues a write grant bound to the key and the
	// declared content type.
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// PresignDownload issues a read grant for the key. The key is not
	// checked for existence; the storage service fails on first use.
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)

	// DeleteObjects removes a set of keys. Deleting an absent key is
	// not an error, so the call is safe to retry.
	DeleteObjects(ctx context.Context, keys []string) error
}
