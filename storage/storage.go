package storage

import "context"

// Store is the object-store surface the pipeline needs: enumerate the
// immediate child prefixes of a dataset root, enumerate object keys under a
// version prefix, and fetch one object to local disk.
type Store interface {
	ListCommonPrefixes(ctx context.Context, bucket, prefix, delimiter string) ([]string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
	Download(ctx context.Context, bucket, key, localPath string) error
}
