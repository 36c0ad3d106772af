// Package storage provides access to the raw-layer object store.
package storage

import "context"

// UploadOptions carries per-object settings for UploadFile.
type UploadOptions struct {
	// ContentEncoding, when non-empty, is stored on the object (e.g. "gzip").
	ContentEncoding string
	// Metadata is attached to the object as user metadata.
	Metadata map[string]string
}

// ObjectStore captures the minimal object-store operations the pipeline
// needs. The production implementation is S3; tests substitute fakes.
type ObjectStore interface {
	// CheckBucket verifies the destination bucket exists and is accessible.
	CheckBucket(ctx context.Context) error

	// Exists reports whether an object is already present at key.
	Exists(ctx context.Context, key string) (bool, error)

	// UploadFile stores the local file at key.
	UploadFile(ctx context.Context, key, localPath string, opts UploadOptions) error

	// PutJSON stores body at key with a JSON content type.
	PutJSON(ctx context.Context, key string, body []byte) error
}
