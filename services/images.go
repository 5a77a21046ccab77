package services

import "context"

// ImageStore abstracts the object storage backend (S3 in production).
// Upload returns the public URL and the storage key of the new object.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType, prefix string) (url string, key string, err error)
	Delete(ctx context.Context, key string) error
}
