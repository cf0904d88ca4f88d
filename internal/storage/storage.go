// Package storage persists trade screenshots in a Google Cloud Storage
// bucket. When no bucket is configured the application keeps images
// inline in the database instead, so everything here is optional
// infrastructure behind the ImageStore interface.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
)

// ImageStore stores and removes screenshot objects.
type ImageStore interface {
	Upload(ctx context.Context, objectName, mimeType string, data []byte) (string, error)
	Delete(ctx context.Context, uri string) error
}

// GCSStore is an ImageStore backed by a Google Cloud Storage bucket.
// It assumes Application Default Credentials are configured.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates a store writing into the given bucket.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Upload writes the image bytes under the object name and returns the
// gs:// URI of the stored object.
func (s *GCSStore) Upload(ctx context.Context, objectName, mimeType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = mimeType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %q: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload %q: %w", objectName, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// Delete removes the object referenced by a gs:// URI. Deleting an
// object that is already gone is not an error.
func (s *GCSStore) Delete(ctx context.Context, uri string) error {
	bucket, object, err := parseURI(uri)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := s.client.Bucket(bucket).Object(object).Delete(ctx); err != nil && err != gcs.ErrObjectNotExist {
		return fmt.Errorf("delete object %q: %w", uri, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func parseURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}
