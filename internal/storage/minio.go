// Package storage holds the object store for citizen-visible project photos.
// The backend is any S3-compatible endpoint; deployments use MinIO.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wanjala/cdf-tracker/internal/config"
)

type ImageStore struct {
	client *minio.Client
	bucket string
}

func New(cfg config.StorageConfig) (*ImageStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}
	return &ImageStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the image bucket if it does not exist yet.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Upload stores image bytes under a fresh object key scoped to the project
// and returns the key. The caller supplies the content type; it is stored
// verbatim on the object.
func (s *ImageStore) Upload(ctx context.Context, data []byte, filename, contentType string, projectID int64) (string, error) {
	ext := "jpg"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		ext = strings.ToLower(filename[i+1:])
	}
	objectName := fmt.Sprintf("projects/%d/%s.%s", projectID, uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("object upload failed: %w", err)
	}
	return objectName, nil
}

// PresignedURL returns a time-limited GET URL for an object.
func (s *ImageStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign failed: %w", err)
	}
	return presigned.String(), nil
}
