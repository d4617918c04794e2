package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
	"github.com/wanjala/cdf-tracker/internal/storage"
)

const (
	presignedExpiry = time.Hour
	maxImageBytes   = 10 << 20
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ImageService struct {
	images   *repository.ImageRepository
	projects *repository.ProjectRepository
	store    *storage.ImageStore
}

func NewImageService(images *repository.ImageRepository, projects *repository.ProjectRepository, store *storage.ImageStore) *ImageService {
	return &ImageService{images: images, projects: projects, store: store}
}

type UploadImageInput struct {
	ProjectID   int64
	Filename    string
	ContentType string
	Data        []byte
	Caption     *string
	UploadedBy  string
}

func (s *ImageService) Upload(ctx context.Context, input UploadImageInput) (*model.ProjectImage, error) {
	if _, ok := allowedImageTypes[input.ContentType]; !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, input.ContentType)
	}
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	if len(input.Data) > maxImageBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, maxImageBytes)
	}

	if _, err := s.projects.Get(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, input.ProjectID)
		}
		return nil, err
	}

	objectName, err := s.store.Upload(ctx, input.Data, input.Filename, input.ContentType, input.ProjectID)
	if err != nil {
		return nil, err
	}

	uploadedBy := input.UploadedBy
	if strings.TrimSpace(uploadedBy) == "" {
		uploadedBy = "admin"
	}
	return s.images.Create(ctx, model.ProjectImage{
		ProjectID:  input.ProjectID,
		Filename:   input.Filename,
		ObjectName: objectName,
		Caption:    input.Caption,
		UploadedBy: uploadedBy,
	})
}

// ListPublic returns a project's images with short-lived presigned URLs.
func (s *ImageService) ListPublic(ctx context.Context, projectID int64) ([]model.PublicImage, error) {
	images, err := s.images.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	public := make([]model.PublicImage, 0, len(images))
	for _, img := range images {
		url, err := s.store.PresignedURL(ctx, img.ObjectName, presignedExpiry)
		if err != nil {
			return nil, err
		}
		caption := ""
		if img.Caption != nil {
			caption = *img.Caption
		}
		public = append(public, model.PublicImage{
			ID:         img.ID,
			Filename:   img.Filename,
			Caption:    caption,
			UploadedBy: img.UploadedBy,
			UploadedAt: img.UploadedAt,
			URL:        url,
			ObjectName: img.ObjectName,
		})
	}
	return public, nil
}

// ViewURL resolves one image to a presigned URL, checking it belongs to the
// given project.
func (s *ImageService) ViewURL(ctx context.Context, projectID, imageID int64) (string, error) {
	img, err := s.images.Get(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: image %d", ErrNotFound, imageID)
		}
		return "", err
	}
	if img.ProjectID != projectID {
		return "", fmt.Errorf("%w: image %d", ErrNotFound, imageID)
	}
	return s.store.PresignedURL(ctx, img.ObjectName, presignedExpiry)
}
