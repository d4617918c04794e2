package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

const imageSelect = `
	SELECT id, project_id, filename, object_name, caption, uploaded_by, uploaded_at
	FROM project_images
`

func (r *ImageRepository) ListByProject(ctx context.Context, projectID int64) ([]model.ProjectImage, error) {
	var out []model.ProjectImage
	err := r.db.WithContext(ctx).
		Raw(imageSelect+" WHERE project_id = ? ORDER BY uploaded_at", projectID).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ImageRepository) Get(ctx context.Context, id int64) (*model.ProjectImage, error) {
	var found model.ProjectImage
	if err := r.db.WithContext(ctx).Raw(imageSelect+" WHERE id = ? LIMIT 1", id).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *ImageRepository) Create(ctx context.Context, img model.ProjectImage) (*model.ProjectImage, error) {
	var saved model.ProjectImage
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO project_images (project_id, filename, object_name, caption, uploaded_by)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, project_id, filename, object_name, caption, uploaded_by, uploaded_at
	`, img.ProjectID, img.Filename, img.ObjectName, img.Caption, img.UploadedBy).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
