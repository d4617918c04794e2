package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

const feedbackSelect = `
	SELECT id, project_id, name, email, message, ip_address, status, created_at
	FROM feedback
`

func (r *FeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	var out []model.Feedback
	if err := r.db.WithContext(ctx).Raw(feedbackSelect + " ORDER BY created_at DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FeedbackRepository) Get(ctx context.Context, id int64) (*model.Feedback, error) {
	var found model.Feedback
	if err := r.db.WithContext(ctx).Raw(feedbackSelect+" WHERE id = ? LIMIT 1", id).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *FeedbackRepository) Create(ctx context.Context, f model.Feedback) (*model.Feedback, error) {
	var saved model.Feedback
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO feedback (project_id, name, email, message, ip_address, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, project_id, name, email, message, ip_address, status, created_at
	`, f.ProjectID, f.Name, f.Email, f.Message, f.IPAddress, f.Status).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id int64, status model.FeedbackStatus) error {
	result := r.db.WithContext(ctx).Exec(`UPDATE feedback SET status = ? WHERE id = ?`, status, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
