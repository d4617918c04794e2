package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

type FeedbackService struct {
	feedback *repository.FeedbackRepository
	projects *repository.ProjectRepository
}

func NewFeedbackService(feedback *repository.FeedbackRepository, projects *repository.ProjectRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, projects: projects}
}

type SubmitFeedbackInput struct {
	ProjectID int64
	Name      *string
	Email     *string
	Message   string
	IPAddress string
}

func (s *FeedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*model.Feedback, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(message) > 2000 {
		return nil, fmt.Errorf("%w: message too long", ErrInvalidInput)
	}

	if _, err := s.projects.Get(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, input.ProjectID)
		}
		return nil, err
	}

	entry := model.Feedback{
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Email:     input.Email,
		Message:   message,
		Status:    model.FeedbackPending,
	}
	if input.IPAddress != "" {
		entry.IPAddress = &input.IPAddress
	}
	return s.feedback.Create(ctx, entry)
}

func (s *FeedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	return s.feedback.List(ctx)
}

// Moderate transitions a feedback entry to approved or rejected. Returning an
// entry to pending is not a supported transition.
func (s *FeedbackService) Moderate(ctx context.Context, id int64, status string) error {
	target := model.FeedbackStatus(status)
	if target != model.FeedbackApproved && target != model.FeedbackRejected {
		return fmt.Errorf("%w: status must be 'approved' or 'rejected'", ErrInvalidInput)
	}
	if _, err := s.feedback.Get(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: feedback %d", ErrNotFound, id)
		}
		return err
	}
	return s.feedback.UpdateStatus(ctx, id, target)
}
