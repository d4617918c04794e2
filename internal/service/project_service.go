package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/cache"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

type ProjectService struct {
	projects       *repository.ProjectRepository
	constituencies *repository.ConstituencyRepository
	cache          *cache.Cache
}

func NewProjectService(
	projects *repository.ProjectRepository,
	constituencies *repository.ConstituencyRepository,
	analyticsCache *cache.Cache,
) *ProjectService {
	return &ProjectService{
		projects:       projects,
		constituencies: constituencies,
		cache:          analyticsCache,
	}
}

type ProjectInput struct {
	Title            string
	Description      *string
	Category         string
	Status           string
	Budget           float64
	Spent            *float64
	Progress         *float64
	ConstituencyCode string
	StartDate        *time.Time
	CompletionDate   *time.Time
	IsMock           *bool
	SourceName       *string
	SourceURL        *string
	SourceDocRef     *string
}

type ListProjectsInput struct {
	ConstituencyCode string
	Category         string
	Status           string
	Sort             string
	Offset           int
	Limit            int
}

func (s *ProjectService) List(ctx context.Context, input ListProjectsInput) ([]model.ProjectDetail, error) {
	if input.Category != "" && !model.ValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if input.Status != "" && !model.ValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	return s.projects.List(ctx, repository.ProjectFilter{
		ConstituencyCode: input.ConstituencyCode,
		Category:         input.Category,
		Status:           input.Status,
		Sort:             input.Sort,
		Offset:           input.Offset,
		Limit:            input.Limit,
	})
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.ProjectDetail, error) {
	detail, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return nil, err
	}
	return detail, nil
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	project, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	saved, err := s.projects.Create(ctx, *project)
	if err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return saved, nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, input ProjectInput) (*model.Project, error) {
	project, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	project.ID = id

	saved, err := s.projects.Update(ctx, *project)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return saved, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: project %d", ErrNotFound, id)
		}
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

func (s *ProjectService) validate(ctx context.Context, input ProjectInput) (*model.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !model.ValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	status := input.Status
	if status == "" {
		status = string(model.StatusPlanned)
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if input.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", ErrInvalidInput)
	}
	if input.Spent != nil && *input.Spent < 0 {
		return nil, fmt.Errorf("%w: spent must not be negative", ErrInvalidInput)
	}
	if input.Progress != nil && (*input.Progress < 0 || *input.Progress > 100) {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
	}

	if _, err := s.constituencies.Get(ctx, input.ConstituencyCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: constituency %q", ErrNotFound, input.ConstituencyCode)
		}
		return nil, err
	}

	isMock := true
	if input.IsMock != nil {
		isMock = *input.IsMock
	}

	return &model.Project{
		Title:            title,
		Description:      input.Description,
		Category:         model.ProjectCategory(input.Category),
		Status:           model.ProjectStatus(status),
		Budget:           input.Budget,
		Spent:            input.Spent,
		Progress:         input.Progress,
		ConstituencyCode: input.ConstituencyCode,
		StartDate:        input.StartDate,
		CompletionDate:   input.CompletionDate,
		IsMock:           isMock,
		SourceName:       input.SourceName,
		SourceURL:        input.SourceURL,
		SourceDocRef:     input.SourceDocRef,
	}, nil
}

func (s *ProjectService) invalidateAnalytics(ctx context.Context) {
	s.cache.Invalidate(ctx, analyticsOverviewKey, analyticsLeaderboardKey)
}
