package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/cache"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

type AwardService struct {
	awards      *repository.AwardRepository
	projects    *repository.ProjectRepository
	contractors *repository.ContractorRepository
	cache       *cache.Cache
}

func NewAwardService(
	awards *repository.AwardRepository,
	projects *repository.ProjectRepository,
	contractors *repository.ContractorRepository,
	analyticsCache *cache.Cache,
) *AwardService {
	return &AwardService{
		awards:      awards,
		projects:    projects,
		contractors: contractors,
		cache:       analyticsCache,
	}
}

type AwardInput struct {
	ProjectID             int64
	ContractorID          int64
	TenderID              *string
	ProcurementMethod     *string
	ContractValue         *float64
	AwardDate             *time.Time
	ContractorShareHint   *float64
	PerformanceFlag       *bool
	PerformanceFlagReason *string
}

func (s *AwardService) List(ctx context.Context) ([]model.ProcurementAward, error) {
	return s.awards.List(ctx)
}

func (s *AwardService) Get(ctx context.Context, id int64) (*model.ProcurementAward, error) {
	award, err := s.awards.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: award %d", ErrNotFound, id)
		}
		return nil, err
	}
	return award, nil
}

func (s *AwardService) Create(ctx context.Context, input AwardInput) (*model.ProcurementAward, error) {
	if input.ProjectID == 0 || input.ContractorID == 0 {
		return nil, fmt.Errorf("%w: project_id and contractor_id are required", ErrInvalidInput)
	}
	if input.ContractValue != nil && *input.ContractValue < 0 {
		return nil, fmt.Errorf("%w: contract_value must not be negative", ErrInvalidInput)
	}

	if _, err := s.projects.Get(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %d", ErrNotFound, input.ProjectID)
		}
		return nil, err
	}
	if _, err := s.contractors.Get(ctx, input.ContractorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contractor %d", ErrNotFound, input.ContractorID)
		}
		return nil, err
	}

	// One award per project.
	if _, err := s.awards.GetByProject(ctx, input.ProjectID); err == nil {
		return nil, fmt.Errorf("%w: project %d already has an award", ErrConflict, input.ProjectID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	flag := false
	if input.PerformanceFlag != nil {
		flag = *input.PerformanceFlag
	}

	saved, err := s.awards.Create(ctx, model.ProcurementAward{
		ProjectID:             input.ProjectID,
		ContractorID:          input.ContractorID,
		TenderID:              input.TenderID,
		ProcurementMethod:     input.ProcurementMethod,
		ContractValue:         input.ContractValue,
		AwardDate:             input.AwardDate,
		ContractorShareHint:   input.ContractorShareHint,
		PerformanceFlag:       flag,
		PerformanceFlagReason: input.PerformanceFlagReason,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, analyticsOverviewKey, analyticsLeaderboardKey)
	return saved, nil
}

func (s *AwardService) Update(ctx context.Context, id int64, input AwardInput) (*model.ProcurementAward, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ContractorID != 0 {
		if _, err := s.contractors.Get(ctx, input.ContractorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: contractor %d", ErrNotFound, input.ContractorID)
			}
			return nil, err
		}
		existing.ContractorID = input.ContractorID
	}
	if input.TenderID != nil {
		existing.TenderID = input.TenderID
	}
	if input.ProcurementMethod != nil {
		existing.ProcurementMethod = input.ProcurementMethod
	}
	if input.ContractValue != nil {
		if *input.ContractValue < 0 {
			return nil, fmt.Errorf("%w: contract_value must not be negative", ErrInvalidInput)
		}
		existing.ContractValue = input.ContractValue
	}
	if input.AwardDate != nil {
		existing.AwardDate = input.AwardDate
	}
	if input.ContractorShareHint != nil {
		existing.ContractorShareHint = input.ContractorShareHint
	}
	if input.PerformanceFlag != nil {
		existing.PerformanceFlag = *input.PerformanceFlag
	}
	if input.PerformanceFlagReason != nil {
		existing.PerformanceFlagReason = input.PerformanceFlagReason
	}

	saved, err := s.awards.Update(ctx, *existing)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: award %d", ErrNotFound, id)
		}
		return nil, err
	}
	s.cache.Invalidate(ctx, analyticsOverviewKey, analyticsLeaderboardKey)
	return saved, nil
}

func (s *AwardService) Delete(ctx context.Context, id int64) error {
	if err := s.awards.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: award %d", ErrNotFound, id)
		}
		return err
	}
	s.cache.Invalidate(ctx, analyticsOverviewKey, analyticsLeaderboardKey)
	return nil
}
