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

type ConstituencyService struct {
	constituencies *repository.ConstituencyRepository
}

func NewConstituencyService(constituencies *repository.ConstituencyRepository) *ConstituencyService {
	return &ConstituencyService{constituencies: constituencies}
}

func (s *ConstituencyService) List(ctx context.Context, offset, limit int) ([]model.Constituency, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.constituencies.List(ctx, offset, limit)
}

func (s *ConstituencyService) Get(ctx context.Context, code string) (*model.Constituency, error) {
	found, err := s.constituencies.Get(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: constituency %q", ErrNotFound, code)
		}
		return nil, err
	}
	return found, nil
}

func (s *ConstituencyService) Search(ctx context.Context, name, county string) ([]model.Constituency, error) {
	return s.constituencies.Search(ctx, strings.TrimSpace(name), strings.TrimSpace(county))
}

func (s *ConstituencyService) Create(ctx context.Context, c model.Constituency) (*model.Constituency, error) {
	if err := validateConstituency(c); err != nil {
		return nil, err
	}
	if _, err := s.constituencies.Get(ctx, c.Code); err == nil {
		return nil, fmt.Errorf("%w: constituency %q already exists", ErrConflict, c.Code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.constituencies.Create(ctx, c)
}

func (s *ConstituencyService) Update(ctx context.Context, c model.Constituency) (*model.Constituency, error) {
	if err := validateConstituency(c); err != nil {
		return nil, err
	}
	saved, err := s.constituencies.Update(ctx, c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: constituency %q", ErrNotFound, c.Code)
		}
		return nil, err
	}
	return saved, nil
}

func (s *ConstituencyService) Delete(ctx context.Context, code string) error {
	if err := s.constituencies.Delete(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: constituency %q", ErrNotFound, code)
		}
		return err
	}
	return nil
}

func validateConstituency(c model.Constituency) error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.County) == "" {
		return fmt.Errorf("%w: county is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.MPName) == "" {
		return fmt.Errorf("%w: mp_name is required", ErrInvalidInput)
	}
	return nil
}
