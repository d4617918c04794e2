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

type ContractorService struct {
	contractors *repository.ContractorRepository
}

func NewContractorService(contractors *repository.ContractorRepository) *ContractorService {
	return &ContractorService{contractors: contractors}
}

type ContractorInput struct {
	Name           string
	Phone          *string
	Email          *string
	RegistrationNo *string
	Address        *string
}

func (s *ContractorService) List(ctx context.Context) ([]model.Contractor, error) {
	return s.contractors.List(ctx)
}

func (s *ContractorService) Get(ctx context.Context, id int64) (*model.Contractor, error) {
	found, err := s.contractors.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contractor %d", ErrNotFound, id)
		}
		return nil, err
	}
	return found, nil
}

func (s *ContractorService) Create(ctx context.Context, input ContractorInput) (*model.Contractor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.contractors.Create(ctx, model.Contractor{
		Name:           name,
		Phone:          input.Phone,
		Email:          input.Email,
		RegistrationNo: input.RegistrationNo,
		Address:        input.Address,
	})
}

func (s *ContractorService) Update(ctx context.Context, id int64, input ContractorInput) (*model.Contractor, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		existing.Name = name
	}
	if input.Phone != nil {
		existing.Phone = input.Phone
	}
	if input.Email != nil {
		existing.Email = input.Email
	}
	if input.RegistrationNo != nil {
		existing.RegistrationNo = input.RegistrationNo
	}
	if input.Address != nil {
		existing.Address = input.Address
	}

	saved, err := s.contractors.Update(ctx, *existing)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contractor %d", ErrNotFound, id)
		}
		return nil, err
	}
	return saved, nil
}

func (s *ContractorService) Delete(ctx context.Context, id int64) error {
	if err := s.contractors.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: contractor %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
