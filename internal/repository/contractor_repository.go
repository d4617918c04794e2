package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type ContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

const contractorSelect = `
	SELECT id, name, phone, email, registration_no, address, created_at
	FROM contractors
`

func (r *ContractorRepository) List(ctx context.Context) ([]model.Contractor, error) {
	var out []model.Contractor
	if err := r.db.WithContext(ctx).Raw(contractorSelect + " ORDER BY id").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ContractorRepository) Get(ctx context.Context, id int64) (*model.Contractor, error) {
	var found model.Contractor
	if err := r.db.WithContext(ctx).Raw(contractorSelect+" WHERE id = ? LIMIT 1", id).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *ContractorRepository) Create(ctx context.Context, c model.Contractor) (*model.Contractor, error) {
	var saved model.Contractor
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contractors (name, phone, email, registration_no, address)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, name, phone, email, registration_no, address, created_at
	`, c.Name, c.Phone, c.Email, c.RegistrationNo, c.Address).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ContractorRepository) Update(ctx context.Context, c model.Contractor) (*model.Contractor, error) {
	var saved model.Contractor
	err := r.db.WithContext(ctx).Raw(`
		UPDATE contractors
		SET name = ?, phone = ?, email = ?, registration_no = ?, address = ?
		WHERE id = ?
		RETURNING id, name, phone, email, registration_no, address, created_at
	`, c.Name, c.Phone, c.Email, c.RegistrationNo, c.Address, c.ID).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *ContractorRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contractors WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
