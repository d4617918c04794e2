package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type AwardRepository struct {
	db *gorm.DB
}

func NewAwardRepository(db *gorm.DB) *AwardRepository {
	return &AwardRepository{db: db}
}

const awardSelect = `
	SELECT
		id, project_id, contractor_id, tender_id, procurement_method,
		contract_value, award_date, contractor_share_hint,
		performance_flag, performance_flag_reason, created_at
	FROM procurement_awards
`

func (r *AwardRepository) List(ctx context.Context) ([]model.ProcurementAward, error) {
	var out []model.ProcurementAward
	if err := r.db.WithContext(ctx).Raw(awardSelect + " ORDER BY id").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AwardRepository) Get(ctx context.Context, id int64) (*model.ProcurementAward, error) {
	var found model.ProcurementAward
	if err := r.db.WithContext(ctx).Raw(awardSelect+" WHERE id = ? LIMIT 1", id).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *AwardRepository) GetByProject(ctx context.Context, projectID int64) (*model.ProcurementAward, error) {
	var found model.ProcurementAward
	if err := r.db.WithContext(ctx).Raw(awardSelect+" WHERE project_id = ? LIMIT 1", projectID).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *AwardRepository) Create(ctx context.Context, a model.ProcurementAward) (*model.ProcurementAward, error) {
	var saved model.ProcurementAward
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO procurement_awards (
			project_id,
			contractor_id,
			tender_id,
			procurement_method,
			contract_value,
			award_date,
			contractor_share_hint,
			performance_flag,
			performance_flag_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING
			id, project_id, contractor_id, tender_id, procurement_method,
			contract_value, award_date, contractor_share_hint,
			performance_flag, performance_flag_reason, created_at
	`,
		a.ProjectID,
		a.ContractorID,
		a.TenderID,
		a.ProcurementMethod,
		a.ContractValue,
		a.AwardDate,
		a.ContractorShareHint,
		a.PerformanceFlag,
		a.PerformanceFlagReason,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *AwardRepository) Update(ctx context.Context, a model.ProcurementAward) (*model.ProcurementAward, error) {
	var saved model.ProcurementAward
	err := r.db.WithContext(ctx).Raw(`
		UPDATE procurement_awards
		SET
			contractor_id = ?,
			tender_id = ?,
			procurement_method = ?,
			contract_value = ?,
			award_date = ?,
			contractor_share_hint = ?,
			performance_flag = ?,
			performance_flag_reason = ?
		WHERE id = ?
		RETURNING
			id, project_id, contractor_id, tender_id, procurement_method,
			contract_value, award_date, contractor_share_hint,
			performance_flag, performance_flag_reason, created_at
	`,
		a.ContractorID,
		a.TenderID,
		a.ProcurementMethod,
		a.ContractValue,
		a.AwardDate,
		a.ContractorShareHint,
		a.PerformanceFlag,
		a.PerformanceFlagReason,
		a.ID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *AwardRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM procurement_awards WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
