package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type ConstituencyRepository struct {
	db *gorm.DB
}

func NewConstituencyRepository(db *gorm.DB) *ConstituencyRepository {
	return &ConstituencyRepository{db: db}
}

const constituencySelect = `
	SELECT code, name, county, mp_name, population, pas_score
	FROM constituencies
`

func (r *ConstituencyRepository) List(ctx context.Context, offset, limit int) ([]model.Constituency, error) {
	var out []model.Constituency
	err := r.db.WithContext(ctx).
		Raw(constituencySelect+" ORDER BY code LIMIT ? OFFSET ?", limit, offset).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConstituencyRepository) Get(ctx context.Context, code string) (*model.Constituency, error) {
	var found model.Constituency
	err := r.db.WithContext(ctx).Raw(constituencySelect+" WHERE code = ? LIMIT 1", code).Scan(&found).Error
	if err != nil {
		return nil, err
	}
	if found.Code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *ConstituencyRepository) Search(ctx context.Context, name, county string) ([]model.Constituency, error) {
	query := constituencySelect + " WHERE 1=1"
	var args []interface{}
	if name != "" {
		query += " AND name ILIKE ?"
		args = append(args, "%"+name+"%")
	}
	if county != "" {
		query += " AND county ILIKE ?"
		args = append(args, "%"+county+"%")
	}
	query += " ORDER BY code"

	var out []model.Constituency
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConstituencyRepository) Create(ctx context.Context, c model.Constituency) (*model.Constituency, error) {
	var saved model.Constituency
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO constituencies (code, name, county, mp_name, population, pas_score)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING code, name, county, mp_name, population, pas_score
	`, c.Code, c.Name, c.County, c.MPName, c.Population, c.PASScore).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ConstituencyRepository) Update(ctx context.Context, c model.Constituency) (*model.Constituency, error) {
	var saved model.Constituency
	err := r.db.WithContext(ctx).Raw(`
		UPDATE constituencies
		SET name = ?, county = ?, mp_name = ?, population = ?, pas_score = ?
		WHERE code = ?
		RETURNING code, name, county, mp_name, population, pas_score
	`, c.Name, c.County, c.MPName, c.Population, c.PASScore, c.Code).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.Code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *ConstituencyRepository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM constituencies WHERE code = ?`, code)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePASScore persists the computed accountability score so listing pages
// can show it without recomputing.
func (r *ConstituencyRepository) UpdatePASScore(ctx context.Context, code string, score float64) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE constituencies SET pas_score = ? WHERE code = ?`, score, code).Error
}
