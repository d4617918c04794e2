package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectFilter narrows List results. Zero values mean "no filter".
type ProjectFilter struct {
	ConstituencyCode string
	Category         string
	Status           string
	Sort             string // id_asc, id_desc, title_asc, title_desc, last_updated_asc, last_updated_desc
	Offset           int
	Limit            int
}

const projectDetailSelect = `
	SELECT
		p.id,
		p.title,
		p.description,
		p.category,
		p.status,
		p.budget,
		p.spent,
		p.progress,
		p.constituency_code,
		p.start_date,
		p.completion_date,
		p.is_mock,
		p.source_name,
		p.source_url,
		p.source_doc_ref,
		p.last_updated,
		c.name AS constituency_name,
		c.county,
		c.mp_name,
		ct.name AS contractor_name,
		a.tender_id,
		a.procurement_method,
		a.contract_value,
		a.award_date
	FROM projects p
	JOIN constituencies c ON c.code = p.constituency_code
	LEFT JOIN procurement_awards a ON a.project_id = p.id
	LEFT JOIN contractors ct ON ct.id = a.contractor_id
`

type projectDetailRow struct {
	ID                int64
	Title             string
	Description       *string
	Category          string
	Status            string
	Budget            float64
	Spent             *float64
	Progress          *float64
	ConstituencyCode  string
	StartDate         *time.Time
	CompletionDate    *time.Time
	IsMock            bool
	SourceName        *string
	SourceURL         *string
	SourceDocRef      *string
	LastUpdated       time.Time
	ConstituencyName  string
	County            string
	MPName            string
	ContractorName    *string
	TenderID          *string
	ProcurementMethod *string
	ContractValue     *float64
	AwardDate         *time.Time
}

func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.ProjectDetail, error) {
	query := projectDetailSelect
	var conditions []string
	var args []interface{}

	if filter.ConstituencyCode != "" {
		conditions = append(conditions, "p.constituency_code = ?")
		args = append(args, filter.ConstituencyCode)
	}
	if filter.Category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		conditions = append(conditions, "p.status = ?")
		args = append(args, filter.Status)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY " + orderClause(filter.Sort)

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	var rows []projectDetailRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]model.ProjectDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

// ListAll returns the full read model without paging, for analytics scans.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]model.ProjectDetail, error) {
	var rows []projectDetailRow
	if err := r.db.WithContext(ctx).Raw(projectDetailSelect + " ORDER BY p.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	details := make([]model.ProjectDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*model.ProjectDetail, error) {
	var row projectDetailRow
	err := r.db.WithContext(ctx).Raw(projectDetailSelect+" WHERE p.id = ? LIMIT 1", id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	detail := row.toDetail()
	return &detail, nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM projects`).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p model.Project) (*model.Project, error) {
	var saved model.Project
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO projects (
			title,
			description,
			category,
			status,
			budget,
			spent,
			progress,
			constituency_code,
			start_date,
			completion_date,
			is_mock,
			source_name,
			source_url,
			source_doc_ref,
			last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
		RETURNING
			id,
			title,
			description,
			category,
			status,
			budget,
			spent,
			progress,
			constituency_code,
			start_date,
			completion_date,
			is_mock,
			source_name,
			source_url,
			source_doc_ref,
			last_updated
	`,
		p.Title,
		p.Description,
		p.Category,
		p.Status,
		p.Budget,
		p.Spent,
		p.Progress,
		p.ConstituencyCode,
		p.StartDate,
		p.CompletionDate,
		p.IsMock,
		p.SourceName,
		p.SourceURL,
		p.SourceDocRef,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p model.Project) (*model.Project, error) {
	var saved model.Project
	err := r.db.WithContext(ctx).Raw(`
		UPDATE projects
		SET
			title = ?,
			description = ?,
			category = ?,
			status = ?,
			budget = ?,
			spent = ?,
			progress = ?,
			constituency_code = ?,
			start_date = ?,
			completion_date = ?,
			is_mock = ?,
			source_name = ?,
			source_url = ?,
			source_doc_ref = ?,
			last_updated = NOW()
		WHERE id = ?
		RETURNING
			id,
			title,
			description,
			category,
			status,
			budget,
			spent,
			progress,
			constituency_code,
			start_date,
			completion_date,
			is_mock,
			source_name,
			source_url,
			source_doc_ref,
			last_updated
	`,
		p.Title,
		p.Description,
		p.Category,
		p.Status,
		p.Budget,
		p.Spent,
		p.Progress,
		p.ConstituencyCode,
		p.StartDate,
		p.CompletionDate,
		p.IsMock,
		p.SourceName,
		p.SourceURL,
		p.SourceDocRef,
		p.ID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM projects WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByImportKey locates a previously imported project by the importer's
// idempotency key: title + constituency + source document reference.
func (r *ProjectRepository) FindByImportKey(ctx context.Context, title, constituencyCode string, sourceDocRef *string) (*model.Project, error) {
	query := `
		SELECT
			id, title, description, category, status, budget, spent, progress,
			constituency_code, start_date, completion_date, is_mock,
			source_name, source_url, source_doc_ref, last_updated
		FROM projects
		WHERE title = ? AND constituency_code = ?
	`
	args := []interface{}{title, constituencyCode}
	if sourceDocRef != nil {
		query += " AND source_doc_ref = ?"
		args = append(args, *sourceDocRef)
	} else {
		query += " AND source_doc_ref IS NULL"
	}
	query += " LIMIT 1"

	var found model.Project
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func orderClause(sort string) string {
	switch sort {
	case "id_asc":
		return "p.id ASC"
	case "id_desc":
		return "p.id DESC"
	case "title_asc":
		return "p.title ASC"
	case "title_desc":
		return "p.title DESC"
	case "last_updated_asc":
		return "p.last_updated ASC"
	default:
		return "p.last_updated DESC"
	}
}

func (row projectDetailRow) toDetail() model.ProjectDetail {
	return model.ProjectDetail{
		Project: model.Project{
			ID:               row.ID,
			Title:            row.Title,
			Description:      row.Description,
			Category:         model.ProjectCategory(row.Category),
			Status:           model.ProjectStatus(row.Status),
			Budget:           row.Budget,
			Spent:            row.Spent,
			Progress:         row.Progress,
			ConstituencyCode: row.ConstituencyCode,
			StartDate:        row.StartDate,
			CompletionDate:   row.CompletionDate,
			IsMock:           row.IsMock,
			SourceName:       row.SourceName,
			SourceURL:        row.SourceURL,
			SourceDocRef:     row.SourceDocRef,
			LastUpdated:      row.LastUpdated,
		},
		ConstituencyName:  row.ConstituencyName,
		County:            row.County,
		MPName:            row.MPName,
		ContractorName:    row.ContractorName,
		TenderID:          row.TenderID,
		ProcurementMethod: row.ProcurementMethod,
		ContractValue:     row.ContractValue,
		AwardDate:         row.AwardDate,
	}
}
