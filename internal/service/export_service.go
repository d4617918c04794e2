package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/scoring"
	"github.com/wanjala/cdf-tracker/internal/signals"
)

type RegisterGenerator interface {
	Generate(report model.RegisterReport) ([]byte, error)
}

type ConstituencyReportGenerator interface {
	Generate(report model.ConstituencyReport) ([]byte, error)
}

type ExportService struct {
	projects RegisterSource
	excel    RegisterGenerator
	pdf      ConstituencyReportGenerator
	now      func() time.Time
}

// RegisterSource mirrors ProjectSource; exports read the same joined rows
// the analytics do.
type RegisterSource interface {
	ListAll(ctx context.Context) ([]model.ProjectDetail, error)
}

func NewExportService(projects RegisterSource, excel RegisterGenerator, pdf ConstituencyReportGenerator) *ExportService {
	return &ExportService{
		projects: projects,
		excel:    excel,
		pdf:      pdf,
		now:      time.Now,
	}
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// ProjectRegister renders the full register as a workbook: one summary
// sheet plus a detail sheet per constituency.
func (s *ExportService) ProjectRegister(ctx context.Context) (*ExportResult, error) {
	all, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	report := model.RegisterReport{
		GeneratedAt: now,
		Groups:      groupByConstituency(all, now),
	}
	for _, detail := range all {
		report.TotalProjects++
		report.TotalBudget += detail.Budget
		report.TotalSpent += detail.SpentAmount()
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("cdf-register-%s.xlsx", now.Format("20060102")),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

// ConstituencyReport renders one constituency's accountability document.
func (s *ExportService) ConstituencyReport(ctx context.Context, code string) (*ExportResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: constituency code is required", ErrInvalidInput)
	}

	all, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var group *model.ConstituencyGroup
	for _, g := range groupByConstituency(all, now) {
		if g.Code == code {
			group = &g
			break
		}
	}
	if group == nil {
		return nil, ErrNotFound
	}

	report := model.ConstituencyReport{
		GeneratedAt: now,
		Group:       *group,
		Signals:     signalNotes(code, all),
	}
	totalRisk := 0.0
	for _, row := range group.Projects {
		totalRisk += row.Risk
		if row.Status == model.StatusFlagged {
			report.FlaggedProjects++
		}
	}
	if len(group.Projects) > 0 {
		report.AverageRisk = totalRisk / float64(len(group.Projects))
	}

	content, err := s.pdf.Generate(report)
	if err != nil {
		return nil, err
	}

	target := sanitizeFileName(group.Name)
	if target == "" {
		target = group.Code
	}
	return &ExportResult{
		FileName:    fmt.Sprintf("cdf-report-%s-%s.pdf", target, now.Format("20060102")),
		ContentType: pdfContentType,
		Content:     content,
	}, nil
}

// signalNotes runs the detectors over one constituency's projects against
// the full dataset, flattened for report rendering.
func signalNotes(code string, all []model.ProjectDetail) []model.SignalNote {
	var notes []model.SignalNote
	for _, detail := range all {
		if detail.ConstituencyCode != code {
			continue
		}
		for _, sig := range signals.Detect(detail, all) {
			notes = append(notes, model.SignalNote{
				ProjectTitle:      detail.Title,
				Level:             string(sig.Level),
				Title:             sig.Title,
				Reason:            sig.Reason,
				RecommendedAction: sig.RecommendedAction,
			})
		}
	}
	return notes
}

func groupByConstituency(all []model.ProjectDetail, now time.Time) []model.ConstituencyGroup {
	index := map[string]int{}
	groups := make([]model.ConstituencyGroup, 0)

	for _, detail := range all {
		i, ok := index[detail.ConstituencyCode]
		if !ok {
			i = len(groups)
			index[detail.ConstituencyCode] = i
			groups = append(groups, model.ConstituencyGroup{
				Code:   detail.ConstituencyCode,
				Name:   detail.ConstituencyName,
				County: detail.County,
				MPName: detail.MPName,
			})
		}

		contractor := ""
		if detail.ContractorName != nil {
			contractor = *detail.ContractorName
		}
		groups[i].Projects = append(groups[i].Projects, model.ScoredRow{
			ID:          detail.ID,
			Title:       detail.Title,
			Category:    detail.Category,
			Status:      detail.Status,
			Budget:      detail.Budget,
			Spent:       detail.SpentAmount(),
			Utilization: scoring.Utilization(detail.SpentAmount(), detail.Budget),
			Progress:    detail.ProgressPct(),
			Risk:        scoring.Risk(detail.Project, now),
			Contractor:  contractor,
		})
	}

	for i := range groups {
		byConstituency := make([]model.Project, 0, len(groups[i].Projects))
		for _, detail := range all {
			if detail.ConstituencyCode == groups[i].Code {
				byConstituency = append(byConstituency, detail.Project)
			}
		}
		groups[i].PASScore = scoring.ConstituencyScore(byConstituency, now)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Code < groups[j].Code
	})
	return groups
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return trimDashes(string(result))
}

func trimDashes(value string) string {
	for len(value) > 0 && value[0] == '-' {
		value = value[1:]
	}
	for len(value) > 0 && value[len(value)-1] == '-' {
		value = value[:len(value)-1]
	}
	return value
}
