package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.RegisterReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range report.Groups {
		sheetName := buildSheetName(group.Name, group.Code, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, report, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.RegisterReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Constituency Development Fund project register")
	set("A2", "Generated")
	set("B2", formatDate(report.GeneratedAt))
	set("A3", "Projects")
	set("B3", report.TotalProjects)
	set("A4", "Total budget, KES")
	set("B4", formatAmount(report.TotalBudget))
	set("A5", "Total spent, KES")
	set("B5", formatAmount(report.TotalSpent))

	tableRow := 7
	headers := []string{"Constituency", "County", "MP", "Projects", "Flagged", "PAS score"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, group := range report.Groups {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), group.Name)
		set(fmt.Sprintf("B%d", row), group.County)
		set(fmt.Sprintf("C%d", row), group.MPName)
		set(fmt.Sprintf("D%d", row), len(group.Projects))
		set(fmt.Sprintf("E%d", row), countFlagged(group.Projects))
		set(fmt.Sprintf("F%d", row), fmt.Sprintf("%.1f", group.PASScore))
	}

	_ = file.SetColWidth(sheet, "A", "A", 30)
	_ = file.SetColWidth(sheet, "B", "C", 24)
	_ = file.SetColWidth(sheet, "D", "F", 12)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.RegisterReport, group model.ConstituencyGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Constituency")
	set("B1", group.Name)
	set("A2", "County")
	set("B2", group.County)
	set("A3", "MP")
	set("B3", group.MPName)
	set("A4", "Generated")
	set("B4", formatDate(report.GeneratedAt))
	set("A5", "Projects")
	set("B5", len(group.Projects))
	set("A6", "PAS score")
	set("B6", fmt.Sprintf("%.1f", group.PASScore))

	tableRow := 8
	headers := []string{
		"Title",
		"Category",
		"Status",
		"Budget, KES",
		"Spent, KES",
		"Utilization, %",
		"Progress, %",
		"Risk",
		"Contractor",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range group.Projects {
		r := tableRow + 1 + i
		set(fmt.Sprintf("A%d", r), row.Title)
		set(fmt.Sprintf("B%d", r), string(row.Category))
		set(fmt.Sprintf("C%d", r), string(row.Status))
		set(fmt.Sprintf("D%d", r), formatAmount(row.Budget))
		set(fmt.Sprintf("E%d", r), formatAmount(row.Spent))
		set(fmt.Sprintf("F%d", r), fmt.Sprintf("%.1f", row.Utilization))
		set(fmt.Sprintf("G%d", r), fmt.Sprintf("%.0f", row.Progress))
		set(fmt.Sprintf("H%d", r), fmt.Sprintf("%.1f", row.Risk))
		set(fmt.Sprintf("I%d", r), row.Contractor)
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "C", 14)
	_ = file.SetColWidth(sheet, "D", "E", 16)
	_ = file.SetColWidth(sheet, "F", "H", 13)
	_ = file.SetColWidth(sheet, "I", "I", 28)
	return nil
}

func countFlagged(rows []model.ScoredRow) int {
	count := 0
	for _, row := range rows {
		if row.Status == model.StatusFlagged {
			count++
		}
	}
	return count
}

func buildSheetName(name, code string, used map[string]struct{}) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = code
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}
