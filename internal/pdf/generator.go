package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/wanjala/cdf-tracker/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.ConstituencyReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, "Constituency Development Fund - Accountability Report", "", 1, "C", false, 0, "")

	group := report.Group

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s Constituency (%s), %s County", group.Name, group.Code, group.County), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", formatDate(report.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Fund office", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("Member of Parliament: %s", safeValue(group.MPName)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Scorecard", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Projects: %d    Flagged: %d    Average risk: %.1f    PAS score: %.1f",
		len(group.Projects), report.FlaggedProjects, report.AverageRisk, group.PASScore), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Project register", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)

	headers := []string{"Project", "Category", "Status", "Budget, KES", "Spent, KES", "Util. %", "Risk"}
	colWidths := []float64{92, 28, 24, 36, 36, 24, 20}
	drawTableRow(pdf, headers, colWidths, true)

	for _, row := range group.Projects {
		cols := []string{
			truncate(row.Title, 52),
			string(row.Category),
			string(row.Status),
			formatAmount(row.Budget),
			formatAmount(row.Spent),
			fmt.Sprintf("%.1f", row.Utilization),
			fmt.Sprintf("%.1f", row.Risk),
		}
		drawTableRow(pdf, cols, colWidths, false)
	}

	if report.FlaggedProjects > 0 {
		pdf.Ln(2)
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, fmt.Sprintf("Attention: %d project(s) in this constituency are flagged and pending review.",
			report.FlaggedProjects), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if len(report.Signals) > 0 {
		pdf.Ln(4)
		pdf.SetFont(fontName, "B", 12)
		pdf.CellFormat(0, 8, "Review signals", "", 1, "L", false, 0, "")
		for _, note := range report.Signals {
			pdf.SetFont(fontName, "B", 10)
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(note.Level), note.Title, note.ProjectTitle), "", "L", false)
			pdf.SetFont(fontName, "", 10)
			pdf.MultiCell(0, 5, note.Reason, "", "L", false)
			pdf.MultiCell(0, 5, "Recommended action: "+note.RecommendedAction, "", "L", false)
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "..."
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
