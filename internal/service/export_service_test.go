package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type captureExcel struct {
	report model.RegisterReport
}

func (g *captureExcel) Generate(report model.RegisterReport) ([]byte, error) {
	g.report = report
	return []byte("xlsx"), nil
}

type capturePDF struct {
	report model.ConstituencyReport
}

func (g *capturePDF) Generate(report model.ConstituencyReport) ([]byte, error) {
	g.report = report
	return []byte("pdf"), nil
}

func newTestExport(excel *captureExcel, pdf *capturePDF, details ...model.ProjectDetail) *ExportService {
	svc := NewExportService(&stubProjectSource{details: details}, excel, pdf)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestProjectRegister_GroupsByConstituency(t *testing.T) {
	excel := &captureExcel{}
	svc := newTestExport(excel, &capturePDF{},
		scoredDetail(1, "Borehole", "002", "Yatta", 1000000, 400000, 50, model.StatusOngoing),
		scoredDetail(2, "Classroom", "001", "Kajiado North", 500000, 500000, 100, model.StatusCompleted),
		scoredDetail(3, "Dispensary", "002", "Yatta", 800000, 100000, 10, model.StatusPlanned),
	)

	result, err := svc.ProjectRegister(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cdf-register-20260301.xlsx", result.FileName)
	assert.Equal(t, xlsxContentType, result.ContentType)
	assert.Equal(t, []byte("xlsx"), result.Content)

	report := excel.report
	assert.Equal(t, 3, report.TotalProjects)
	assert.InDelta(t, 2300000, report.TotalBudget, 0.001)
	assert.InDelta(t, 1000000, report.TotalSpent, 0.001)

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "001", report.Groups[0].Code)
	assert.Equal(t, "002", report.Groups[1].Code)
	assert.Len(t, report.Groups[1].Projects, 2)
	assert.InDelta(t, 100.0, report.Groups[0].Projects[0].Utilization, 0.001)
	assert.InDelta(t, 40.0, report.Groups[1].Projects[0].Utilization, 0.001)
}

func TestConstituencyReport_FlaggedAndAverages(t *testing.T) {
	pdf := &capturePDF{}
	svc := newTestExport(&captureExcel{}, pdf,
		scoredDetail(1, "Market", "001", "Kajiado North", 1000000, 1500000, 40, model.StatusFlagged),
		scoredDetail(2, "Bridge", "001", "Kajiado North", 500000, 250000, 50, model.StatusOngoing),
		scoredDetail(3, "Dam", "002", "Yatta", 700000, 100000, 10, model.StatusOngoing),
	)

	result, err := svc.ConstituencyReport(context.Background(), "001")
	require.NoError(t, err)

	assert.Equal(t, "cdf-report-Kajiado-North-20260301.pdf", result.FileName)
	assert.Equal(t, pdfContentType, result.ContentType)

	report := pdf.report
	assert.Equal(t, "001", report.Group.Code)
	assert.Equal(t, 1, report.FlaggedProjects)
	assert.Greater(t, report.AverageRisk, 0.0)
	require.Len(t, report.Group.Projects, 2)

	// None of the seeded projects carries a description, so the completeness
	// detector must appear for this constituency's projects and no others.
	require.NotEmpty(t, report.Signals)
	seen := map[string]bool{}
	for _, note := range report.Signals {
		seen[note.ProjectTitle] = true
		assert.NotEmpty(t, note.Level)
		assert.NotEmpty(t, note.Reason)
	}
	assert.True(t, seen["Market"])
	assert.True(t, seen["Bridge"])
	assert.False(t, seen["Dam"])
}

func TestConstituencyReport_UnknownCode(t *testing.T) {
	svc := newTestExport(&captureExcel{}, &capturePDF{},
		scoredDetail(1, "Market", "001", "Kajiado North", 1000000, 500000, 40, model.StatusOngoing),
	)

	_, err := svc.ConstituencyReport(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConstituencyReport_EmptyCode(t *testing.T) {
	svc := newTestExport(&captureExcel{}, &capturePDF{})
	_, err := svc.ConstituencyReport(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
