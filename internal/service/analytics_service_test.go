package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type stubProjectSource struct {
	details []model.ProjectDetail
}

func (s *stubProjectSource) ListAll(_ context.Context) ([]model.ProjectDetail, error) {
	return s.details, nil
}

func scoredDetail(id int64, title, code, name string, budget, spent, progress float64, status model.ProjectStatus) model.ProjectDetail {
	return model.ProjectDetail{
		Project: model.Project{
			ID:               id,
			Title:            title,
			Category:         model.CategoryWater,
			Status:           status,
			Budget:           budget,
			Spent:            &spent,
			Progress:         &progress,
			ConstituencyCode: code,
		},
		ConstituencyName: name,
		County:           "Test County",
		MPName:           "Test MP",
	}
}

type recordingScoreSink struct {
	scores map[string]float64
}

func (s *recordingScoreSink) UpdatePASScore(_ context.Context, code string, score float64) error {
	if s.scores == nil {
		s.scores = map[string]float64{}
	}
	s.scores[code] = score
	return nil
}

func newTestAnalytics(details ...model.ProjectDetail) *AnalyticsService {
	svc := NewAnalyticsService(&stubProjectSource{details: details}, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestOverview_TotalsAndBuckets(t *testing.T) {
	svc := newTestAnalytics(
		scoredDetail(1, "Healthy", "001", "Kajiado North", 1000000, 500000, 60, model.StatusOngoing),
		scoredDetail(2, "Overspent", "001", "Kajiado North", 1000000, 1500000, 40, model.StatusOngoing),
		scoredDetail(3, "Troubled", "002", "Yatta", 500000, 900000, 10, model.StatusFlagged),
	)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalProjects)
	assert.InDelta(t, 2500000, overview.TotalBudget, 0.001)
	assert.InDelta(t, 2900000, overview.TotalSpent, 0.001)
	assert.Equal(t, 2, overview.StatusCounts["Ongoing"])
	assert.Equal(t, 1, overview.StatusCounts["Flagged"])
	assert.Equal(t, 3, overview.CategoryCounts["Water"])

	total := overview.RiskBuckets["low"] + overview.RiskBuckets["medium"] + overview.RiskBuckets["high"]
	assert.Equal(t, 3, total)
	assert.GreaterOrEqual(t, overview.RiskBuckets["high"], 1)

	// Top-risk is sorted descending.
	require.NotEmpty(t, overview.TopRisk)
	for i := 1; i < len(overview.TopRisk); i++ {
		assert.GreaterOrEqual(t, overview.TopRisk[i-1].Risk, overview.TopRisk[i].Risk)
	}
	assert.Equal(t, int64(3), overview.TopRisk[0].ID)
}

func TestOverview_EmptyDataset(t *testing.T) {
	svc := newTestAnalytics()

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, overview.TotalProjects)
	assert.Equal(t, 0.0, overview.OverallUtilization)
	assert.Empty(t, overview.TopRisk)
}

func TestLeaderboard_RanksCleanConstituencyFirst(t *testing.T) {
	svc := newTestAnalytics(
		scoredDetail(1, "Done A", "001", "Kajiado North", 1000000, 900000, 100, model.StatusCompleted),
		scoredDetail(2, "Done B", "001", "Kajiado North", 800000, 780000, 100, model.StatusCompleted),
		scoredDetail(3, "Bad A", "002", "Yatta", 1000000, 1900000, 10, model.StatusFlagged),
		scoredDetail(4, "Bad B", "002", "Yatta", 500000, 950000, 5, model.StatusFlagged),
	)

	board, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)

	assert.Equal(t, "001", board[0].ConstituencyCode)
	assert.Equal(t, "002", board[1].ConstituencyCode)
	assert.Greater(t, board[0].PASScore, board[1].PASScore)
	assert.Equal(t, 2, board[1].FlaggedProjects)
	assert.Equal(t, "Test MP", board[0].MPName)
}

func TestLeaderboard_PersistsPASScores(t *testing.T) {
	sink := &recordingScoreSink{}
	svc := newTestAnalytics(
		scoredDetail(1, "Done A", "001", "Kajiado North", 1000000, 900000, 100, model.StatusCompleted),
		scoredDetail(2, "Bad A", "002", "Yatta", 1000000, 1900000, 10, model.StatusFlagged),
	)
	svc.scores = sink

	board, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)

	require.Len(t, sink.scores, 2)
	for _, entry := range board {
		assert.Equal(t, entry.PASScore, sink.scores[entry.ConstituencyCode])
	}
}

func TestProjectRisk_WithSignals(t *testing.T) {
	acme := "Acme Ltd"
	troubled := scoredDetail(1, "Borehole A", "001", "Kajiado North", 1000000, 1500000, 40, model.StatusFlagged)
	troubled.ContractorName = &acme
	other := scoredDetail(2, "Borehole B", "001", "Kajiado North", 1000000, 900000, 80, model.StatusFlagged)
	other.ContractorName = &acme

	svc := newTestAnalytics(troubled, other)

	result, err := svc.ProjectRisk(context.Background(), 1, true)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, result.Utilization, 0.001)
	assert.Greater(t, result.Risk, 50.0)
	assert.NotEmpty(t, result.Signals)

	// Filtering property: every flagged project above a risk floor must be in
	// the intersection of both predicates, never more.
	all, _ := svc.projects.ListAll(context.Background())
	flagged := 0
	flaggedAndRisky := 0
	for _, d := range all {
		if d.Status != model.StatusFlagged {
			continue
		}
		flagged++
		pr, err := svc.ProjectRisk(context.Background(), d.ID, false)
		require.NoError(t, err)
		if pr.Risk >= 50 {
			flaggedAndRisky++
		}
	}
	assert.Equal(t, 2, flagged)
	assert.Equal(t, 1, flaggedAndRisky)
}

func TestProjectRisk_NotFound(t *testing.T) {
	svc := newTestAnalytics()
	_, err := svc.ProjectRisk(context.Background(), 42, false)
	assert.ErrorIs(t, err, ErrNotFound)
}
