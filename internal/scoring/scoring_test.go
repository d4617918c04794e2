package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanjala/cdf-tracker/internal/model"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func project(budget, spent, progress float64, status model.ProjectStatus) model.Project {
	return model.Project{
		Title:    "Test Project",
		Category: model.CategoryWater,
		Status:   status,
		Budget:   budget,
		Spent:    &spent,
		Progress: &progress,
	}
}

func TestUtilization_ZeroBudget(t *testing.T) {
	assert.Equal(t, 0.0, Utilization(500000, 0))
	assert.Equal(t, 0.0, Utilization(500000, -1))
	assert.Equal(t, 0.0, Utilization(0, 0))
}

func TestUtilization_Basic(t *testing.T) {
	assert.InDelta(t, 50.0, Utilization(500000, 1000000), 0.001)
	assert.InDelta(t, 150.0, Utilization(1500000, 1000000), 0.001)
}

func TestRisk_AlwaysClamped(t *testing.T) {
	cases := []model.Project{
		project(1000000, 10000000, 0, model.StatusFlagged),
		project(0, 0, 0, model.StatusPlanned),
		project(500000, 0, 100, model.StatusCompleted),
		project(1, 1e12, 1, model.StatusFlagged),
	}
	for _, p := range cases {
		risk := Risk(p, now)
		assert.GreaterOrEqual(t, risk, 0.0)
		assert.LessOrEqual(t, risk, 100.0)
		perf := Performance(p, now)
		assert.GreaterOrEqual(t, perf, 0.0)
		assert.LessOrEqual(t, perf, 100.0)
	}
}

func TestRisk_CompletedBelowFlagged(t *testing.T) {
	completed := project(1000000, 950000, 100, model.StatusCompleted)
	flagged := project(1000000, 950000, 100, model.StatusFlagged)
	assert.Less(t, Risk(completed, now), Risk(flagged, now))
}

func TestRisk_OverspendStrictlyIncreases(t *testing.T) {
	atBudget := project(1000000, 1000000, 60, model.StatusOngoing)
	overspent := project(1000000, 1300000, 60, model.StatusOngoing)
	assert.Greater(t, Risk(overspent, now), Risk(atBudget, now))
}

func TestRisk_OverspendExample(t *testing.T) {
	// budget 1M, spent 1.5M, progress 40, Ongoing: overspend ratio 0.5
	// contributes 45 points, stalled-spend tier another 20.
	p := project(1000000, 1500000, 40, model.StatusOngoing)
	risk := Risk(p, now)
	require.Greater(t, risk, 50.0)
	assert.InDelta(t, 65.0, risk, 0.001)
}

func TestRisk_HealthyCompletedExample(t *testing.T) {
	// budget 500k, spent 100k, progress 20, Completed: no overspend, low
	// utilization, completed bonus floors it at zero.
	p := project(500000, 100000, 20, model.StatusCompleted)
	assert.Equal(t, 0.0, Risk(p, now))
	assert.Equal(t, 100.0, Performance(p, now))
}

func TestRisk_HighUtilizationLowProgressTiers(t *testing.T) {
	stalled := project(1000000, 850000, 20, model.StatusOngoing)
	lagging := project(1000000, 850000, 45, model.StatusOngoing)
	healthy := project(1000000, 850000, 85, model.StatusOngoing)

	assert.InDelta(t, stalledPenalty, Risk(stalled, now), 0.001)
	assert.InDelta(t, laggingPenalty, Risk(lagging, now), 0.001)
	assert.Equal(t, 0.0, Risk(healthy, now))
}

func TestRisk_MissingNumericFieldsTreatedAsZero(t *testing.T) {
	p := model.Project{
		Title:    "No financials",
		Category: model.CategoryOther,
		Status:   model.StatusPlanned,
		Budget:   1000000,
	}
	assert.Equal(t, 0.0, Risk(p, now))
}

func TestRisk_ScheduleSlippage(t *testing.T) {
	start := now.AddDate(0, -4, 0)
	end := now.AddDate(0, 4, 0)
	onTrack := project(1000000, 300000, 50, model.StatusOngoing)
	onTrack.StartDate = &start
	onTrack.CompletionDate = &end

	behind := project(1000000, 300000, 10, model.StatusOngoing)
	behind.StartDate = &start
	behind.CompletionDate = &end

	assert.Greater(t, Risk(behind, now), Risk(onTrack, now))
}

func TestRisk_OverduePenalty(t *testing.T) {
	past := now.AddDate(0, -2, 0)
	start := now.AddDate(-1, 0, 0)

	overdue := project(1000000, 500000, 60, model.StatusOngoing)
	overdue.StartDate = &start
	overdue.CompletionDate = &past

	done := project(1000000, 500000, 100, model.StatusCompleted)
	done.StartDate = &start
	done.CompletionDate = &past

	assert.Greater(t, Risk(overdue, now), 0.0)
	assert.Equal(t, 0.0, Risk(done, now))
}

func TestExpectedProgress(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, ExpectedProgress(nil, &end, now))
	assert.Equal(t, 0.0, ExpectedProgress(&start, nil, now))
	assert.Equal(t, 0.0, ExpectedProgress(&end, &start, now))
	assert.Equal(t, 0.0, ExpectedProgress(&start, &end, start.AddDate(0, 0, -1)))
	assert.Equal(t, 100.0, ExpectedProgress(&start, &end, end.AddDate(0, 0, 1)))

	mid := ExpectedProgress(&start, &end, now)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 100.0)
}

func TestConstituencyScore(t *testing.T) {
	assert.Equal(t, 0.0, ConstituencyScore(nil, now))

	clean := []model.Project{
		project(1000000, 800000, 80, model.StatusCompleted),
		project(500000, 400000, 90, model.StatusCompleted),
	}
	troubled := []model.Project{
		project(1000000, 1600000, 20, model.StatusFlagged),
		project(500000, 900000, 10, model.StatusFlagged),
	}

	cleanScore := ConstituencyScore(clean, now)
	troubledScore := ConstituencyScore(troubled, now)

	assert.Greater(t, cleanScore, troubledScore)
	assert.GreaterOrEqual(t, troubledScore, 0.0)
	assert.LessOrEqual(t, cleanScore, 100.0)
}
