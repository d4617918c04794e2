package signals

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanjala/cdf-tracker/internal/model"
)

func detail(id int64, title, constituency, contractor string, budget float64, status model.ProjectStatus) model.ProjectDetail {
	d := model.ProjectDetail{
		Project: model.Project{
			ID:               id,
			Title:            title,
			Category:         model.CategoryWater,
			Status:           status,
			Budget:           budget,
			ConstituencyCode: constituency,
		},
	}
	if contractor != "" {
		d.ContractorName = &contractor
	}
	return d
}

func TestContractorConcentration_HighAtSixtyPercent(t *testing.T) {
	// 5 projects in one constituency, 3 naming Acme Ltd: share 60% >= 55%.
	all := []model.ProjectDetail{
		detail(1, "Borehole A", "001", "Acme Ltd", 2000000, model.StatusOngoing),
		detail(2, "Borehole B", "001", "Acme Ltd", 1500000, model.StatusOngoing),
		detail(3, "Classroom Block", "001", "Acme Ltd", 3800000, model.StatusCompleted),
		detail(4, "Dispensary Upgrade", "001", "Beta Works", 5200000, model.StatusOngoing),
		detail(5, "Road Grading", "001", "Gamma Civil", 3200000, model.StatusPlanned),
	}

	s := ContractorConcentration(all[0], all)
	require.NotNil(t, s)
	assert.Equal(t, LevelHigh, s.Level)
	assert.Contains(t, s.Reason, "60%")
}

func TestContractorConcentration_MediumTier(t *testing.T) {
	all := []model.ProjectDetail{
		detail(1, "Borehole A", "001", "Acme Ltd", 2000000, model.StatusOngoing),
		detail(2, "Borehole B", "001", "Acme Ltd", 1500000, model.StatusOngoing),
		detail(3, "Classroom Block", "001", "Beta Works", 3800000, model.StatusCompleted),
		detail(4, "Dispensary Upgrade", "001", "Gamma Civil", 5200000, model.StatusOngoing),
		detail(5, "Road Grading", "001", "Delta Ltd", 3200000, model.StatusPlanned),
	}

	// 2 of 5 = 40%: medium.
	s := ContractorConcentration(all[0], all)
	require.NotNil(t, s)
	assert.Equal(t, LevelMedium, s.Level)
}

func TestContractorConcentration_NoContractor(t *testing.T) {
	all := []model.ProjectDetail{
		detail(1, "Borehole A", "001", "", 2000000, model.StatusOngoing),
	}
	assert.Nil(t, ContractorConcentration(all[0], all))
}

func TestRepeatedFlags_Thresholds(t *testing.T) {
	base := []model.ProjectDetail{
		detail(1, "Borehole A", "001", "Acme Ltd", 2000000, model.StatusFlagged),
		detail(2, "Borehole B", "002", "Acme Ltd", 1500000, model.StatusFlagged),
		detail(3, "Borehole C", "003", "Acme Ltd", 1800000, model.StatusOngoing),
	}

	s := RepeatedFlags(base[2], base)
	require.NotNil(t, s)
	assert.Equal(t, LevelMedium, s.Level)
	assert.Len(t, s.Evidence, 2)

	base[2].Status = model.StatusFlagged
	s = RepeatedFlags(base[2], base)
	require.NotNil(t, s)
	assert.Equal(t, LevelHigh, s.Level)
}

func TestRepeatedFlags_SingleFlagIsQuiet(t *testing.T) {
	all := []model.ProjectDetail{
		detail(1, "Borehole A", "001", "Acme Ltd", 2000000, model.StatusFlagged),
		detail(2, "Borehole B", "002", "Acme Ltd", 1500000, model.StatusOngoing),
	}
	assert.Nil(t, RepeatedFlags(all[1], all))
}

func TestCrossConstituencyPattern(t *testing.T) {
	all := []model.ProjectDetail{
		detail(1, "Water Pan", "001", "Acme Ltd", 2000000, model.StatusOngoing),
		detail(2, "Water Pan", "002", "Acme Ltd", 2100000, model.StatusFlagged),
		detail(3, "Water Pan", "003", "Acme Ltd", 1900000, model.StatusOngoing),
	}

	s := CrossConstituencyPattern(all[0], all)
	require.NotNil(t, s)
	assert.Equal(t, LevelMedium, s.Level)
	assert.Equal(t, []string{"002", "003"}, s.Evidence)

	// Active elsewhere but nothing flagged: no signal.
	all[1].Status = model.StatusCompleted
	assert.Nil(t, CrossConstituencyPattern(all[0], all))
}

func TestSimilarProjects_TitleAndBudgetCluster(t *testing.T) {
	p := detail(1, "Kisumu East Solar Lighting", "004", "Acme Ltd", 2800000, model.StatusOngoing)
	all := []model.ProjectDetail{
		p,
		detail(2, "Kisumu East Solar Lighting Phase", "005", "Beta Works", 2900000, model.StatusOngoing),
		detail(3, "Completely Different Dam Works", "006", "Beta Works", 2850000, model.StatusOngoing),
		detail(4, "Kisumu East Solar Lighting", "007", "Gamma Civil", 9000000, model.StatusOngoing),
	}

	s := SimilarProjects(p, all)
	require.NotNil(t, s)
	// The near-identical title within 10% budget matches; the same title at
	// triple the budget and the unrelated title do not.
	require.Len(t, s.Evidence, 1)
	assert.Contains(t, s.Evidence[0], "005")
}

func TestSimilarProjects_NoMatches(t *testing.T) {
	p := detail(1, "Market Shed Roofing", "001", "", 1000000, model.StatusOngoing)
	all := []model.ProjectDetail{
		p,
		detail(2, "Bridge Approach Works", "002", "", 1050000, model.StatusOngoing),
	}
	assert.Nil(t, SimilarProjects(p, all))
}

func TestDescriptionCompleteness(t *testing.T) {
	p := detail(1, "Borehole", "001", "", 1000000, model.StatusOngoing)
	s := DescriptionCompleteness(p)
	require.NotNil(t, s)
	assert.Equal(t, LevelLow, s.Level)

	long := "Drilling and equipping of a solar-powered community borehole with storage tank."
	p.Description = &long
	assert.Nil(t, DescriptionCompleteness(p))

	short := "Borehole."
	p.Description = &short
	require.NotNil(t, DescriptionCompleteness(p))
}

func TestDetect_CollectsAllSignals(t *testing.T) {
	all := make([]model.ProjectDetail, 0, 6)
	for i := int64(1); i <= 3; i++ {
		all = append(all, detail(i, fmt.Sprintf("Borehole %d", i), "001", "Acme Ltd", 2000000, model.StatusFlagged))
	}
	all = append(all,
		detail(4, "Classroom", "001", "Beta Works", 3000000, model.StatusOngoing),
		detail(5, "Water Pan", "002", "Acme Ltd", 2500000, model.StatusFlagged),
		detail(6, "Water Pan", "003", "Acme Ltd", 2600000, model.StatusOngoing),
	)

	got := Detect(all[0], all)
	titles := make(map[string]Level, len(got))
	for _, s := range got {
		titles[s.Title] = s.Level
	}

	assert.Equal(t, LevelHigh, titles["Contractor concentration"])
	assert.Equal(t, LevelHigh, titles["Repeatedly flagged contractor"])
	assert.Equal(t, LevelMedium, titles["Cross-constituency pattern"])
	assert.Equal(t, LevelLow, titles["Incomplete project description"])
}
