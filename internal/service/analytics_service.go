package service

import (
	"context"
	"sort"
	"time"

	"github.com/wanjala/cdf-tracker/internal/cache"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/scoring"
	"github.com/wanjala/cdf-tracker/internal/signals"
)

const (
	analyticsOverviewKey    = "analytics:overview"
	analyticsLeaderboardKey = "analytics:leaderboard"
)

// ProjectSource is the slice of the project repository the analytics service
// needs: the full joined read model.
type ProjectSource interface {
	ListAll(ctx context.Context) ([]model.ProjectDetail, error)
}

// ScoreSink persists computed PAS scores back onto the constituency rows so
// plain constituency reads carry the latest score.
type ScoreSink interface {
	UpdatePASScore(ctx context.Context, code string, score float64) error
}

type AnalyticsService struct {
	projects ProjectSource
	scores   ScoreSink
	cache    *cache.Cache
	now      func() time.Time
}

func NewAnalyticsService(projects ProjectSource, scores ScoreSink, analyticsCache *cache.Cache) *AnalyticsService {
	return &AnalyticsService{
		projects: projects,
		scores:   scores,
		cache:    analyticsCache,
		now:      time.Now,
	}
}

type ScoredProject struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	ConstituencyCode string  `json:"constituency_code"`
	ConstituencyName string  `json:"constituency_name"`
	Status           string  `json:"status"`
	Budget           float64 `json:"budget"`
	Spent            float64 `json:"spent"`
	Utilization      float64 `json:"utilization"`
	Risk             float64 `json:"risk"`
	Performance      float64 `json:"performance"`
}

type Overview struct {
	TotalProjects      int             `json:"total_projects"`
	TotalBudget        float64         `json:"total_budget"`
	TotalSpent         float64         `json:"total_spent"`
	OverallUtilization float64         `json:"overall_utilization"`
	StatusCounts       map[string]int  `json:"status_counts"`
	CategoryCounts     map[string]int  `json:"category_counts"`
	RiskBuckets        map[string]int  `json:"risk_buckets"`
	TopRisk            []ScoredProject `json:"top_risk"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

type LeaderboardEntry struct {
	ConstituencyCode string  `json:"constituency_code"`
	ConstituencyName string  `json:"constituency_name"`
	County           string  `json:"county"`
	MPName           string  `json:"mp_name"`
	Projects         int     `json:"projects"`
	FlaggedProjects  int     `json:"flagged_projects"`
	AverageRisk      float64 `json:"average_risk"`
	PASScore         float64 `json:"pas_score"`
}

// Risk buckets used by the overview charts.
const (
	riskMediumFloor = 35.0
	riskHighFloor   = 65.0
	topRiskLimit    = 10
)

func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	var cached Overview
	if err := s.cache.GetJSON(ctx, analyticsOverviewKey, &cached); err == nil {
		return &cached, nil
	}

	all, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	overview := &Overview{
		StatusCounts:   map[string]int{},
		CategoryCounts: map[string]int{},
		RiskBuckets:    map[string]int{"low": 0, "medium": 0, "high": 0},
		GeneratedAt:    now,
	}

	scored := make([]ScoredProject, 0, len(all))
	for _, detail := range all {
		sp := scoreProject(detail, now)
		scored = append(scored, sp)

		overview.TotalProjects++
		overview.TotalBudget += detail.Budget
		overview.TotalSpent += sp.Spent
		overview.StatusCounts[string(detail.Status)]++
		overview.CategoryCounts[string(detail.Category)]++

		switch {
		case sp.Risk >= riskHighFloor:
			overview.RiskBuckets["high"]++
		case sp.Risk >= riskMediumFloor:
			overview.RiskBuckets["medium"]++
		default:
			overview.RiskBuckets["low"]++
		}
	}

	overview.OverallUtilization = scoring.Utilization(overview.TotalSpent, overview.TotalBudget)

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Risk != scored[j].Risk {
			return scored[i].Risk > scored[j].Risk
		}
		return scored[i].ID < scored[j].ID
	})
	if len(scored) > topRiskLimit {
		scored = scored[:topRiskLimit]
	}
	overview.TopRisk = scored

	s.cache.SetJSON(ctx, analyticsOverviewKey, overview)
	return overview, nil
}

func (s *AnalyticsService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var cached []LeaderboardEntry
	if err := s.cache.GetJSON(ctx, analyticsLeaderboardKey, &cached); err == nil {
		return cached, nil
	}

	all, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	type group struct {
		entry    LeaderboardEntry
		projects []model.Project
		risk     float64
	}
	groups := map[string]*group{}
	for _, detail := range all {
		g, ok := groups[detail.ConstituencyCode]
		if !ok {
			g = &group{entry: LeaderboardEntry{
				ConstituencyCode: detail.ConstituencyCode,
				ConstituencyName: detail.ConstituencyName,
				County:           detail.County,
				MPName:           detail.MPName,
			}}
			groups[detail.ConstituencyCode] = g
		}
		g.projects = append(g.projects, detail.Project)
		g.risk += scoring.Risk(detail.Project, now)
		g.entry.Projects++
		if detail.Status == model.StatusFlagged {
			g.entry.FlaggedProjects++
		}
	}

	board := make([]LeaderboardEntry, 0, len(groups))
	for _, g := range groups {
		g.entry.AverageRisk = g.risk / float64(len(g.projects))
		g.entry.PASScore = scoring.ConstituencyScore(g.projects, now)
		board = append(board, g.entry)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].PASScore != board[j].PASScore {
			return board[i].PASScore > board[j].PASScore
		}
		return board[i].ConstituencyCode < board[j].ConstituencyCode
	})

	if s.scores != nil {
		for _, entry := range board {
			if err := s.scores.UpdatePASScore(ctx, entry.ConstituencyCode, entry.PASScore); err != nil {
				return nil, err
			}
		}
	}

	s.cache.SetJSON(ctx, analyticsLeaderboardKey, board)
	return board, nil
}

type ProjectRisk struct {
	ProjectID        int64            `json:"project_id"`
	Utilization      float64          `json:"utilization"`
	ExpectedProgress float64          `json:"expected_progress"`
	Risk             float64          `json:"risk"`
	Performance      float64          `json:"performance"`
	Signals          []signals.Signal `json:"signals,omitempty"`
}

// ProjectRisk scores one project; includeSignals additionally runs the
// detectors against the full dataset.
func (s *AnalyticsService) ProjectRisk(ctx context.Context, id int64, includeSignals bool) (*ProjectRisk, error) {
	all, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	for _, detail := range all {
		if detail.ID != id {
			continue
		}
		result := &ProjectRisk{
			ProjectID:        id,
			Utilization:      scoring.Utilization(detail.SpentAmount(), detail.Budget),
			ExpectedProgress: scoring.ExpectedProgress(detail.StartDate, detail.CompletionDate, now),
			Risk:             scoring.Risk(detail.Project, now),
			Performance:      scoring.Performance(detail.Project, now),
		}
		if includeSignals {
			result.Signals = signals.Detect(detail, all)
		}
		return result, nil
	}
	return nil, ErrNotFound
}

func scoreProject(detail model.ProjectDetail, now time.Time) ScoredProject {
	return ScoredProject{
		ID:               detail.ID,
		Title:            detail.Title,
		ConstituencyCode: detail.ConstituencyCode,
		ConstituencyName: detail.ConstituencyName,
		Status:           string(detail.Status),
		Budget:           detail.Budget,
		Spent:            detail.SpentAmount(),
		Utilization:      scoring.Utilization(detail.SpentAmount(), detail.Budget),
		Risk:             scoring.Risk(detail.Project, now),
		Performance:      scoring.Performance(detail.Project, now),
	}
}
