package model

import "time"

// ScoredRow is one project line of a register report with the computed
// spending and risk figures attached.
type ScoredRow struct {
	ID          int64
	Title       string
	Category    ProjectCategory
	Status      ProjectStatus
	Budget      float64
	Spent       float64
	Utilization float64
	Progress    float64
	Risk        float64
	Contractor  string
}

// ConstituencyGroup bundles one constituency's projects for a report.
type ConstituencyGroup struct {
	Code     string
	Name     string
	County   string
	MPName   string
	PASScore float64
	Projects []ScoredRow
}

// RegisterReport is the full project register rendered into the export
// workbook.
type RegisterReport struct {
	GeneratedAt   time.Time
	TotalProjects int
	TotalBudget   float64
	TotalSpent    float64
	Groups        []ConstituencyGroup
}

// SignalNote is a review signal flattened for report rendering.
type SignalNote struct {
	ProjectTitle      string
	Level             string
	Title             string
	Reason            string
	RecommendedAction string
}

// ConstituencyReport feeds the per-constituency accountability document.
type ConstituencyReport struct {
	GeneratedAt     time.Time
	Group           ConstituencyGroup
	FlaggedProjects int
	AverageRisk     float64
	Signals         []SignalNote
}
