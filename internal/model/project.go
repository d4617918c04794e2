package model

import "time"

type ProjectCategory string

const (
	CategoryEducation      ProjectCategory = "Education"
	CategoryHealth         ProjectCategory = "Health"
	CategoryWater          ProjectCategory = "Water"
	CategoryInfrastructure ProjectCategory = "Infrastructure"
	CategorySecurity       ProjectCategory = "Security"
	CategoryEnvironment    ProjectCategory = "Environment"
	CategoryOther          ProjectCategory = "Other"
)

func ValidCategory(raw string) bool {
	switch ProjectCategory(raw) {
	case CategoryEducation, CategoryHealth, CategoryWater, CategoryInfrastructure,
		CategorySecurity, CategoryEnvironment, CategoryOther:
		return true
	}
	return false
}

type ProjectStatus string

const (
	StatusPlanned   ProjectStatus = "Planned"
	StatusOngoing   ProjectStatus = "Ongoing"
	StatusCompleted ProjectStatus = "Completed"
	StatusFlagged   ProjectStatus = "Flagged"
)

func ValidStatus(raw string) bool {
	switch ProjectStatus(raw) {
	case StatusPlanned, StatusOngoing, StatusCompleted, StatusFlagged:
		return true
	}
	return false
}

type Project struct {
	ID               int64
	Title            string
	Description      *string
	Category         ProjectCategory
	Status           ProjectStatus
	Budget           float64
	Spent            *float64
	Progress         *float64 // 0-100
	ConstituencyCode string
	StartDate        *time.Time
	CompletionDate   *time.Time
	IsMock           bool
	SourceName       *string
	SourceURL        *string
	SourceDocRef     *string
	LastUpdated      time.Time
}

// ProjectDetail is the read model served to listing pages: the project row
// joined with its constituency and, when present, the procurement award.
type ProjectDetail struct {
	Project

	ConstituencyName string
	County           string
	MPName           string

	ContractorName    *string
	TenderID          *string
	ProcurementMethod *string
	ContractValue     *float64
	AwardDate         *time.Time
}

func (p *Project) SpentAmount() float64 {
	if p.Spent == nil {
		return 0
	}
	return *p.Spent
}

func (p *Project) ProgressPct() float64 {
	if p.Progress == nil {
		return 0
	}
	v := *p.Progress
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
