package model

import "time"

// ProcurementAward links a project to the contractor it was awarded to.
// At most one award exists per project.
type ProcurementAward struct {
	ID                    int64
	ProjectID             int64
	ContractorID          int64
	TenderID              *string
	ProcurementMethod     *string
	ContractValue         *float64
	AwardDate             *time.Time
	ContractorShareHint   *float64
	PerformanceFlag       bool
	PerformanceFlagReason *string
	CreatedAt             time.Time
}
