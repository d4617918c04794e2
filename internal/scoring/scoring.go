// Package scoring holds the single canonical implementation of the derived
// project metrics: utilization, risk, performance and the per-constituency
// accountability score. Every endpoint that reports a score goes through this
// package, so citizens and administrators always see the same numbers.
package scoring

import (
	"math"
	"time"

	"github.com/wanjala/cdf-tracker/internal/model"
)

// Formula weights. Changing any of these changes what every consumer sees,
// which is the point.
const (
	overspendScale   = 90.0
	overspendCap     = 60.0
	stalledPenalty   = 25.0 // utilization >= 80% while progress <= 25%
	laggingPenalty   = 20.0 // utilization >= 80% while progress <= 50%
	scheduleGapScale = 0.4
	scheduleGapCap   = 20.0
	overduePenalty   = 15.0
	flaggedPenalty   = 25.0
	completedBonus   = 20.0
	completedUtilMax = 105.0

	pasRiskWeight    = 0.7
	pasFlaggedWeight = 30.0
)

// Utilization returns spent as a percentage of budget. A non-positive budget
// yields 0 rather than dividing by zero.
func Utilization(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	spent = sanitize(spent)
	return spent / budget * 100
}

// Risk scores a project 0-100 from its financial and schedule posture.
func Risk(p model.Project, now time.Time) float64 {
	budget := sanitize(p.Budget)
	spent := sanitize(p.SpentAmount())
	progress := p.ProgressPct()
	utilization := Utilization(spent, budget)

	risk := 0.0

	if budget > 0 && spent > budget {
		ratio := (spent - budget) / budget
		risk += math.Min(overspendCap, ratio*overspendScale)
	}

	if utilization >= 80 {
		switch {
		case progress <= 25:
			risk += stalledPenalty
		case progress <= 50:
			risk += laggingPenalty
		}
	}

	if gap := ExpectedProgress(p.StartDate, p.CompletionDate, now) - progress; gap > 0 {
		risk += math.Min(scheduleGapCap, gap*scheduleGapScale)
	}

	if p.CompletionDate != nil && now.After(*p.CompletionDate) && p.Status != model.StatusCompleted {
		risk += overduePenalty
	}

	if p.Status == model.StatusFlagged {
		risk += flaggedPenalty
	}

	if p.Status == model.StatusCompleted && utilization <= completedUtilMax {
		risk -= completedBonus
	}

	return clamp(risk)
}

// Performance is the citizen-facing inverse of risk.
func Performance(p model.Project, now time.Time) float64 {
	return clamp(100 - Risk(p, now))
}

// ExpectedProgress interpolates linearly between the start and completion
// dates against now, clamped to [0, 100]. Missing or inverted dates yield 0,
// treating the project as having no schedule to slip against.
func ExpectedProgress(start, end *time.Time, now time.Time) float64 {
	if start == nil || end == nil || !end.After(*start) {
		return 0
	}
	if !now.After(*start) {
		return 0
	}
	if !now.Before(*end) {
		return 100
	}
	elapsed := now.Sub(*start).Seconds()
	total := end.Sub(*start).Seconds()
	return clamp(elapsed / total * 100)
}

// ConstituencyScore aggregates the Project Accountability Score for a single
// constituency's projects: average risk and the share of flagged projects
// both pull the score down from 100.
func ConstituencyScore(projects []model.Project, now time.Time) float64 {
	if len(projects) == 0 {
		return 0
	}
	totalRisk := 0.0
	flagged := 0
	for _, p := range projects {
		totalRisk += Risk(p, now)
		if p.Status == model.StatusFlagged {
			flagged++
		}
	}
	avgRisk := totalRisk / float64(len(projects))
	flaggedShare := float64(flagged) / float64(len(projects))
	return clamp(100 - pasRiskWeight*avgRisk - pasFlaggedWeight*flaggedShare)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
