// Package signals implements the rule-based review heuristics that scan the
// project corpus for procurement patterns worth a second look. A signal is a
// prompt for manual review, not a finding of wrongdoing; the rules are fixed
// thresholds, not a statistical model.
package signals

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

type Signal struct {
	Level             Level    `json:"level"`
	Title             string   `json:"title"`
	Reason            string   `json:"reason"`
	Evidence          []string `json:"evidence"`
	RecommendedAction string   `json:"recommended_action"`
}

// Detection thresholds.
const (
	concentrationMedium = 0.35
	concentrationHigh   = 0.55
	repeatFlagsMedium   = 2
	repeatFlagsHigh     = 3
	budgetProximity     = 0.10
	titleOverlapMin     = 0.60
	minDescriptionRunes = 40
)

// Detect runs every detector for one project against the full dataset.
func Detect(p model.ProjectDetail, all []model.ProjectDetail) []Signal {
	out := make([]Signal, 0, 4)
	if s := ContractorConcentration(p, all); s != nil {
		out = append(out, *s)
	}
	if s := RepeatedFlags(p, all); s != nil {
		out = append(out, *s)
	}
	if s := CrossConstituencyPattern(p, all); s != nil {
		out = append(out, *s)
	}
	if s := SimilarProjects(p, all); s != nil {
		out = append(out, *s)
	}
	if s := DescriptionCompleteness(p); s != nil {
		out = append(out, *s)
	}
	return out
}

// ContractorConcentration flags a contractor holding a large share of a
// constituency's projects.
func ContractorConcentration(p model.ProjectDetail, all []model.ProjectDetail) *Signal {
	contractor := contractorOf(p)
	if contractor == "" {
		return nil
	}

	inConstituency := 0
	sameContractor := 0
	for _, other := range all {
		if other.ConstituencyCode != p.ConstituencyCode {
			continue
		}
		inConstituency++
		if contractorOf(other) == contractor {
			sameContractor++
		}
	}
	if inConstituency == 0 {
		return nil
	}

	share := float64(sameContractor) / float64(inConstituency)
	level := Level("")
	switch {
	case share >= concentrationHigh:
		level = LevelHigh
	case share >= concentrationMedium:
		level = LevelMedium
	default:
		return nil
	}

	return &Signal{
		Level: level,
		Title: "Contractor concentration",
		Reason: fmt.Sprintf("%s holds %d of %d projects (%.0f%%) in this constituency",
			displayName(p), sameContractor, inConstituency, share*100),
		Evidence: []string{
			fmt.Sprintf("projects in constituency: %d", inConstituency),
			fmt.Sprintf("projects with this contractor: %d", sameContractor),
		},
		RecommendedAction: "Review the tender history for this constituency and contractor pairing.",
	}
}

// RepeatedFlags counts flagged projects sharing the project's contractor.
func RepeatedFlags(p model.ProjectDetail, all []model.ProjectDetail) *Signal {
	contractor := contractorOf(p)
	if contractor == "" {
		return nil
	}

	var flaggedTitles []string
	for _, other := range all {
		if contractorOf(other) == contractor && other.Status == model.StatusFlagged {
			flaggedTitles = append(flaggedTitles, other.Title)
		}
	}

	level := Level("")
	switch {
	case len(flaggedTitles) >= repeatFlagsHigh:
		level = LevelHigh
	case len(flaggedTitles) >= repeatFlagsMedium:
		level = LevelMedium
	default:
		return nil
	}

	sort.Strings(flaggedTitles)
	return &Signal{
		Level: level,
		Title: "Repeatedly flagged contractor",
		Reason: fmt.Sprintf("%s appears on %d flagged projects",
			displayName(p), len(flaggedTitles)),
		Evidence:          flaggedTitles,
		RecommendedAction: "Audit the flagged projects before approving further awards to this contractor.",
	}
}

// CrossConstituencyPattern reports a contractor who operates in at least two
// other constituencies and has a flagged project elsewhere.
func CrossConstituencyPattern(p model.ProjectDetail, all []model.ProjectDetail) *Signal {
	contractor := contractorOf(p)
	if contractor == "" {
		return nil
	}

	otherConstituencies := map[string]bool{}
	flaggedElsewhere := 0
	for _, other := range all {
		if contractorOf(other) != contractor || other.ConstituencyCode == p.ConstituencyCode {
			continue
		}
		otherConstituencies[other.ConstituencyCode] = true
		if other.Status == model.StatusFlagged {
			flaggedElsewhere++
		}
	}
	if len(otherConstituencies) < 2 || flaggedElsewhere < 1 {
		return nil
	}

	codes := make([]string, 0, len(otherConstituencies))
	for code := range otherConstituencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return &Signal{
		Level: LevelMedium,
		Title: "Cross-constituency pattern",
		Reason: fmt.Sprintf("%s is active in %d other constituencies with %d flagged project(s) elsewhere",
			displayName(p), len(codes), flaggedElsewhere),
		Evidence:          codes,
		RecommendedAction: "Compare this contractor's delivery record across constituencies.",
	}
}

// SimilarProjects clusters projects whose normalized titles overlap heavily
// and whose budgets sit within 10% of each other.
func SimilarProjects(p model.ProjectDetail, all []model.ProjectDetail) *Signal {
	tokens := normalizeTitle(p.Title)
	if len(tokens) == 0 || p.Budget <= 0 {
		return nil
	}

	var matches []string
	for _, other := range all {
		if other.ID == p.ID {
			continue
		}
		if other.Budget <= 0 {
			continue
		}
		delta := (other.Budget - p.Budget) / p.Budget
		if delta < 0 {
			delta = -delta
		}
		if delta > budgetProximity {
			continue
		}
		if tokenOverlap(tokens, normalizeTitle(other.Title)) >= titleOverlapMin {
			matches = append(matches, fmt.Sprintf("%s (%s)", other.Title, other.ConstituencyCode))
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.Strings(matches)
	return &Signal{
		Level: LevelMedium,
		Title: "Similar title and budget cluster",
		Reason: fmt.Sprintf("%d project(s) share near-identical titles and budgets within %.0f%%",
			len(matches), budgetProximity*100),
		Evidence:          matches,
		RecommendedAction: "Check whether these entries describe distinct works or duplicate allocations.",
	}
}

// DescriptionCompleteness is a trivial presence check.
func DescriptionCompleteness(p model.ProjectDetail) *Signal {
	desc := ""
	if p.Description != nil {
		desc = strings.TrimSpace(*p.Description)
	}
	if len([]rune(desc)) >= minDescriptionRunes {
		return nil
	}
	return &Signal{
		Level:             LevelLow,
		Title:             "Incomplete project description",
		Reason:            "The public record lacks a substantive description of the works.",
		Evidence:          []string{fmt.Sprintf("description length: %d characters", len([]rune(desc)))},
		RecommendedAction: "Request a full scope description from the fund office.",
	}
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "for": true, "in": true,
	"of": true, "on": true, "the": true, "to": true, "phase": true,
	"project": true, "construction": true,
}

func normalizeTitle(title string) map[string]bool {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	tokens := map[string]bool{}
	for _, tok := range strings.Fields(b.String()) {
		if !stopWords[tok] {
			tokens[tok] = true
		}
	}
	return tokens
}

// tokenOverlap is the Jaccard index of two token sets.
func tokenOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for tok := range a {
		if b[tok] {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func contractorOf(p model.ProjectDetail) string {
	if p.ContractorName == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*p.ContractorName))
}

func displayName(p model.ProjectDetail) string {
	if p.ContractorName == nil {
		return "contractor"
	}
	return strings.TrimSpace(*p.ContractorName)
}
