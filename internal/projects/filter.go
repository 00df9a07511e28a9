package projects

import (
	"slices"
	"strings"
	"time"

	"myfuture/pkg/types"
)

type Status string

const (
	StatusCompleted    Status = "completed"
	StatusNotCompleted Status = "notCompleted"
	StatusBoth         Status = "both"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusCompleted, StatusNotCompleted, StatusBoth:
		return Status(s), true
	}
	return "", false
}

// Filter narrows a project list for display. Active predicates are
// ANDed together; each absent field imposes no constraint.
type Filter struct {
	// Search is matched case-insensitively as a substring of the name,
	// description, or category.
	Search string

	// After and Before are inclusive bounds on DateStarted.
	After  *time.Time
	Before *time.Time

	// Categories holds the selected category labels. An empty selection
	// means no restriction: selecting nothing is selecting everything.
	Categories []string

	Status Status
}

// NewFilter returns the reset state: no search text, no date bounds, no
// categories selected, both statuses.
func NewFilter() Filter {
	return Filter{Status: StatusBoth}
}

// Match reports whether a single project satisfies every active predicate.
func (f Filter) Match(p types.Project) bool {
	query := strings.ToLower(f.Search)
	includesQuery := strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)

	startDateInRange := (f.After == nil || !p.DateStarted.Before(*f.After)) &&
		(f.Before == nil || !p.DateStarted.After(*f.Before))

	categorySelected := len(f.Categories) == 0 || slices.Contains(f.Categories, p.Category)

	var correctStatus bool
	switch f.Status {
	case StatusCompleted:
		correctStatus = p.Completed()
	case StatusNotCompleted:
		correctStatus = !p.Completed()
	default:
		correctStatus = true
	}

	return includesQuery && startDateInRange && categorySelected && correctStatus
}

// Apply returns the subset of list passing the filter, preserving the
// original relative order. Pure; the input is never modified.
func Apply(list []types.Project, f Filter) []types.Project {
	out := make([]types.Project, 0, len(list))
	for _, p := range list {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// PercentComplete returns progress/goal clamped to [0, 1]. A goal of
// zero yields 0 rather than NaN or Inf.
func PercentComplete(p types.Project) float64 {
	if p.Goal <= 0 {
		return 0
	}

	percent := float64(p.Progress) / float64(p.Goal)
	if percent < 0 {
		return 0
	}
	if percent > 1 {
		return 1
	}
	return percent
}
