package tasks

import (
	"strings"
	"time"
)

// FilterType selects the status predicate of the filter pipeline.
type FilterType string

const (
	FilterAll      FilterType = "all"
	FilterActive   FilterType = "active"
	FilterFinished FilterType = "finished"
)

// Filter is the transient dashboard filter state. Applying it is a pure
// function of the full task collection; nothing is persisted.
type Filter struct {
	Query    string
	Category string
	Type     FilterType
}

/// Apply narrows the full collection, in order: status predicate,
// case-insensitive substring match on the title, then exact category
// match (skipped while no category is selected). The result is always
// a subset of ts.
func (f Filter) Apply(ts []Task) []Task {
	filtered := make([]Task, 0, len(ts))
	query := strings.ToLower(f.Query)

	for _, t := range ts {
		switch f.Type {
		case FilterActive:
			if !t.Status.Active() {
				continue
			}
		case FilterFinished:
			if t.Status != StatusCompleted {
				continue
			}
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Title), query) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Metrics are the dashboard aggregates, recomputed from the full
// collection on every render.
type Metrics struct {
	Total    int
	Active   int
	Finished int
}

// ComputeMetrics counts total, active (pending or in-progress) and
// finished (completed) tasks.
func ComputeMetrics(ts []Task) Metrics {
	m := Metrics{Total: len(ts)}
	for _, t := range ts {
		if t.Status.Active() {
			m.Active++
		} else if t.Status == StatusCompleted {
			m.Finished++
		}
	}
	return m
}

// DueState classifies a due date relative to a reference time.
// Presentation-only: it drives the color of the due-date label.
type DueState int

const (
	DueNone DueState = iota
	DueToday
	DueUpcoming
	DueOverdue
)

// DueStateOf compares dueDate (YYYY-MM-DD, empty = none) against now.
// Same calendar day is DueToday, strictly future is DueUpcoming,
// past is DueOverdue. Unparseable dates count as none.
func DueStateOf(dueDate string, now time.Time) DueState {
	if dueDate == "" {
		return DueNone
	}
	due, err := time.ParseInLocation("2006-01-02", dueDate[:min(10, len(dueDate))], now.Location())
	if err != nil {
		return DueNone
	}

	y1, m1, d1 := due.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return DueToday
	}
	if due.After(now) {
		return DueUpcoming
	}
	return DueOverdue
}
