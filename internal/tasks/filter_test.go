package tasks

import (
	"testing"
	"time"
)

var collection = []Task{
	{ID: "t1", Title: "Write report", Status: StatusPending, Category: "work"},
	{ID: "t2", Title: "Review report", Status: StatusInProgress, Category: "work"},
	{ID: "t3", Title: "Buy groceries", Status: StatusCompleted, Category: "home"},
	{ID: "t4", Title: "Clean kitchen", Status: StatusPending, Category: "home"},
	{ID: "t5", Title: "File report", Status: StatusCompleted, Category: "work"},
}

func ids(ts []Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{Type: FilterAll}, []string{"t1", "t2", "t3", "t4", "t5"}},
		{"active only", Filter{Type: FilterActive}, []string{"t1", "t2", "t4"}},
		{"finished only", Filter{Type: FilterFinished}, []string{"t3", "t5"}},
		{"query is case-insensitive", Filter{Type: FilterAll, Query: "REPORT"}, []string{"t1", "t2", "t5"}},
		{"category exact match", Filter{Type: FilterAll, Category: "home"}, []string{"t3", "t4"}},
		{"query under sticky finished type", Filter{Type: FilterFinished, Query: "report"}, []string{"t5"}},
		{"all three predicates", Filter{Type: FilterActive, Query: "report", Category: "work"}, []string{"t1", "t2"}},
		{"no matches", Filter{Type: FilterAll, Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(collection))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApplySubsetInvariant(t *testing.T) {
	filters := []Filter{
		{Type: FilterAll},
		{Type: FilterActive, Query: "re"},
		{Type: FilterFinished, Category: "work"},
		{Type: FilterAll, Query: "kitchen", Category: "home"},
	}

	full := make(map[string]bool, len(collection))
	for _, task := range collection {
		full[task.ID] = true
	}

	for _, f := range filters {
		for _, task := range f.Apply(collection) {
			if !full[task.ID] {
				t.Errorf("filter %+v produced task %s absent from the full collection", f, task.ID)
			}
		}
	}
}

func TestApplyIdempotent(t *testing.T) {
	f := Filter{Type: FilterActive, Query: "report", Category: "work"}

	first := f.Apply(collection)
	second := f.Apply(collection)

	if len(first) != len(second) {
		t.Fatalf("re-applying changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("re-applying changed order at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	// Applying the filter to its own output changes nothing either.
	again := f.Apply(first)
	if len(again) != len(first) {
		t.Errorf("filter not idempotent on its own output: %d vs %d", len(again), len(first))
	}
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(collection)

	if m.Total != 5 {
		t.Errorf("Total = %d, want 5", m.Total)
	}
	if m.Active != 3 {
		t.Errorf("Active = %d, want 3", m.Active)
	}
	if m.Finished != 2 {
		t.Errorf("Finished = %d, want 2", m.Finished)
	}
	if m.Active+m.Finished > m.Total {
		t.Error("active + finished exceeds total")
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.Total != 0 || m.Active != 0 || m.Finished != 0 {
		t.Errorf("metrics of empty collection = %+v, want zeros", m)
	}
}

func TestDueStateOf(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate string
		want    DueState
	}{
		{"no due date", "", DueNone},
		{"due today", "2026-03-15", DueToday},
		{"due tomorrow", "2026-03-16", DueUpcoming},
		{"due next month", "2026-04-01", DueUpcoming},
		{"overdue yesterday", "2026-03-14", DueOverdue},
		{"long overdue", "2025-12-31", DueOverdue},
		{"timestamp suffix ignored", "2026-03-15T00:00:00.000Z", DueToday},
		{"garbage", "not-a-date", DueNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DueStateOf(tt.dueDate, now); got != tt.want {
				t.Errorf("DueStateOf(%q) = %d, want %d", tt.dueDate, got, tt.want)
			}
		})
	}
}
