// Package tasks defines the task domain model and the dashboard filter pipeline.
package tasks

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether the task still needs work.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusInProgress
}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a user-created unit of work. The authoritative copy lives
// server-side; clients hold a snapshot refreshed after mutations.
// Field names follow the wire format of the task API (`_id` ids,
// YYYY-MM-DD due dates, empty = none).
type Task struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate,omitempty"`
}

// Category is a named grouping tasks can be filtered by. Read-only
// from the client's perspective.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Validate checks the fields required before a create or update is sent.
// Title must be non-empty after trimming and the category must reference
// one of the known categories.
func (t Task) Validate(categories []Category) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if t.Category == "" {
		return fmt.Errorf("category is required")
	}
	for _, c := range categories {
		if c.ID == t.Category {
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", t.Category)
}

// CategoryName resolves a category id to its name, falling back to the id.
func CategoryName(id string, categories []Category) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
