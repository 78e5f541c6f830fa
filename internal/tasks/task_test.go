package tasks

import (
	"encoding/json"
	"strings"
	"testing"
)

var testCategories = []Category{
	{ID: "c1", Name: "Work"},
	{ID: "c2", Name: "Home"},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr string
	}{
		{"valid", Task{Title: "Do it", Category: "c1"}, ""},
		{"empty title", Task{Title: "", Category: "c1"}, "title is required"},
		{"whitespace title", Task{Title: "   ", Category: "c1"}, "title is required"},
		{"missing category", Task{Title: "Do it"}, "category is required"},
		{"unknown category", Task{Title: "Do it", Category: "c9"}, "unknown category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate(testCategories)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Priority("urgent").Valid() {
		t.Error("unknown priority should be invalid")
	}
}

func TestTaskWireFormat(t *testing.T) {
	payload := `{"_id":"t1","title":"Ship it","status":"in-progress","category":"c1","priority":"high","dueDate":"2026-04-01"}`

	var task Task
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if task.ID != "t1" {
		t.Errorf("ID = %q, want t1 (from _id)", task.ID)
	}
	if task.Status != StatusInProgress {
		t.Errorf("Status = %q, want in-progress", task.Status)
	}

	out, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"_id":"t1"`) {
		t.Errorf("marshal dropped _id: %s", out)
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName("c2", testCategories); got != "Home" {
		t.Errorf("CategoryName = %q, want Home", got)
	}
	if got := CategoryName("c9", testCategories); got != "c9" {
		t.Errorf("CategoryName fallback = %q, want c9", got)
	}
}
