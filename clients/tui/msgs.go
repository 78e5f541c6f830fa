package tui

import "taskdeck/internal/tasks"

// AuthErrorMsg carries the inline message for a failed login or register.
type AuthErrorMsg struct {
	Message string
}

// TasksLoadedMsg delivers the full task collection (or the fetch error).
type TasksLoadedMsg struct {
	Tasks []tasks.Task
	Err   error
}

// CategoriesLoadedMsg delivers the category list (or the fetch error).
type CategoriesLoadedMsg struct {
	Categories []tasks.Category
	Err        error
}

// TaskSavedMsg reports the outcome of a create or update submission.
type TaskSavedMsg struct {
	Err error
}

// TaskDeletedMsg reports the outcome of a confirmed delete.
type TaskDeletedMsg struct {
	ID  string
	Err error
}

// LoggedOutMsg reports that logout finished. The server call is
// best-effort; the local session is cleared either way.
type LoggedOutMsg struct {
	Err error
}
