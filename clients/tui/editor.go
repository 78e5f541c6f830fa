package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/tasks"
)

// Editor focus slots, in tab order.
const (
	editorFocusTitle = iota
	editorFocusDescription
	editorFocusStatus
	editorFocusPriority
	editorFocusCategory
	editorFocusDueDate
	editorFocusCount
)

var (
	statusChoices   = []tasks.Status{tasks.StatusPending, tasks.StatusInProgress, tasks.StatusCompleted}
	priorityChoices = []tasks.Priority{tasks.PriorityLow, tasks.PriorityMedium, tasks.PriorityHigh}
)

// editorView is the task form, shared by create and update. The mode is
// keyed by whether a task is being edited.
type editorView struct {
	client     *api.Client
	categories []tasks.Category
	editing    *tasks.Task // nil = create

	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	statusIdx   int
	priorityIdx int
	categoryIdx int // index into categories, -1 when none selected

	focus    int
	errMsg   string
	inFlight bool
}

func newEditorView(client *api.Client, categories []tasks.Category, editing *tasks.Task) *editorView {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Description"
	description.CharLimit = 1024

	dueDate := textinput.New()
	dueDate.Placeholder = "Due date (YYYY-MM-DD)"
	dueDate.CharLimit = 10

	v := &editorView{
		client:      client,
		categories:  categories,
		editing:     editing,
		title:       title,
		description: description,
		dueDate:     dueDate,
		categoryIdx: -1,
	}

	if editing != nil {
		v.title.SetValue(editing.Title)
		v.description.SetValue(editing.Description)
		v.dueDate.SetValue(editing.DueDate)
		v.statusIdx = indexOfStatus(editing.Status)
		v.priorityIdx = indexOfPriority(editing.Priority)
		for i, c := range categories {
			if c.ID == editing.Category {
				v.categoryIdx = i
				break
			}
		}
	}
	// Creation defaults: status pending, priority low (indexes 0).
	return v
}

func indexOfStatus(s tasks.Status) int {
	for i, c := range statusChoices {
		if c == s {
			return i
		}
	}
	return 0
}

func indexOfPriority(p tasks.Priority) int {
	for i, c := range priorityChoices {
		if c == p {
			return i
		}
	}
	return 0
}

func (v *editorView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.inFlight {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus((v.focus + 1) % editorFocusCount)
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + editorFocusCount - 1) % editorFocusCount)
			return nil
		case "left", "right":
			if v.cycleChoice(msg.String() == "right") {
				return nil
			}
		case "enter", "ctrl+s":
			return v.submit()
		}

	case TaskSavedMsg:
		// Failure keeps the form open with its data so the user can retry.
		v.inFlight = false
		if msg.Err != nil {
			v.errMsg = "An error occurred while saving the task. Please try again."
		}
		return nil
	}

	var cmd tea.Cmd
	switch v.focus {
	case editorFocusTitle:
		v.title, cmd = v.title.Update(msg)
	case editorFocusDescription:
		v.description, cmd = v.description.Update(msg)
	case editorFocusDueDate:
		v.dueDate, cmd = v.dueDate.Update(msg)
	}
	return cmd
}

func (v *editorView) setFocus(i int) {
	v.title.Blur()
	v.description.Blur()
	v.dueDate.Blur()
	v.focus = i
	switch i {
	case editorFocusTitle:
		v.title.Focus()
	case editorFocusDescription:
		v.description.Focus()
	case editorFocusDueDate:
		v.dueDate.Focus()
	}
}

// cycleChoice moves the focused select field. Returns false when the
// focused field is a text input (so arrows reach the input instead).
func (v *editorView) cycleChoice(forward bool) bool {
	step := 1
	if !forward {
		step = -1
	}
	switch v.focus {
	case editorFocusStatus:
		v.statusIdx = (v.statusIdx + step + len(statusChoices)) % len(statusChoices)
	case editorFocusPriority:
		v.priorityIdx = (v.priorityIdx + step + len(priorityChoices)) % len(priorityChoices)
	case editorFocusCategory:
		if len(v.categories) == 0 {
			return true
		}
		if v.categoryIdx < 0 {
			v.categoryIdx = 0
		} else {
			v.categoryIdx = (v.categoryIdx + step + len(v.categories)) % len(v.categories)
		}
	default:
		return false
	}
	return true
}

// task assembles the form fields into the task to submit.
func (v *editorView) task() tasks.Task {
	t := tasks.Task{
		Title:       strings.TrimSpace(v.title.Value()),
		Description: v.description.Value(),
		Status:      statusChoices[v.statusIdx],
		Priority:    priorityChoices[v.priorityIdx],
		DueDate:     strings.TrimSpace(v.dueDate.Value()),
	}
	if v.categoryIdx >= 0 && v.categoryIdx < len(v.categories) {
		t.Category = v.categories[v.categoryIdx].ID
	}
	if v.editing != nil {
		t.ID = v.editing.ID
	}
	return t
}

func (v *editorView) submit() tea.Cmd {
	t := v.task()

	// Required-field check first: no network call on a validation miss.
	if err := t.Validate(v.categories); err != nil {
		v.errMsg = capitalize(err.Error()) + "."
		return nil
	}

	v.errMsg = ""
	v.inFlight = true
	client := v.client
	editing := v.editing
	return func() tea.Msg {
		var err error
		if editing != nil {
			_, err = client.UpdateTask(context.Background(), editing.ID, t)
		} else {
			_, err = client.CreateTask(context.Background(), t)
		}
		return TaskSavedMsg{Err: err}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (v *editorView) View() string {
	var b strings.Builder

	if v.editing != nil {
		b.WriteString(TitleStyle.Render("Update Task"))
	} else {
		b.WriteString(TitleStyle.Render("Add Task"))
	}
	b.WriteString("\n\n")

	b.WriteString(v.title.View() + "\n")
	b.WriteString(v.description.View() + "\n")
	b.WriteString(v.selectLine(editorFocusStatus, "Status", string(statusChoices[v.statusIdx])))
	b.WriteString(v.selectLine(editorFocusPriority, "Priority", string(priorityChoices[v.priorityIdx])))
	b.WriteString(v.selectLine(editorFocusCategory, "Category", v.categoryLabel()))
	b.WriteString(v.dueDate.View() + "\n")

	if v.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(v.errMsg) + "\n")
	}
	if v.inFlight {
		b.WriteString("\n" + MutedStyle.Render("Saving...") + "\n")
	}

	b.WriteString("\n" + MutedStyle.Render("enter: save • ←/→: change selection • esc: cancel"))
	return DialogStyle.Render(b.String())
}

func (v *editorView) categoryLabel() string {
	if v.categoryIdx < 0 || v.categoryIdx >= len(v.categories) {
		return "(select a category)"
	}
	return v.categories[v.categoryIdx].Name
}

func (v *editorView) selectLine(focus int, label, value string) string {
	line := label + ": " + value
	if v.focus == focus {
		return SelectedStyle.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}
