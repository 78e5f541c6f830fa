package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
	"taskdeck/internal/tasks"
)

// dashboardView renders the task collection: metrics cards, search and
// category filters, the task list with expandable detail, and the
// editor / delete / logout dialogs.
type dashboardView struct {
	client   *api.Client
	sessions *session.Store
	cfg      *config.Config

	// Data. tasks is the authoritative client snapshot; filtered is
	// always derived from it through the filter pipeline.
	tasks            []tasks.Task
	filtered         []tasks.Task
	categories       []tasks.Category
	tasksLoaded      bool
	categoriesLoaded bool

	filter      tasks.Filter
	categoryIdx int // 0 = all categories, otherwise categories[categoryIdx-1]

	search        textinput.Model
	searchFocused bool
	spin          spinner.Model

	cursor     int
	expandedID string
	errMsg     string

	editor        *editorView
	confirmDelete *tasks.Task
	confirmLogout bool
	deleting      bool

	width  int
	height int
}

func newDashboardView(client *api.Client, sessions *session.Store, cfg *config.Config) *dashboardView {
	search := textinput.New()
	search.Placeholder = "Search tasks"
	search.CharLimit = 128
	search.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &dashboardView{
		client:   client,
		sessions: sessions,
		cfg:      cfg,
		filter:   tasks.Filter{Type: tasks.FilterAll},
		search:   search,
		spin:     sp,
		width:    80,
		height:   24,
	}
}

// Init fetches tasks and categories concurrently; the view renders
// progressively as each arrives.
func (v *dashboardView) Init() tea.Cmd {
	return tea.Batch(v.fetchTasks(), v.fetchCategories(), v.spin.Tick)
}

func (v *dashboardView) fetchTasks() tea.Cmd {
	client := v.client
	return func() tea.Msg {
		ts, err := client.ListTasks(context.Background())
		return TasksLoadedMsg{Tasks: ts, Err: err}
	}
}

func (v *dashboardView) fetchCategories() tea.Cmd {
	client := v.client
	return func() tea.Msg {
		cs, err := client.ListCategories(context.Background())
		return CategoriesLoadedMsg{Categories: cs, Err: err}
	}
}

func (v *dashboardView) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.search.Width = max(20, w/3)
}

func (v *dashboardView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		v.tasksLoaded = true
		if msg.Err != nil {
			v.errMsg = api.Message(msg.Err, "Failed to load tasks.")
			return nil
		}
		v.errMsg = ""
		v.tasks = msg.Tasks
		v.applyFilter()
		return nil

	case CategoriesLoadedMsg:
		v.categoriesLoaded = true
		if msg.Err != nil {
			// The category dropdown stays empty; tasks are unaffected.
			return nil
		}
		v.categories = msg.Categories
		return nil

	case TaskSavedMsg:
		if v.editor == nil {
			return nil
		}
		if msg.Err != nil {
			return v.editor.Update(msg)
		}
		// Refresh contract: a successful save closes the editor and
		// refetches the full collection from the server.
		v.editor = nil
		return v.fetchTasks()

	case TaskDeletedMsg:
		v.deleting = false
		if msg.Err != nil {
			// The failed delete leaves the task in place.
			v.errMsg = api.Message(msg.Err, "Failed to delete task.")
			v.confirmDelete = nil
			return nil
		}
		v.removeTask(msg.ID)
		v.confirmDelete = nil
		return nil

	case spinner.TickMsg:
		if v.tasksLoaded && v.categoriesLoaded {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	if v.editor != nil {
		return v.editor.Update(msg)
	}
	return nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Dialogs take precedence over the list.
	if v.editor != nil {
		if msg.String() == "esc" {
			v.editor = nil
			return nil
		}
		return v.editor.Update(msg)
	}
	if v.confirmDelete != nil {
		return v.handleDeleteConfirmKey(msg)
	}
	if v.confirmLogout {
		return v.handleLogoutConfirmKey(msg)
	}

	if v.searchFocused {
		switch msg.String() {
		case "esc", "enter":
			v.searchFocused = false
			v.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		// Typing reapplies the pipeline under the current sticky type.
		v.filter.Query = v.search.Value()
		v.applyFilter()
		return cmd
	}

	switch msg.String() {
	case "/":
		v.searchFocused = true
		return v.search.Focus()
	case "1":
		v.setFilterType(tasks.FilterAll)
	case "2":
		v.setFilterType(tasks.FilterActive)
	case "3":
		v.setFilterType(tasks.FilterFinished)
	case "c":
		v.cycleCategory()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.filtered)-1 {
			v.cursor++
		}
	case "enter", " ":
		v.toggleExpand()
	case "a":
		v.editor = newEditorView(v.client, v.categories, nil)
	case "e":
		if t := v.selected(); t != nil {
			edit := *t
			v.editor = newEditorView(v.client, v.categories, &edit)
		}
	case "d":
		if t := v.selected(); t != nil {
			doomed := *t
			v.confirmDelete = &doomed
		}
	case "r":
		v.tasksLoaded = false
		return tea.Batch(v.fetchTasks(), v.spin.Tick)
	case "ctrl+l":
		v.confirmLogout = true
	}
	return nil
}

func (v *dashboardView) handleDeleteConfirmKey(msg tea.KeyMsg) tea.Cmd {
	if v.deleting {
		return nil
	}
	switch msg.String() {
	case "y", "enter":
		v.deleting = true
		client := v.client
		id := v.confirmDelete.ID
		return func() tea.Msg {
			err := client.DeleteTask(context.Background(), id)
			return TaskDeletedMsg{ID: id, Err: err}
		}
	case "n", "esc":
		v.confirmDelete = nil
	}
	return nil
}

func (v *dashboardView) handleLogoutConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		v.confirmLogout = false
		client := v.client
		return func() tea.Msg {
			// Best-effort: the local session is cleared even when the
			// server call fails.
			err := client.Logout(context.Background())
			return LoggedOutMsg{Err: err}
		}
	case "n", "esc":
		v.confirmLogout = false
	}
	return nil
}

func (v *dashboardView) setFilterType(ft tasks.FilterType) {
	v.filter.Type = ft
	v.applyFilter()
}

func (v *dashboardView) cycleCategory() {
	v.categoryIdx = (v.categoryIdx + 1) % (len(v.categories) + 1)
	if v.categoryIdx == 0 {
		v.filter.Category = ""
	} else {
		v.filter.Category = v.categories[v.categoryIdx-1].ID
	}
	v.applyFilter()
}

// applyFilter recomputes the visible list from the full collection.
func (v *dashboardView) applyFilter() {
	v.filtered = v.filter.Apply(v.tasks)
	if v.cursor >= len(v.filtered) {
		v.cursor = len(v.filtered) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// removeTask drops a confirmed-deleted task from both the full and the
// filtered collections without a refetch.
func (v *dashboardView) removeTask(id string) {
	v.tasks = deleteByID(v.tasks, id)
	v.filtered = deleteByID(v.filtered, id)
	if v.cursor >= len(v.filtered) && v.cursor > 0 {
		v.cursor--
	}
	if v.expandedID == id {
		v.expandedID = ""
	}
}

func deleteByID(ts []tasks.Task, id string) []tasks.Task {
	out := ts[:0]
	for _, t := range ts {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func (v *dashboardView) selected() *tasks.Task {
	if v.cursor < 0 || v.cursor >= len(v.filtered) {
		return nil
	}
	return &v.filtered[v.cursor]
}

func (v *dashboardView) toggleExpand() {
	t := v.selected()
	if t == nil {
		return
	}
	if v.expandedID == t.ID {
		v.expandedID = ""
	} else {
		v.expandedID = t.ID
	}
}

func (v *dashboardView) View() string {
	if v.editor != nil {
		return v.editor.View()
	}
	if v.confirmDelete != nil {
		body := fmt.Sprintf("Are you sure you want to delete the task %q?", v.confirmDelete.Title)
		hint := "y: delete • n: cancel"
		if v.deleting {
			hint = "Deleting..."
		}
		return DialogStyle.Render(TitleStyle.Render("Confirm Delete") + "\n\n" + body + "\n\n" + MutedStyle.Render(hint))
	}
	if v.confirmLogout {
		return DialogStyle.Render(TitleStyle.Render("Confirm Logout") + "\n\nAre you sure you want to log out?\n\n" + MutedStyle.Render("y: log out • n: cancel"))
	}

	var b strings.Builder
	b.WriteString(v.metricsView())
	b.WriteString("\n")
	b.WriteString(v.filterBarView())
	b.WriteString("\n\n")
	b.WriteString(v.listView())
	b.WriteString("\n")
	b.WriteString(v.statusBarView())
	return b.String()
}

func (v *dashboardView) metricsView() string {
	m := tasks.ComputeMetrics(v.tasks)

	card := func(label string, n int, ft tasks.FilterType, key string) string {
		content := fmt.Sprintf("%s (%s)\n%d", label, key, n)
		if v.filter.Type == ft {
			return CardSelectedStyle.Render(content)
		}
		return CardStyle.Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tasks", m.Total, tasks.FilterAll, "1"),
		" ",
		card("Active Tasks", m.Active, tasks.FilterActive, "2"),
		" ",
		card("Finished Tasks", m.Finished, tasks.FilterFinished, "3"),
	)
}

func (v *dashboardView) filterBarView() string {
	categoryLabel := "All Categories"
	if v.categoryIdx > 0 && v.categoryIdx <= len(v.categories) {
		categoryLabel = v.categories[v.categoryIdx-1].Name
	}
	if !v.categoriesLoaded {
		categoryLabel = v.spin.View() + " loading"
	}
	return v.search.View() + "   " + MutedStyle.Render("category: ") + categoryLabel
}

func (v *dashboardView) listView() string {
	if !v.tasksLoaded {
		return v.spin.View() + " Loading tasks..."
	}
	if v.errMsg != "" {
		return ErrorStyle.Render(v.errMsg)
	}
	if len(v.filtered) == 0 {
		return MutedStyle.Render("No tasks match the current filters.")
	}

	now := time.Now()
	var b strings.Builder
	for i, t := range v.filtered {
		b.WriteString(v.taskLine(i, t, now))
		if t.ID == v.expandedID {
			b.WriteString(v.taskDetail(t))
		}
	}
	return b.String()
}

func (v *dashboardView) taskLine(i int, t tasks.Task, now time.Time) string {
	prefix := "  "
	if i == v.cursor {
		prefix = SelectedStyle.Render("> ")
	}

	title := t.Title
	if t.Status == tasks.StatusCompleted {
		title = CompletedStyle.Render(title)
	} else if i == v.cursor {
		title = SelectedStyle.Render(title)
	}

	return prefix + title + "  " + v.dueLabel(t, now) + "\n"
}

// dueLabel renders the due date with the sentinel for missing dates and
// a color derived from comparing the date to today.
func (v *dashboardView) dueLabel(t tasks.Task, now time.Time) string {
	switch tasks.DueStateOf(t.DueDate, now) {
	case tasks.DueNone:
		return MutedStyle.Render(v.cfg.UI.DueDateSentinel)
	case tasks.DueToday:
		return DueTodayStyle.Render(t.DueDate)
	case tasks.DueUpcoming:
		return DueSoonStyle.Render(t.DueDate)
	default:
		return OverdueStyle.Render(t.DueDate)
	}
}

func (v *dashboardView) taskDetail(t tasks.Task) string {
	var lines []string

	description := t.Description
	if description == "" {
		description = MutedStyle.Render("(no description)")
	} else if v.cfg.UI.RenderMarkdown() {
		description = renderMarkdown(description, max(20, v.width-8))
	}
	lines = append(lines, description)

	meta := fmt.Sprintf("status: %s • priority: %s • category: %s",
		t.Status, t.Priority, tasks.CategoryName(t.Category, v.categories))
	lines = append(lines, MutedStyle.Render(meta))

	detail := lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(lines, "\n"))
	return detail + "\n"
}

func (v *dashboardView) statusBarView() string {
	help := "/: search • c: category • 1/2/3: filter cards • a: add • e: edit • d: delete • r: refresh • ctrl+l: logout • q: quit"
	return StatusBarStyle.Width(v.width).Render(help)
}
