// Package tui provides the terminal user interface for taskdeck.
package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors (light/dark terminal detection).
var (
	ColorAccent   = lipgloss.AdaptiveColor{Light: "#0070F3", Dark: "#79C0FF"}
	ColorDueToday = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}
	ColorDueSoon  = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#7EE2B8"}
	ColorOverdue  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	ColorError    = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	ColorMuted    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorStatusBg = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	ColorStatusFg = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	ColorBorder   = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
)

// Component styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	DueTodayStyle = lipgloss.NewStyle().
			Foreground(ColorDueToday)

	DueSoonStyle = lipgloss.NewStyle().
			Foreground(ColorDueSoon)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(ColorOverdue)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorStatusBg).
			Foreground(ColorStatusFg).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent).
				Padding(0, 2)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)
)
