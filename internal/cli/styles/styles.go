// Package styles provides Lip Gloss styling for command output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	TextMuted = lipgloss.Color("#9CA3AF") // Light gray

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	// Selected adventure row
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	// Regular adventure row
	Item = lipgloss.NewStyle()

	// Field label in show output
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	// Placeholder for empty values
	Placeholder = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)

	// Warnings
	Warning = lipgloss.NewStyle().
		Foreground(Error)

	// Turning point box
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)
)

// Value renders s, or a muted placeholder when s is empty.
func Value(s string) string {
	if s == "" {
		return Placeholder.Render("(empty)")
	}
	return s
}
