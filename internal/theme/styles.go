package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tilpconnect/tilp/internal/domain"
)

// Main styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorCreated)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Table styles
var (
	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Padding(0, 1)
)

// OutcomeStyle returns the style of a sync outcome
func OutcomeStyle(outcome domain.SyncOutcome) lipgloss.Style {
	switch outcome {
	case domain.SyncCreated:
		return lipgloss.NewStyle().Foreground(ColorCreated)
	case domain.SyncUpdated:
		return lipgloss.NewStyle().Foreground(ColorUpdated)
	case domain.SyncFailed:
		return lipgloss.NewStyle().Foreground(ColorFailed).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorUnchanged)
}

// RoleStyle returns the style of a role badge
func RoleStyle(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleAdmin:
		return lipgloss.NewStyle().Foreground(ColorAdmin).Bold(true)
	case domain.RoleStaff:
		return lipgloss.NewStyle().Foreground(ColorStaff)
	case domain.RoleParent:
		return lipgloss.NewStyle().Foreground(ColorParent)
	}
	return MutedStyle
}
