package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Sync outcome colors
const (
	ColorCreated   Color = "2"   // Green
	ColorFailed    Color = "1"   // Red
	ColorUnchanged Color = "8"   // Gray
	ColorUpdated   Color = "214" // Orange
)

// Role colors
const (
	ColorAdmin  Color = "141" // Purple
	ColorParent Color = "33"  // Blue
	ColorStaff  Color = "46"  // Green
)

// UI semantic colors
const (
	ColorBorder    Color = "238" // Table borders
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorWarning   Color = "226" // Yellow
)
