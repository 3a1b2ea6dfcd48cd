package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#10B981") // Green
	Accent     = lipgloss.Color("#F59E0B") // Amber
	Info       = lipgloss.Color("#06B6D4") // Cyan
	Danger     = lipgloss.Color("#EF4444") // Red
	MutedColor = lipgloss.Color("#6B7280") // Gray
	Subtle     = lipgloss.Color("#374151") // Dark gray

	// Muted style (for rendering)
	Muted = lipgloss.NewStyle().
		Foreground(MutedColor)

	// Status badges
	BadgeOK = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	BadgeInfo = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	BadgeWarn = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	BadgeFailed = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Banner
	Logo = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#000000")).
		Bold(true).
		Padding(0, 1)

	// Buttons
	SelectedItem = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Primary).
			Padding(0, 1)

	NormalItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	InfoValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Manifest panel
	ManifestBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(0, 1)
)

// FormatHelp formats help text with highlighted keys
func FormatHelp(pairs ...string) string {
	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += HelpKey.Render(pairs[i]) + " " + pairs[i+1]
	}
	return HelpBar.Render(result)
}
