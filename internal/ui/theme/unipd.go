package theme

import "github.com/charmbracelet/lipgloss"

const (
	Dark  = "unipd-dark"
	Light = "unipd-light"
)

var (
	Primary = lipgloss.Color("#9B0014")
	Accent  = lipgloss.Color("#213B4A")
	Warning = lipgloss.Color("#E2B602")
	Error   = lipgloss.Color("#4F010B")
	Success = lipgloss.Color("#009B14")

	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color

	// Series colours for charts, in slice order.
	Series []lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
)

func init() { Use(Dark) }

// Use switches every colour and style to the named palette. Unknown names
// fall back to the dark palette. Call it before building any view.
func Use(name string) {
	switch name {
	case Light:
		Base = lipgloss.Color("#F0F0F0")
		Mantle = lipgloss.Color("#E2E2E2")
		Surface1 = lipgloss.Color("#B8BCC2")
		Text = lipgloss.Color("#484F59")
		Subtext0 = lipgloss.Color("#7A818C")
		Error = lipgloss.Color("#4F010B")
	default:
		Base = lipgloss.Color("#0A0A0A")
		Mantle = lipgloss.Color("#161616")
		Surface1 = lipgloss.Color("#3A3A3A")
		Text = lipgloss.Color("#F0F0F0")
		Subtext0 = lipgloss.Color("#9A9A9A")
		Error = lipgloss.Color("#E0455A")
	}
	Series = []lipgloss.Color{
		Primary, lipgloss.Color("#3E7CA6"), Warning, Success,
		lipgloss.Color("#C96F2D"), lipgloss.Color("#7A5195"), lipgloss.Color("#2E8B8B"), Subtext0,
	}

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Primary)

	Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Success)
	Bad = lipgloss.NewStyle().Foreground(Error).Bold(true)
}

// SeriesColor cycles through Series.
func SeriesColor(i int) lipgloss.Color {
	return Series[i%len(Series)]
}
