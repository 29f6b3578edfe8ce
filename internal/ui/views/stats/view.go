package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "studytime/internal/modules/stats/dto"
	"studytime/internal/ui/chart"
	"studytime/internal/ui/format"
	"studytime/internal/ui/theme"
)

const (
	pieRadius = 7
	barHeight = 10
)

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	Report(ctx context.Context, days int) (statsdto.ReportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ReportLoadedMsg struct {
	Report statsdto.ReportOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    StatsPort
	days    int
	report  statsdto.ReportOutput
	err     error
	vp      viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port StatsPort, days int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return Model{port: port, days: days, vp: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height
		m.vp.SetContent(m.render())
		return m, nil

	case ReportLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.report = msg.Report
		}
		m.vp.SetContent(m.render())
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Crunching numbers…")
	}
	return m.vp.View()
}

// Reload recomputes the report.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Report(context.Background(), m.days)
		return ReportLoadedMsg{Report: report, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render(m.err.Error())
	}
	r := m.report

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Statistics") + "  ")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s over %d sessions", format.Duration(r.Overall), r.Sessions)))
	if r.Stale {
		sb.WriteString("  " + theme.Hot.Render("stale: session file unreadable, showing last good data"))
	}
	sb.WriteString("\n\n")

	if r.Sessions == 0 {
		sb.WriteString(theme.Muted.Render("Nothing to chart yet. Finish a session first."))
		return sb.String()
	}

	slices := make([]chart.Slice, len(r.Subjects))
	for i, s := range r.Subjects {
		slices[i] = chart.Slice{Label: s.Subject, Value: s.Total.Seconds(), Caption: format.Duration(s.Total)}
	}
	bars := make([]chart.Bar, len(r.LastDays))
	for i, d := range r.LastDays {
		bars[i] = chart.Bar{Label: d.Date.Format("Mon 02"), Value: d.Total.Seconds(), Caption: format.Hours(d.Total)}
	}

	pie := theme.Pane.Render(theme.Title.Render("By subject") + "\n\n" + chart.Pie(slices, pieRadius))
	bar := theme.Pane.Render(theme.Title.Render(fmt.Sprintf("Last %d days", len(r.LastDays))) + "\n\n" + chart.Bars(bars, barHeight))

	if lipgloss.Width(pie)+lipgloss.Width(bar)+2 <= m.width {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pie, "  ", bar))
	} else {
		sb.WriteString(pie + "\n" + bar)
	}
	return sb.String()
}
