package timer

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studytime/internal/modules/session/dto"
	"studytime/internal/ui/format"
	"studytime/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Status(ctx context.Context) (sessiondto.StopwatchOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg drives the once-per-second refresh of the displayed time.
type TickMsg time.Time

type StateMsg struct {
	State sessiondto.StopwatchOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   SessionPort
	loc    *time.Location
	state  sessiondto.StopwatchOutput
	err    error
	width  int
	height int
}

func New(port SessionPort, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{port: port, loc: loc}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), tick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		return m, tea.Batch(m.Refresh(), tick())
	case StateMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.state = msg.State
		}
	}
	return m, nil
}

// State is the stopwatch as of the last successful check.
func (m Model) State() sessiondto.StopwatchOutput { return m.state }

// Refresh re-reads the stopwatch without changing it.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.Status(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) View() string {
	s := m.state
	var sb strings.Builder
	switch {
	case s.Active():
		sb.WriteString(theme.Title.Render(s.Subject) + "\n\n")
	default:
		sb.WriteString(theme.Title.Render("No session running") + "\n\n")
	}

	clockStyle := theme.Muted
	label := "idle"
	switch s.State {
	case "running":
		clockStyle, label = theme.Good, "running"
	case "paused":
		clockStyle, label = theme.Hot, "paused"
	}
	sb.WriteString(clockStyle.Render(BigClock(s.Elapsed)) + "\n\n")
	sb.WriteString(clockStyle.Render("● "+label) + "  " + theme.Muted.Render(format.Clock(s.Elapsed)) + "\n")
	if s.Active() {
		sb.WriteString(theme.Muted.Render("started "+format.Stamp(s.StartedAt, m.loc)) + "\n")
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Bad.Render(m.err.Error()) + "\n")
	}

	sb.WriteString("\n")
	if s.Active() {
		sb.WriteString(theme.Muted.Render("p: pause/resume  x: stop & save  :discard"))
	} else {
		sb.WriteString(theme.Muted.Render("pick a subject on the Subjects tab and press s"))
	}

	pane := theme.Pane.Padding(1, 4).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pane)
}

// ─── big digits ──────────────────────────────────────────────────────────────

var glyphs = map[rune][5]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" ██", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "▪", " ", "▪", " "},
}

// BigClock renders d as HH:MM:SS in a five-row block font.
func BigClock(d time.Duration) string {
	text := format.Clock(d)
	rows := make([]string, 5)
	for i := range rows {
		parts := make([]string, 0, len(text))
		for _, r := range text {
			g, ok := glyphs[r]
			if !ok {
				continue
			}
			parts = append(parts, g[i])
		}
		rows[i] = strings.Join(parts, " ")
	}
	return strings.Join(rows, "\n")
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}
