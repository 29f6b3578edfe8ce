package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	sessiondto "studytime/internal/modules/session/dto"
	"studytime/internal/ui/format"
	"studytime/internal/ui/theme"
)

// shortID is how many characters of a session id the table shows.
const shortID = 8

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	List(ctx context.Context, subject string, limit int) ([]sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	At       time.Time
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     SessionPort
	loc      *time.Location
	sessions []sessiondto.SessionOutput
	at       time.Time
	err      error
	vp       viewport.Model
	width    int
	height   int
}

func New(port SessionPort, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{port: port, loc: loc, vp: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-2, 0)
		m.vp.SetContent(m.render())
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.sessions = msg.Sessions
			m.at = msg.At
		}
		m.vp.SetContent(m.render())
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Sessions") + "  " +
		theme.Muted.Render(fmt.Sprintf("%d recorded  ↑/↓ scroll", len(m.sessions)))
	return header + "\n\n" + m.vp.View()
}

// Reload fetches every session.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.List(context.Background(), "", 0)
		return LoadedMsg{Sessions: sessions, At: time.Now(), Err: err}
	}
}

// ResolveID expands a unique id prefix, as shown in the table, to a full
// session id.
func (m Model) ResolveID(prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("empty session id")
	}
	var found string
	for _, s := range m.sessions {
		if !strings.HasPrefix(strings.ToLower(s.ID), prefix) {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("session id %q is ambiguous", prefix)
		}
		found = s.ID
	}
	if found == "" {
		return prefix, nil
	}
	return found, nil
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render(m.err.Error())
	}
	if len(m.sessions) == 0 {
		return theme.Muted.Render("No sessions recorded yet.")
	}

	rows := make([][]string, 0, len(m.sessions))
	for i := len(m.sessions) - 1; i >= 0; i-- {
		s := m.sessions[i]
		id := s.ID
		if len(id) > shortID {
			id = id[:shortID]
		}
		rows = append(rows, []string{
			id,
			s.Subject,
			format.Stamp(s.Start, m.loc),
			s.End.In(m.loc).Format("15:04"),
			format.Duration(s.Duration),
			format.Ago(s.End, m.at),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Surface1)).
		Headers("ID", "SUBJECT", "START", "END", "STUDIED", "WHEN").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 || col == 5 {
				return cellStyle.Foreground(theme.Subtext0)
			}
			return cellStyle
		})
	return t.Render()
}
