package subjects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "studytime/internal/modules/stats/dto"
	subjectdto "studytime/internal/modules/subject/dto"
	"studytime/internal/ui/format"
	"studytime/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SubjectPort interface {
	List(ctx context.Context) ([]subjectdto.SubjectOutput, error)
	BySubject(ctx context.Context) (statsdto.SubjectTotalsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Subjects []subjectdto.SubjectOutput
	Totals   statsdto.SubjectTotalsOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type subjectItem struct {
	subject subjectdto.SubjectOutput
	total   statsdto.SubjectTotalOutput
}

func (i subjectItem) Title() string { return i.subject.Name }
func (i subjectItem) Description() string {
	if i.total.Sessions == 0 {
		return "no sessions yet"
	}
	return fmt.Sprintf("%s · %d sessions", format.Duration(i.total.Total), i.total.Sessions)
}
func (i subjectItem) FilterValue() string { return i.subject.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SubjectPort
	loc     *time.Location
	list    list.Model
	detail  viewport.Model
	stale   bool
	loadErr error
	width   int
	height  int
}

func New(port SubjectPort, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Primary).BorderForeground(theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Subtext0).BorderForeground(theme.Primary)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Subjects"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, loc: loc, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loadErr = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.stale = msg.Totals.Stale
		totals := make(map[string]statsdto.SubjectTotalOutput, len(msg.Totals.Items))
		for _, t := range msg.Totals.Items {
			totals[strings.ToLower(t.Subject)] = t
		}
		items := make([]list.Item, len(msg.Subjects))
		for i, s := range msg.Subjects {
			items[i] = subjectItem{subject: s, total: totals[strings.ToLower(s.Name)]}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())
		return m, tea.Batch(cmds...)
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		m.detail.SetContent(m.renderDetail())
	}

	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 0)).
		Height(max(m.height-2, 0)).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload fetches subjects and their totals.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		subjects, err := m.port.List(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		totals, err := m.port.BySubject(ctx)
		return LoadedMsg{Subjects: subjects, Totals: totals, Err: err}
	}
}

// SelectedSubject returns the highlighted subject name, if any.
func (m Model) SelectedSubject() (string, bool) {
	if item, ok := m.list.SelectedItem().(subjectItem); ok {
		return item.subject.Name, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 0)
	m.detail.Height = max(m.height-4, 0)
}

func (m Model) renderDetail() string {
	if m.loadErr != nil {
		return theme.Bad.Render(m.loadErr.Error())
	}
	item, ok := m.list.SelectedItem().(subjectItem)
	if !ok {
		return theme.Muted.Render("No subjects yet. Press : and run subject:add <name>")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(item.subject.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("added:    ") + format.Stamp(item.subject.CreatedAt, m.loc) + "\n")
	sb.WriteString(theme.Muted.Render("studied:  ") + format.Duration(item.total.Total) + "\n")
	sb.WriteString(theme.Muted.Render("sessions: ") + fmt.Sprintf("%d", item.total.Sessions) + "\n")
	sb.WriteString(theme.Muted.Render("share:    ") + fmt.Sprintf("%.1f%%", item.total.Share) + "\n")
	if m.stale {
		sb.WriteString("\n" + theme.Hot.Render("totals may be out of date") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("s: start session  /: filter"))
	return sb.String()
}
