package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studytime/internal/modules/session/dto"
	statsdto "studytime/internal/modules/stats/dto"
	subjectdto "studytime/internal/modules/subject/dto"
	apperrors "studytime/internal/platform/errors"
	"studytime/internal/ui/components"
	"studytime/internal/ui/format"
	"studytime/internal/ui/theme"
	sessionsview "studytime/internal/ui/views/sessions"
	statsview "studytime/internal/ui/views/stats"
	subjectsview "studytime/internal/ui/views/subjects"
	timerview "studytime/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Start(ctx context.Context, subject string) (sessiondto.StopwatchOutput, error)
	Pause(ctx context.Context) (sessiondto.StopwatchOutput, error)
	Resume(ctx context.Context) (sessiondto.StopwatchOutput, error)
	Stop(ctx context.Context) (sessiondto.SessionOutput, error)
	Discard(ctx context.Context) (sessiondto.StopwatchOutput, error)
	Status(ctx context.Context) (sessiondto.StopwatchOutput, error)
	List(ctx context.Context, subject string, limit int) ([]sessiondto.SessionOutput, error)
	Delete(ctx context.Context, id string) error
}

type subjectPort interface {
	Create(ctx context.Context, name string) (subjectdto.SubjectOutput, error)
	Rename(ctx context.Context, from, to string) (subjectdto.RenameOutput, error)
	Delete(ctx context.Context, name string, cascade bool) (subjectdto.DeleteOutput, error)
	List(ctx context.Context) ([]subjectdto.SubjectOutput, error)
}

type statsPort interface {
	BySubject(ctx context.Context) (statsdto.SubjectTotalsOutput, error)
	Report(ctx context.Context, days int) (statsdto.ReportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabSubjects
	tabSessions
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "Subjects", "Sessions", "Stats",
}

// ─── async messages ───────────────────────────────────────────────────────────

// actionDoneMsg reports the outcome of any mutating command. Every view
// reloads after one arrives.
type actionDoneMsg struct {
	status string
	err    error
}

// confirm tags
const (
	askQuit    = "quit"
	askDiscard = "discard"
)

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Stop    key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start selected subject")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause / resume")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop & save")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Pause, k.Stop},
		{k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, the command palette and confirmation prompts. All business logic
// is delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	session  sessionPort
	subjects subjectPort

	// sub-views (one per tab)
	timerView    timerview.Model
	subjectsView subjectsview.Model
	sessionsView sessionsview.Model
	statsView    statsview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   components.Confirm
	status    string
	busy      bool
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(session sessionPort, subjects subjectPort, stats statsPort, loc *time.Location, chartDays int) Model {
	return Model{
		session:      session,
		subjects:     subjects,
		timerView:    timerview.New(session, loc),
		subjectsView: subjectsview.New(subjectsPortBridge{subjects: subjects, stats: stats}, loc),
		sessionsView: sessionsview.New(session, loc),
		statsView:    statsview.New(stats, chartDays),
		activeTab:    tabTimer,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.subjectsView.Init(),
		m.sessionsView.Init(),
		m.statsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Overlays intercept all key input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
		if m.confirm.Visible() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Timer and data messages reach their view whichever tab is showing.
	case timerview.TickMsg, timerview.StateMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case subjectsview.LoadedMsg:
		var cmd tea.Cmd
		m.subjectsView, cmd = m.subjectsView.Update(msg)
		return m, cmd

	case sessionsview.LoadedMsg:
		var cmd tea.Cmd
		m.sessionsView, cmd = m.sessionsView.Update(msg)
		return m, cmd

	case statsview.ReportLoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = describeErr(msg.err)
		} else {
			m.status = msg.status
		}
		return m, m.reloadAll()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case components.ConfirmMsg:
		switch {
		case msg.Tag == askQuit && msg.Yes:
			return m, tea.Quit
		case msg.Tag == askDiscard && msg.Yes:
			if m.busy {
				m.status = busyStatus
				return m, nil
			}
			m.busy = true
			return m, m.discardCmd()
		}
		m.status = "cancelled"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if st := m.timerView.State(); st.Active() {
				m.confirm.Ask(askQuit, fmt.Sprintf("%q is still being timed. Quit anyway?\nThe session stays open.", st.Subject))
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
		if key := msg.String(); m.busy && (key == "p" || key == "x" || key == "s" && m.activeTab == tabSubjects) {
			m.status = busyStatus
			return m, nil
		}
		switch msg.String() {
		case "s":
			if m.activeTab == tabSubjects {
				if name, ok := m.subjectsView.SelectedSubject(); ok {
					m.busy = true
					return m, m.startCmd(name)
				}
				m.status = "no subject selected"
				return m, nil
			}
		case "p":
			m.busy = true
			return m, m.togglePauseCmd()
		case "x":
			m.busy = true
			return m, m.stopCmd()
		case "r":
			m.status = "refreshing"
			return m, m.reloadAll()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabSubjects:
		m.subjectsView, tabCmd = m.subjectsView.Update(msg)
	case tabSessions:
		m.sessionsView, tabCmd = m.sessionsView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabSubjects:
		return m.subjectsView.View()
	case tabSessions:
		return m.sessionsView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studytime  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if st := m.timerView.State(); st.Active() {
		marker := theme.Good.Render("● " + st.Subject)
		if st.State == "paused" {
			marker = theme.Hot.Render("‖ " + st.Subject)
		}
		left = marker + " " + theme.Muted.Render(format.Clock(st.Elapsed)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	if m.busy && mutating(parts[0]) {
		m.status = busyStatus
		return m, nil
	}

	switch parts[0] {
	case "start":
		if rest == "" {
			if name, ok := m.subjectsView.SelectedSubject(); ok {
				rest = name
			}
		}
		if rest == "" {
			m.status = "usage: start <subject>"
			return m, nil
		}
		m.busy = true
		return m, m.startCmd(rest)

	case "pause":
		m.busy = true
		return m, m.run("paused", func(ctx context.Context) error {
			_, err := m.session.Pause(ctx)
			return err
		})

	case "resume":
		m.busy = true
		return m, m.run("resumed", func(ctx context.Context) error {
			_, err := m.session.Resume(ctx)
			return err
		})

	case "stop":
		m.busy = true
		return m, m.stopCmd()

	case "discard":
		st := m.timerView.State()
		if !st.Active() {
			m.status = describeErr(apperrors.ErrNoActiveSession)
			return m, nil
		}
		m.confirm.Ask(askDiscard, fmt.Sprintf("Discard the open %q session without saving it?", st.Subject))
		return m, nil

	case "subject:add":
		if rest == "" {
			m.status = "usage: subject:add <name>"
			return m, nil
		}
		m.busy = true
		return m, m.run("added "+rest, func(ctx context.Context) error {
			_, err := m.subjects.Create(ctx, rest)
			return err
		})

	case "subject:rename":
		from, to, ok := strings.Cut(rest, "=>")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			m.status = "usage: subject:rename <old> => <new>"
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			out, err := m.subjects.Rename(context.Background(), from, to)
			return actionDoneMsg{
				status: fmt.Sprintf("renamed %s to %s (%d sessions updated)", out.From, out.To, out.SessionsUpdated),
				err:    err,
			}
		}

	case "subject:delete", "subject:delete!":
		if rest == "" {
			m.status = "usage: " + parts[0] + " <name>"
			return m, nil
		}
		cascade := parts[0] == "subject:delete!"
		m.busy = true
		return m, func() tea.Msg {
			out, err := m.subjects.Delete(context.Background(), rest, cascade)
			return actionDoneMsg{
				status: fmt.Sprintf("deleted %s (%d sessions removed)", out.Name, out.SessionsRemoved),
				err:    err,
			}
		}

	case "session:delete":
		if len(parts) != 2 {
			m.status = "usage: session:delete <id>"
			return m, nil
		}
		id, err := m.sessionsView.ResolveID(parts[1])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.busy = true
		return m, m.run("deleted session "+id, func(ctx context.Context) error {
			return m.session.Delete(ctx, id)
		})

	case "refresh":
		m.status = "refreshing"
		return m, m.reloadAll()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// busyStatus is shown while an earlier command is still running. Stopwatch
// commands are applied one at a time.
const busyStatus = "busy: previous command still running"

func mutating(command string) bool {
	switch command {
	case "start", "pause", "resume", "stop", "discard",
		"subject:add", "subject:rename", "subject:delete", "subject:delete!", "session:delete":
		return true
	}
	return false
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	return m.activeTab == tabSubjects && m.subjectsView.Filtering()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.subjectsView, _ = m.subjectsView.Update(sz)
	m.sessionsView, _ = m.sessionsView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(
		m.timerView.Refresh(),
		m.subjectsView.Reload(),
		m.sessionsView.Reload(),
		m.statsView.Reload(),
	)
}

// describeErr shortens the errors a user can fix from the keyboard.
func describeErr(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNoActiveSession):
		return "no session is running"
	case errors.Is(err, apperrors.ErrActiveSessionExists):
		return "a session is already open; stop it first"
	default:
		return "error: " + err.Error()
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) run(status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{status: status, err: fn(context.Background())}
	}
}

func (m Model) startCmd(subject string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), subject)
		return actionDoneMsg{status: "studying " + out.Subject, err: err}
	}
}

func (m Model) togglePauseCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		st, err := m.session.Status(ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		switch st.State {
		case "running":
			_, err = m.session.Pause(ctx)
			return actionDoneMsg{status: "paused", err: err}
		case "paused":
			_, err = m.session.Resume(ctx)
			return actionDoneMsg{status: "resumed", err: err}
		}
		return actionDoneMsg{err: apperrors.ErrNoActiveSession}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stop(context.Background())
		return actionDoneMsg{
			status: fmt.Sprintf("saved %s of %s", format.Duration(out.Duration), out.Subject),
			err:    err,
		}
	}
}

func (m Model) discardCmd() tea.Cmd {
	return m.run("session discarded", func(ctx context.Context) error {
		_, err := m.session.Discard(ctx)
		return err
	})
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows broad port interfaces to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type subjectsPortBridge struct {
	subjects subjectPort
	stats    statsPort
}

func (b subjectsPortBridge) List(ctx context.Context) ([]subjectdto.SubjectOutput, error) {
	return b.subjects.List(ctx)
}
func (b subjectsPortBridge) BySubject(ctx context.Context) (statsdto.SubjectTotalsOutput, error) {
	return b.stats.BySubject(ctx)
}
