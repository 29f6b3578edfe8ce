package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studytime/internal/ui/theme"
)

// ConfirmMsg carries the user's answer to a Confirm prompt.
type ConfirmMsg struct {
	Tag string
	Yes bool
}

// Confirm is a yes/no overlay. Tag identifies the question in ConfirmMsg.
type Confirm struct {
	tag      string
	question string
	visible  bool
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Ask(tag, question string) {
	c.tag = tag
	c.question = question
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !c.visible || !ok {
		return c, nil
	}
	var yes bool
	switch strings.ToLower(key.String()) {
	case "y", "enter":
		yes = true
	case "n", "esc", "q":
		yes = false
	default:
		return c, nil
	}
	c.visible = false
	tag := c.tag
	return c, func() tea.Msg { return ConfirmMsg{Tag: tag, Yes: yes} }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	body := theme.Hot.Render(c.question) + "\n\n" + theme.Muted.Render("y / enter: yes    n / esc: no")
	return overlayStyle().Padding(1, 3).Render(body)
}
