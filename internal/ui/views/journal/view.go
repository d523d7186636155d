package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journaldto "innertone/internal/modules/journal/dto"
	"innertone/internal/ui/theme"
)

type JournalPort interface {
	Add(ctx context.Context, text string) (journaldto.EntryOutput, error)
	Recent(ctx context.Context) (journaldto.ListOutput, error)
	Delete(ctx context.Context, displayIndex int) (journaldto.EntryOutput, error)
}

type LoadedMsg struct {
	List journaldto.ListOutput
	Err  error
}

type Model struct {
	port   JournalPort
	input  textinput.Model
	list   journaldto.ListOutput
	cursor int
	err    error
	width  int
	height int
}

func New(port JournalPort) Model {
	ti := textinput.New()
	ti.Placeholder = "I'm grateful for…"
	ti.CharLimit = 500
	return Model{port: port, input: ti}
}

func (m Model) Init() tea.Cmd {
	return m.reload(nil)
}

// Typing reports whether keystrokes belong to the entry field.
func (m Model) Typing() bool { return m.input.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 20)

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.list = msg.List
			m.cursor = min(m.cursor, max(len(m.list.Entries)-1, 0))
		}

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				m.input.Blur()
				return m, nil
			case "enter":
				text := m.input.Value()
				m.input.SetValue("")
				return m, m.reload(func(ctx context.Context) error {
					_, err := m.port.Add(ctx, text)
					return err
				})
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "a", "i":
			return m, m.input.Focus()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.list.Entries)-1 {
				m.cursor++
			}
		case "d", "x":
			if len(m.list.Entries) == 0 {
				return m, nil
			}
			idx := m.list.Entries[m.cursor].Index
			return m, m.reload(func(ctx context.Context) error {
				_, err := m.port.Delete(ctx, idx)
				return err
			})
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Gratitude journal") + "\n\n")
	sb.WriteString(m.input.View() + "\n\n")
	if len(m.list.Entries) == 0 {
		sb.WriteString(theme.Muted.Render("No entries yet. What are you grateful for today?") + "\n")
	}
	for i, e := range m.list.Entries {
		prefix := "  "
		text := e.Text
		if i == m.cursor && !m.input.Focused() {
			prefix = theme.Hot.Render("▸ ")
			text = theme.Hot.Render(text)
		}
		sb.WriteString(prefix + text + "\n")
		sb.WriteString("    " + theme.Muted.Render(e.Date) + "\n")
	}
	if m.list.Total > len(m.list.Entries) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("\n%d older entries kept", m.list.Total-len(m.list.Entries))) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("a: write  enter: save  esc: done  d: delete"))
	if m.err != nil {
		sb.WriteString("\n" + theme.Warning.Render(m.err.Error()))
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(1, 2).Render(sb.String())
}

// reload runs op, if any, then refreshes the recent entries.
func (m Model) reload(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if op != nil {
			if err := op(ctx); err != nil {
				list, _ := m.port.Recent(ctx)
				return LoadedMsg{List: list, Err: err}
			}
		}
		list, err := m.port.Recent(ctx)
		return LoadedMsg{List: list, Err: err}
	}
}
