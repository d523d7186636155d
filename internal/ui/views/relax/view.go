package relax

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "innertone/internal/modules/activity/dto"
	"innertone/internal/ui/theme"
)

type RelaxPort interface {
	StartRelaxation(ctx context.Context) activitydto.RelaxationView
	StopRelaxation(ctx context.Context) activitydto.RelaxationView
}

type ChangedMsg struct {
	View activitydto.RelaxationView
}

type Model struct {
	port   RelaxPort
	view   activitydto.RelaxationView
	width  int
	height int
}

func New(port RelaxPort) Model {
	return Model{port: port, view: activitydto.RelaxationView{Highlighted: -1}}
}

func (m *Model) SetView(v activitydto.RelaxationView) { m.view = v }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ChangedMsg:
		m.view = msg.View
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			active := m.view.Active
			return m, func() tea.Msg {
				if active {
					return ChangedMsg{View: m.port.StopRelaxation(context.Background())}
				}
				return ChangedMsg{View: m.port.StartRelaxation(context.Background())}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progressive muscle relaxation") + "\n\n")
	for i, title := range m.view.Steps {
		line := fmt.Sprintf("%d. %s", i+1, title)
		switch {
		case i == m.view.Highlighted:
			sb.WriteString(theme.Hot.Render("▸ "+line) + "\n")
			sb.WriteString("    " + theme.Calm.Render(m.view.Instruction) + "\n")
		case m.view.Highlighted > i || m.view.Finishing:
			sb.WriteString(theme.Good.Render("  "+line) + "\n")
		default:
			sb.WriteString(theme.Muted.Render("  "+line) + "\n")
		}
	}
	if m.view.Finishing {
		sb.WriteString("\n" + theme.Big.Render(m.view.Message) + "\n")
	}
	action := "begin"
	if m.view.Active {
		action = "stop"
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: "+action))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}
