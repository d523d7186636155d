package breathe

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "innertone/internal/modules/activity/dto"
	"innertone/internal/ui/theme"
)

type BreathePort interface {
	ToggleBreathing(ctx context.Context) activitydto.BreathingView
}

// ToggledMsg carries the machine state right after start or stop.
type ToggledMsg struct {
	View activitydto.BreathingView
}

type Model struct {
	port   BreathePort
	view   activitydto.BreathingView
	width  int
	height int
}

func New(port BreathePort) Model {
	return Model{port: port, view: activitydto.BreathingView{Phase: "idle", Prompt: "Select start to begin"}}
}

// SetView replaces the displayed state with a fresh snapshot.
func (m *Model) SetView(v activitydto.BreathingView) { m.view = v }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ToggledMsg:
		m.view = msg.View
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			return m, m.toggleCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Box breathing") + "\n\n")
	sb.WriteString(circle(m.view.Phase) + "\n\n")
	sb.WriteString(theme.Big.Render(m.view.Prompt) + "\n\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("cycles completed: %d", m.view.Cycles)) + "\n\n")
	action := "start"
	if m.view.Active {
		action = "stop"
	}
	sb.WriteString(theme.Muted.Render("enter: " + action))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

// circle draws the guide larger while the lungs are full.
func circle(phase string) string {
	rows := []string{"( · )"}
	switch phase {
	case "inhale", "hold":
		rows = []string{"   .-\"\"\"-.   ", "  /       \\  ", " |         | ", "  \\       /  ", "   '-...-'   "}
	case "exhale":
		rows = []string{"  .-\"-.  ", " |     | ", "  '-.-'  "}
	}
	return theme.Calm.Render(strings.Join(rows, "\n"))
}

func (m Model) toggleCmd() tea.Cmd {
	return func() tea.Msg {
		return ToggledMsg{View: m.port.ToggleBreathing(context.Background())}
	}
}
