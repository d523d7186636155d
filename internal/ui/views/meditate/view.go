package meditate

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "innertone/internal/modules/activity/dto"
	"innertone/internal/ui/theme"
)

type MeditatePort interface {
	SelectMeditation(ctx context.Context, minutes int) (activitydto.MeditationView, error)
	StartMeditation(ctx context.Context) (activitydto.MeditationView, error)
	PauseMeditation(ctx context.Context) activitydto.MeditationView
	ResumeMeditation(ctx context.Context) (activitydto.MeditationView, error)
	ResetMeditation(ctx context.Context) activitydto.MeditationView
}

type ChangedMsg struct {
	View activitydto.MeditationView
	Err  error
}

// presetKeys maps number keys to session lengths in minutes.
var presetKeys = map[string]int{"1": 1, "2": 5, "3": 10, "4": 15, "5": 20}

const barWidth = 30

type Model struct {
	port   MeditatePort
	view   activitydto.MeditationView
	err    error
	width  int
	height int
}

func New(port MeditatePort) Model {
	return Model{port: port, view: activitydto.MeditationView{Display: "00:00"}}
}

func (m *Model) SetView(v activitydto.MeditationView) { m.view = v }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ChangedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.view = msg.View
		}
	case tea.KeyMsg:
		key := msg.String()
		if minutes, ok := presetKeys[key]; ok {
			return m, m.do(func(ctx context.Context) (activitydto.MeditationView, error) {
				return m.port.SelectMeditation(ctx, minutes)
			})
		}
		switch key {
		case "enter", " ":
			switch {
			case m.view.Running:
				return m, m.do(func(ctx context.Context) (activitydto.MeditationView, error) {
					return m.port.PauseMeditation(ctx), nil
				})
			case m.view.Paused:
				return m, m.do(m.port.ResumeMeditation)
			default:
				return m, m.do(m.port.StartMeditation)
			}
		case "r":
			return m, m.do(func(ctx context.Context) (activitydto.MeditationView, error) {
				return m.port.ResetMeditation(ctx), nil
			})
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Meditation timer") + "\n\n")
	sb.WriteString(theme.Big.Render(m.view.Display) + "\n\n")
	sb.WriteString(m.bar() + "\n\n")
	presets := make([]string, 0, len(presetKeys))
	for _, k := range []string{"1", "2", "3", "4", "5"} {
		label := fmt.Sprintf("%s:%dm", k, presetKeys[k])
		if presetKeys[k] == m.view.Minutes {
			label = theme.Hot.Render(label)
		} else {
			label = theme.Muted.Render(label)
		}
		presets = append(presets, label)
	}
	sb.WriteString(strings.Join(presets, "  ") + "\n\n")
	switch {
	case m.view.Running:
		sb.WriteString(theme.Muted.Render("enter: pause  r: reset"))
	case m.view.Paused:
		sb.WriteString(theme.Muted.Render("enter: resume  r: reset"))
	default:
		sb.WriteString(theme.Muted.Render("enter: start  r: reset"))
	}
	if m.err != nil {
		sb.WriteString("\n" + theme.Warning.Render(m.err.Error()))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

func (m Model) bar() string {
	total := time.Duration(m.view.Minutes) * time.Minute
	if total <= 0 {
		return theme.Muted.Render(strings.Repeat("░", barWidth))
	}
	done := int(float64(barWidth) * float64(total-m.view.Remaining) / float64(total))
	done = max(0, min(barWidth, done))
	return theme.Calm.Render(strings.Repeat("█", done)) + theme.Muted.Render(strings.Repeat("░", barWidth-done))
}

func (m Model) do(fn func(context.Context) (activitydto.MeditationView, error)) tea.Cmd {
	return func() tea.Msg {
		view, err := fn(context.Background())
		return ChangedMsg{View: view, Err: err}
	}
}
