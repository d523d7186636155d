package sounds

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ambientdto "innertone/internal/modules/ambient/dto"
	"innertone/internal/ui/theme"
)

type SoundsPort interface {
	Scenes(ctx context.Context) []ambientdto.SceneOutput
	Toggle(ctx context.Context, sceneID string) (ambientdto.StatusOutput, error)
	Stop(ctx context.Context) ambientdto.StatusOutput
	SetVolume(ctx context.Context, percent int) ambientdto.StatusOutput
	Status(ctx context.Context) ambientdto.StatusOutput
}

type ScenesLoadedMsg struct {
	Scenes []ambientdto.SceneOutput
	Status ambientdto.StatusOutput
}

type StatusMsg struct {
	Status ambientdto.StatusOutput
	Err    error
}

const volumeStep = 10

type sceneItem struct {
	scene ambientdto.SceneOutput
}

func (i sceneItem) Title() string       { return i.scene.Label }
func (i sceneItem) Description() string { return i.scene.Description }
func (i sceneItem) FilterValue() string { return i.scene.Label }

type Model struct {
	port   SoundsPort
	list   list.Model
	status ambientdto.StatusOutput
	err    error
	width  int
	height int
}

func New(port SoundsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Ambient sounds"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return ScenesLoadedMsg{Scenes: m.port.Scenes(ctx), Status: m.port.Status(ctx)}
	}
}

func (m *Model) SetStatus(s ambientdto.StatusOutput) { m.status = s }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width/2, m.height)

	case ScenesLoadedMsg:
		items := make([]list.Item, len(msg.Scenes))
		for i, s := range msg.Scenes {
			items[i] = sceneItem{scene: s}
		}
		m.status = msg.Status
		cmds = append(cmds, m.list.SetItems(items))

	case StatusMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status = msg.Status
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ":
			if item, ok := m.list.SelectedItem().(sceneItem); ok {
				id := item.scene.ID
				return m, m.statusCmd(func(ctx context.Context) (ambientdto.StatusOutput, error) {
					return m.port.Toggle(ctx, id)
				})
			}
		case "s":
			return m, m.statusCmd(func(ctx context.Context) (ambientdto.StatusOutput, error) {
				return m.port.Stop(ctx), nil
			})
		case "+", "=":
			return m, m.volumeCmd(m.status.Volume + volumeStep)
		case "-":
			return m, m.volumeCmd(m.status.Volume - volumeStep)
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listPane := lipgloss.NewStyle().Width(m.width / 2).Height(m.height).Render(m.list.View())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Now playing") + "\n\n")
	if m.status.Playing {
		sb.WriteString(theme.Hot.Render("♪ "+m.status.Active) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("silence") + "\n")
	}
	sb.WriteString("\n" + volumeBar(m.status.Volume) + "\n\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("nodes: %d  timers: %d", m.status.ActiveNodes, m.status.Timers)) + "\n\n")
	sb.WriteString(theme.Muted.Render("enter: play/stop  s: stop  +/-: volume"))
	if m.err != nil {
		sb.WriteString("\n" + theme.Warning.Render(m.err.Error()))
	}
	detail := theme.Pane.Width(max(m.width-m.width/2-4, 10)).Render(sb.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detail)
}

func volumeBar(volume int) string {
	filled := volume / 5
	return fmt.Sprintf("vol %3d%% ", volume) + theme.Calm.Render(strings.Repeat("▮", filled)) + theme.Muted.Render(strings.Repeat("▯", 20-filled))
}

func (m Model) volumeCmd(percent int) tea.Cmd {
	return m.statusCmd(func(ctx context.Context) (ambientdto.StatusOutput, error) {
		return m.port.SetVolume(ctx, percent), nil
	})
}

func (m Model) statusCmd(fn func(context.Context) (ambientdto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}
