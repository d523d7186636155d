package companion

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	companiondto "innertone/internal/modules/companion/dto"
	"innertone/internal/ui/theme"
)

type CompanionPort interface {
	Send(ctx context.Context, text string) (companiondto.ChatOutput, error)
	ToggleRecording(ctx context.Context) (companiondto.VoiceOutput, error)
	History(ctx context.Context) []companiondto.MessageOutput
}

type RepliedMsg struct {
	Reply   companiondto.ChatOutput
	History []companiondto.MessageOutput
	Err     error
}

type VoiceMsg struct {
	Out companiondto.VoiceOutput
	Err error
}

type Model struct {
	port      CompanionPort
	input     textinput.Model
	chat      viewport.Model
	spinner   spinner.Model
	history   []companiondto.MessageOutput
	waiting   bool
	recording bool
	status    string
	width     int
	height    int
}

func New(port CompanionPort) Model {
	ti := textinput.New()
	ti.Placeholder = "How are you feeling?"
	ti.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, input: ti, chat: viewport.New(0, 0), spinner: sp}
}

func (m Model) Typing() bool { return m.input.Focused() }

// Recording reports whether a voice clip is being captured.
func (m Model) Recording() bool { return m.recording }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 20)
		m.chat.Width = msg.Width - 4
		m.chat.Height = max(msg.Height-8, 3)
		m.chat.SetContent(m.renderHistory())

	case RepliedMsg:
		m.waiting = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.history = msg.History
		m.status = ""
		if msg.Reply.Mood != "" {
			m.status = fmt.Sprintf("mood: %s (%.2f)", msg.Reply.Mood, msg.Reply.Sentiment)
		}
		m.chat.SetContent(m.renderHistory())
		m.chat.GotoBottom()

	case VoiceMsg:
		m.waiting = false
		if msg.Err != nil {
			m.recording = false
			m.status = msg.Err.Error()
			return m, nil
		}
		m.recording = msg.Out.Recording
		switch {
		case m.recording:
			m.status = "recording… press ctrl+r to stop"
		case msg.Out.Result != nil:
			r := msg.Out.Result
			m.status = fmt.Sprintf("voice: %s  energy %.2f  tempo %.0f", r.Mood, r.Energy, r.Tempo)
			m.history = append(m.history, companiondto.MessageOutput{Role: "bot", Content: r.Reply})
			m.chat.SetContent(m.renderHistory())
			m.chat.GotoBottom()
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+r" {
			m.waiting = true
			return m, tea.Batch(m.voiceCmd(), m.spinner.Tick)
		}
		if m.input.Focused() {
			switch msg.String() {
			case "esc":
				m.input.Blur()
				return m, nil
			case "enter":
				text := m.input.Value()
				if strings.TrimSpace(text) == "" || m.waiting {
					return m, nil
				}
				m.input.SetValue("")
				m.waiting = true
				m.history = append(m.history, companiondto.MessageOutput{Role: "user", Content: text})
				m.chat.SetContent(m.renderHistory())
				m.chat.GotoBottom()
				return m, tea.Batch(m.sendCmd(text), m.spinner.Tick)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if msg.String() == "a" || msg.String() == "i" {
			return m, m.input.Focus()
		}
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Companion") + "\n")
	sb.WriteString(m.chat.View() + "\n")
	line := m.input.View()
	if m.waiting {
		line = m.spinner.View() + " " + line
	}
	sb.WriteString(line + "\n")
	if m.recording {
		sb.WriteString(theme.Warning.Render("● REC ") + " ")
	}
	sb.WriteString(theme.Muted.Render(m.status) + "\n")
	sb.WriteString(theme.Muted.Render("a: write  enter: send  esc: done  ctrl+r: record"))
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Padding(0, 2).Render(sb.String())
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return theme.Muted.Render("Say hello. Your companion is listening.")
	}
	width := max(m.chat.Width-4, 20)
	var sb strings.Builder
	for _, msg := range m.history {
		if msg.Role == "user" {
			sb.WriteString(theme.Hot.Render("you") + "\n")
		} else {
			sb.WriteString(theme.Calm.Render("companion") + "\n")
		}
		sb.WriteString(lipgloss.NewStyle().Width(width).Render(msg.Content) + "\n\n")
	}
	return sb.String()
}

func (m Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		reply, err := m.port.Send(ctx, text)
		return RepliedMsg{Reply: reply, History: m.port.History(ctx), Err: err}
	}
}

func (m Model) voiceCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ToggleRecording(context.Background())
		return VoiceMsg{Out: out, Err: err}
	}
}
