package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "innertone/internal/modules/activity/dto"
	ambientdto "innertone/internal/modules/ambient/dto"
	"innertone/internal/ui/components"
	"innertone/internal/ui/theme"
	breatheview "innertone/internal/ui/views/breathe"
	companionview "innertone/internal/ui/views/companion"
	journalview "innertone/internal/ui/views/journal"
	meditateview "innertone/internal/ui/views/meditate"
	relaxview "innertone/internal/ui/views/relax"
	soundsview "innertone/internal/ui/views/sounds"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type activityPort interface {
	breatheview.BreathePort
	meditateview.MeditatePort
	relaxview.RelaxPort
	StartBreathing(ctx context.Context) activitydto.BreathingView
	Snapshot(ctx context.Context) activitydto.Snapshot
	StopAll(ctx context.Context) activitydto.Snapshot
}

type ambientPort interface {
	soundsview.SoundsPort
	Start(ctx context.Context, sceneID string) (ambientdto.StatusOutput, error)
}

type journalPort interface {
	journalview.JournalPort
}

type companionPort interface {
	companionview.CompanionPort
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabBreathe tabID = iota
	tabMeditate
	tabRelax
	tabSounds
	tabJournal
	tabCompanion
	tabCount
)

var tabLabels = [tabCount]string{
	"Breathe", "Meditate", "Relax", "Sounds", "Journal", "Companion",
}

// hints must stay in sync with executePalette.
var paletteHints = []string{
	"breathe",
	"meditate <minutes>",
	"relax",
	"sound <scene>",
	"sound:stop",
	"volume <0-100>",
	"journal:add <text>",
	"stop",
}

const pollInterval = 250 * time.Millisecond

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	activity activitydto.Snapshot
	ambient  ambientdto.StatusOutput
}

type eventMsg struct {
	event activitydto.Event
	ok    bool
}

type statusMsg string

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Write   key.Binding
	Record  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start/stop")),
		Write:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "write (journal, companion)")),
		Record:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "record voice")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Write, k.Record},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, polls machine state,
// and owns the help overlay and the command palette.
type Model struct {
	brand string

	activity activityPort
	ambient  ambientPort
	journal  journalPort
	events   <-chan activitydto.Event

	breatheView   breatheview.Model
	meditateView  meditateview.Model
	relaxView     relaxview.Model
	soundsView    soundsview.Model
	journalView   journalview.Model
	companionView companionview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel wires the tab views. events may be nil; when set, machine events
// are shown in the status bar.
func NewModel(
	brand string,
	activity activityPort,
	ambient ambientPort,
	journal journalPort,
	companion companionPort,
	events <-chan activitydto.Event,
) Model {
	if strings.TrimSpace(brand) == "" {
		brand = "Innertone"
	}
	return Model{
		brand:         brand,
		activity:      activity,
		ambient:       ambient,
		journal:       journal,
		events:        events,
		breatheView:   breatheview.New(activity),
		meditateView:  meditateview.New(activity),
		relaxView:     relaxview.New(activity),
		soundsView:    soundsview.New(ambient),
		journalView:   journalview.New(journal),
		companionView: companionview.New(companion),
		activeTab:     tabBreathe,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(paletteHints),
		status:        "Welcome. Take a slow breath.",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.soundsView.Init(),
		m.journalView.Init(),
		m.snapshotCmd(),
		tick(),
		m.waitForEvent(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.snapshotCmd(), tick())

	case snapshotMsg:
		m.breatheView.SetView(msg.activity.Breathing)
		m.meditateView.SetView(msg.activity.Meditation)
		m.relaxView.SetView(msg.activity.Relaxation)
		m.soundsView.SetStatus(msg.ambient)
		return m, nil

	case eventMsg:
		if !msg.ok {
			m.events = nil
			return m, nil
		}
		if msg.event.Message != "" {
			m.status = msg.event.Message
		} else {
			m.status = msg.event.Activity + " " + msg.event.Kind
		}
		return m, m.waitForEvent()

	case statusMsg:
		m.status = string(msg)
		return m, tea.Batch(m.snapshotCmd(), m.journalView.Init())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		}

		// Yield to text entry in the active tab.
		if m.subViewTyping() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabBreathe:
		m.breatheView, tabCmd = m.breatheView.Update(msg)
	case tabMeditate:
		m.meditateView, tabCmd = m.meditateView.Update(msg)
	case tabRelax:
		m.relaxView, tabCmd = m.relaxView.Update(msg)
	case tabSounds:
		m.soundsView, tabCmd = m.soundsView.Update(msg)
	case tabJournal:
		m.journalView, tabCmd = m.journalView.Update(msg)
	case tabCompanion:
		m.companionView, tabCmd = m.companionView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	cmds = append(cmds, m.routeResult(msg)...)

	return m, tea.Batch(cmds...)
}

// routeResult hands async results to their view when another tab is active.
func (m *Model) routeResult(msg tea.Msg) []tea.Cmd {
	var cmd tea.Cmd
	switch msg.(type) {
	case soundsview.ScenesLoadedMsg, soundsview.StatusMsg:
		if m.activeTab != tabSounds {
			m.soundsView, cmd = m.soundsView.Update(msg)
		}
	case journalview.LoadedMsg:
		if m.activeTab != tabJournal {
			m.journalView, cmd = m.journalView.Update(msg)
		}
	case companionview.RepliedMsg, companionview.VoiceMsg:
		if m.activeTab != tabCompanion {
			m.companionView, cmd = m.companionView.Update(msg)
		}
	}
	return []tea.Cmd{cmd}
}

// switchTab changes tabs. Entering Companion silences the scene and the
// guided exercises so they do not play under a conversation.
func (m Model) switchTab(to tabID) (tea.Model, tea.Cmd) {
	m.activeTab = to
	if to != tabCompanion {
		return m, nil
	}
	return m, func() tea.Msg {
		ctx := context.Background()
		m.ambient.Stop(ctx)
		m.activity.StopAll(ctx)
		return statusMsg("sounds and exercises paused for the conversation")
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabBreathe:
		return m.breatheView.View()
	case tabMeditate:
		return m.meditateView.View()
	case tabRelax:
		return m.relaxView.View()
	case tabSounds:
		return m.soundsView.View()
	case tabJournal:
		return m.journalView.View()
	case tabCompanion:
		return m.companionView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := theme.Title.Render(m.brand) + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.companionView.Recording() {
		left = theme.Warning.Render("● REC") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "breathe":
		m.activeTab = tabBreathe
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			m.activity.StartBreathing(ctx)
			return "breathing started", nil
		})

	case "meditate":
		minutes, err := strconv.Atoi(arg)
		if err != nil {
			m.status = "usage: meditate <minutes>"
			return m, nil
		}
		m.activeTab = tabMeditate
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			if _, err := m.activity.SelectMeditation(ctx, minutes); err != nil {
				return "", err
			}
			if _, err := m.activity.StartMeditation(ctx); err != nil {
				return "", err
			}
			return fmt.Sprintf("meditating for %d minutes", minutes), nil
		})

	case "relax":
		m.activeTab = tabRelax
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			m.activity.StartRelaxation(ctx)
			return "relaxation started", nil
		})

	case "sound":
		if arg == "" {
			m.status = "usage: sound <scene>"
			return m, nil
		}
		m.activeTab = tabSounds
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			if _, err := m.ambient.Start(ctx, arg); err != nil {
				return "", err
			}
			return "playing " + arg, nil
		})

	case "sound:stop":
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			m.ambient.Stop(ctx)
			return "sound stopped", nil
		})

	case "volume":
		percent, err := strconv.Atoi(arg)
		if err != nil {
			m.status = "usage: volume <0-100>"
			return m, nil
		}
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			out := m.ambient.SetVolume(ctx, percent)
			return fmt.Sprintf("volume %d%%", out.Volume), nil
		})

	case "journal:add":
		m.activeTab = tabJournal
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			if _, err := m.journal.Add(ctx, arg); err != nil {
				return "", err
			}
			return "entry saved", nil
		})

	case "stop":
		return m, m.statusCmd(func(ctx context.Context) (string, error) {
			m.ambient.Stop(ctx)
			m.activity.StopAll(ctx)
			return "stopped", nil
		})

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabJournal:
		return m.journalView.Typing()
	case tabCompanion:
		return m.companionView.Typing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.breatheView, _ = m.breatheView.Update(sz)
	m.meditateView, _ = m.meditateView.Update(sz)
	m.relaxView, _ = m.relaxView.Update(sz)
	m.soundsView, _ = m.soundsView.Update(sz)
	m.journalView, _ = m.journalView.Update(sz)
	m.companionView, _ = m.companionView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) snapshotCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return snapshotMsg{activity: m.activity.Snapshot(ctx), ambient: m.ambient.Status(ctx)}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		return eventMsg{event: ev, ok: ok}
	}
}

func (m Model) statusCmd(fn func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn(context.Background())
		if err != nil {
			return statusMsg(err.Error())
		}
		return statusMsg(text)
	}
}
