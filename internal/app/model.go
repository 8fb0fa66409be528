package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chainchat/internal/chat"
	"chainchat/internal/logging"
	"chainchat/internal/store"
	"chainchat/internal/txlink"
)

const (
	minListWidth     = 18
	maxListWidth     = 28
	minViewportWidth = 20
	minContentHeight = 4
	chromeHeight     = 3
)

type Model struct {
	sessions  *store.SessionStore
	submitter *chat.Submitter
	linker    txlink.Linker
	log       logging.Logger

	viewport  viewport.Model
	chatInput *ChatInput
	loader    spinner.Model

	width     int
	height    int
	listWidth int
	status    string
	follow    bool
	inflight  int
}

type submitDoneMsg struct {
	sessionID string
}

func NewModel(sessions *store.SessionStore, submitter *chat.Submitter, linker txlink.Linker, log logging.Logger) Model {
	if log == nil {
		log = logging.Nop()
	}
	vp := viewport.New(minViewportWidth, minContentHeight)
	loader := spinner.New()
	loader.Spinner = spinner.Line
	loader.Style = lipgloss.NewStyle()

	m := Model{
		sessions:  sessions,
		submitter: submitter,
		linker:    linker,
		log:       log,
		viewport:  vp,
		chatInput: NewChatInput(minViewportWidth),
		loader:    loader,
		listWidth: minListWidth,
		follow:    true,
	}
	m.refreshViewport()
	return m
}

func Run(sessions *store.SessionStore, submitter *chat.Submitter, linker txlink.Linker, log logging.Logger) error {
	model := NewModel(sessions, submitter, linker, log)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		// Submissions mutate the store from their own goroutine; the
		// spinner tick doubles as the render heartbeat while one is in
		// flight, so the optimistic user message shows up promptly.
		m.refreshViewport()
		return m, cmd
	case submitDoneMsg:
		m.inflight--
		if m.inflight <= 0 {
			m.inflight = 0
			m.status = ""
		}
		m.refreshViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	cmd := m.chatInput.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m, m.submitPrompt()
	case "ctrl+n":
		session := m.sessions.CreateSession(context.Background())
		m.status = "created " + session.Title
		m.follow = true
		m.refreshViewport()
		return m, nil
	case "ctrl+d":
		active := m.sessions.Active()
		if active != nil {
			m.sessions.DeleteSession(context.Background(), active.ID)
			m.status = "deleted " + active.Title
			m.follow = true
			m.refreshViewport()
		}
		return m, nil
	case "tab":
		m.cycleSession(1)
		return m, nil
	case "shift+tab":
		m.cycleSession(-1)
		return m, nil
	case "ctrl+y":
		m.copyLatestTxHash()
		return m, nil
	case "pgup", "pgdown", "ctrl+u", "ctrl+f", "ctrl+b":
		m.follow = false
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		if m.viewport.AtBottom() {
			m.follow = true
		}
		return m, cmd
	}
	cmd := m.chatInput.Update(msg)
	return m, cmd
}

func (m *Model) submitPrompt() tea.Cmd {
	prompt := strings.TrimSpace(m.chatInput.Value())
	if prompt == "" {
		m.status = "message is required"
		return nil
	}
	sessionID := m.sessions.ActiveID()
	m.chatInput.Clear()
	m.status = "sending"
	m.follow = true
	m.inflight++
	submitter := m.submitter
	submitCmd := func() tea.Msg {
		_ = submitter.Submit(context.Background(), sessionID, prompt)
		return submitDoneMsg{sessionID: sessionID}
	}
	return tea.Batch(submitCmd, m.loader.Tick)
}

func (m *Model) cycleSession(delta int) {
	sessions := m.sessions.Sessions()
	if len(sessions) < 2 {
		return
	}
	activeID := m.sessions.ActiveID()
	index := 0
	for i, session := range sessions {
		if session.ID == activeID {
			index = i
			break
		}
	}
	index = (index + delta + len(sessions)) % len(sessions)
	m.sessions.SelectSession(sessions[index].ID)
	m.follow = true
	m.refreshViewport()
}

func (m *Model) copyLatestTxHash() {
	active := m.sessions.Active()
	if active == nil {
		return
	}
	for i := len(active.Messages) - 1; i >= 0; i-- {
		if hash, ok := txlink.Hash(active.Messages[i].Text); ok {
			if _, err := copyTextToClipboard(m.linker.URL(hash)); err != nil {
				m.status = "copy failed: " + err.Error()
				return
			}
			m.status = "copied " + hash
			return
		}
	}
	m.status = "no transaction hash in this chat"
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	listWidth := width / 4
	if listWidth < minListWidth {
		listWidth = minListWidth
	}
	if listWidth > maxListWidth {
		listWidth = maxListWidth
	}
	m.listWidth = listWidth

	viewportWidth := width - listWidth - 1
	if viewportWidth < minViewportWidth {
		viewportWidth = minViewportWidth
	}
	contentHeight := height - chromeHeight
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}
	m.viewport.Width = viewportWidth
	m.viewport.Height = contentHeight
	m.chatInput.Resize(width - 4)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	active := m.sessions.Active()
	if active == nil {
		m.viewport.SetContent("")
		return
	}
	content := renderChatBlocks(blocksFromMessages(active.Messages), m.linker, m.viewport.Width)
	m.viewport.SetContent(content)
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) View() string {
	contentHeight := m.viewport.Height
	sidebar := renderSidebar(m.sessions.Sessions(), m.sessions.ActiveID(), m.listWidth, contentHeight)
	divider := dividerStyle.Render(strings.TrimRight(strings.Repeat("│\n", contentHeight), "\n"))
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, m.viewport.View())

	status := m.status
	if m.inflight > 0 {
		status = m.loader.View() + " " + status
	}
	help := helpStyle.Render("enter send · ctrl+n new · ctrl+d delete · tab switch · ctrl+y copy tx link · ctrl+c quit")

	var b strings.Builder
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(m.chatInput.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(help)
	return b.String()
}
