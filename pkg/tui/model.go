// Package tui is the interactive chat interface. A single bubbletea update
// loop owns all mutable state (transcript, session, profile, mode flags),
// so the model needs no locking; the send guard while a request is in
// flight is advisory UI state, not a mutex.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/anonivate/anoni/pkg/config"
	"github.com/anonivate/anoni/pkg/conversation"
	"github.com/anonivate/anoni/pkg/identity"
	"github.com/anonivate/anoni/pkg/onboarding"
	"github.com/anonivate/anoni/pkg/render"
	"github.com/anonivate/anoni/pkg/session"
)

// Gateway is the slice of the backend client the chat loop needs.
type Gateway interface {
	SendMessage(ctx context.Context, text, sessionID string, profile *identity.UserProfile, websiteURL string) (string, error)
}

type state int

const (
	stateOnboarding state = iota
	stateChat
)

type (
	replyMsg      string
	sendFailedMsg struct{ err error }

	memoryClearedMsg struct {
		newID string
		err   error
	}
)

type Model struct {
	log      *zap.Logger
	store    *identity.Store
	sessions *session.Manager
	gw       Gateway
	conv     *conversation.Store

	profile       *identity.UserProfile
	assistantName string

	answers *onboarding.Answers
	form    *huh.Form

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	renderer *render.Renderer
	styles   Styles

	state     state
	isLoading bool
	ready     bool
	width     int
	height    int

	websiteMode    bool
	currentWebsite string
}

// Options wires the model's collaborators. Website seeds website-analysis
// mode; Profile may be nil, which gates the chat behind onboarding.
type Options struct {
	Logger   *zap.Logger
	Store    *identity.Store
	Sessions *session.Manager
	Gateway  Gateway
	Profile  *identity.UserProfile
	Website  string
}

func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.CharLimit = 2000
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	assistantName := config.DefaultAssistantName
	name := ""
	if opts.Profile != nil {
		assistantName = opts.Profile.AssistantName
		name = opts.Profile.Name
	}

	conv := conversation.NewStore()
	conv.Append(conversation.SenderBot, conversation.WelcomeText(name, assistantName, opts.Website))

	m := Model{
		log:            opts.Logger,
		store:          opts.Store,
		sessions:       opts.Sessions,
		gw:             opts.Gateway,
		conv:           conv,
		profile:        opts.Profile,
		assistantName:  assistantName,
		textarea:       ta,
		spinner:        sp,
		styles:         DefaultStyles(),
		state:          stateChat,
		websiteMode:    opts.Website != "",
		currentWebsite: opts.Website,
	}

	if opts.Profile == nil {
		m.state = stateOnboarding
		m.answers = &onboarding.Answers{}
		m.form = onboarding.NewForm(m.answers)
	}

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.spinner.Tick}
	if m.state == stateOnboarding {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		if m.isLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case replyMsg:
		m.isLoading = false
		m.conv.Append(conversation.SenderBot, string(msg))
		m.refreshViewport()
		return m, nil

	case sendFailedMsg:
		m.log.Warn("chat request failed", zap.Error(msg.err))
		m.isLoading = false
		m.conv.Append(conversation.SenderBot, conversation.FallbackReply)
		m.refreshViewport()
		return m, nil

	case memoryClearedMsg:
		return m.handleMemoryCleared(msg), nil
	}

	if m.state == stateOnboarding {
		return m.updateOnboarding(msg)
	}
	return m.updateChat(msg)
}

func (m Model) updateOnboarding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.finishOnboarding()
	}

	return m, cmd
}

// finishOnboarding validates the submitted answers. An invalid submission
// is rejected silently: the form is re-presented around the same answers
// with no error message. A valid one persists the profile and replaces the
// transcript with a personalized welcome.
func (m Model) finishOnboarding() (Model, tea.Cmd) {
	if !m.answers.Valid() {
		m.form = onboarding.NewForm(m.answers)
		return m, m.form.Init()
	}

	profile := m.answers.Profile()
	if err := m.store.SaveProfile(profile); err != nil {
		m.log.Error("failed to persist profile", zap.Error(err))
	}
	m.profile = profile
	m.assistantName = profile.AssistantName
	m.state = stateChat
	m.conv.Reset(conversation.SenderBot,
		conversation.WelcomeText(profile.Name, profile.AssistantName, m.currentWebsite))
	m.refreshViewport()
	return m, textarea.Blink
}

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlW:
			return m.toggleWebsiteMode(), nil

		case tea.KeyCtrlR:
			if !m.isLoading {
				m.isLoading = true
				return m, tea.Batch(m.spinner.Tick, m.clearMemory())
			}
			return m, nil

		case tea.KeyEnter:
			// Alt+Enter inserts a newline, plain Enter submits.
			if !key.Alt {
				if m.isLoading {
					return m, nil
				}
				return m.handleSubmit()
			}
		}

		if !m.isLoading {
			m.textarea, taCmd = m.textarea.Update(msg)
		}
		return m, taCmd
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	m.conv.Append(conversation.SenderUser, input)
	m.textarea.Reset()
	m.isLoading = true
	m.refreshViewport()

	return m, tea.Batch(m.spinner.Tick, m.send(input))
}

// send issues exactly one backend call; the gateway performs no retries and
// nothing cancels the request if the user quits meanwhile.
func (m Model) send(text string) tea.Cmd {
	sessionID := m.sessions.ID()
	profile := m.profile
	website := ""
	if m.websiteMode {
		website = m.currentWebsite
	}

	return func() tea.Msg {
		reply, err := m.gw.SendMessage(context.Background(), text, sessionID, profile, website)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return replyMsg(reply)
	}
}

func (m Model) clearMemory() tea.Cmd {
	return func() tea.Msg {
		newID, err := m.sessions.ClearMemory(context.Background())
		return memoryClearedMsg{newID: newID, err: err}
	}
}

func (m Model) handleMemoryCleared(msg memoryClearedMsg) Model {
	m.isLoading = false
	if msg.err != nil {
		// Remote delete failures are already swallowed by the session
		// manager; an error here means local cleanup failed.
		m.log.Error("memory clear failed", zap.Error(msg.err))
	}

	m.profile = nil
	m.assistantName = config.DefaultAssistantName
	m.answers = &onboarding.Answers{}
	m.form = onboarding.NewForm(m.answers)
	m.state = stateOnboarding
	m.conv.Reset(conversation.SenderBot, conversation.ClearNotice)
	m.refreshViewport()
	return m
}

// toggleWebsiteMode flips the flag without clearing the current website;
// a notice is appended only on transitions into enabled.
func (m Model) toggleWebsiteMode() Model {
	m.websiteMode = !m.websiteMode
	if m.websiteMode {
		m.conv.Append(conversation.SenderBot, conversation.WebsiteModeNotice(m.currentWebsite))
	}
	m.refreshViewport()
	return m
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	footerHeight := 2
	inputHeight := 3

	chatWidth := msg.Width - 2
	if chatWidth < 1 {
		chatWidth = 1
	}
	chatHeight := msg.Height - headerHeight - footerHeight - inputHeight
	if chatHeight < 1 {
		chatHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, chatHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = chatHeight
	}
	m.textarea.SetWidth(chatWidth - 2)

	// Rebuild the renderer so word wrap follows the new width.
	if renderer, err := render.New(chatWidth - 2); err == nil {
		m.renderer = renderer
	}
	m.refreshViewport()
	return m
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

// Run starts the interactive chat session.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
