package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/anonivate/anoni/pkg/conversation"
	"github.com/anonivate/anoni/pkg/identity"
	"github.com/anonivate/anoni/pkg/session"
)

// stubGateway satisfies both the chat and session gateway slices, recording
// what was sent
type stubGateway struct {
	reply       string
	sendErr     error
	lastText    string
	lastSession string
	lastProfile *identity.UserProfile
	lastWebsite string
	deleted     []string
}

func (s *stubGateway) SendMessage(_ context.Context, text, sessionID string, profile *identity.UserProfile, websiteURL string) (string, error) {
	s.lastText = text
	s.lastSession = sessionID
	s.lastProfile = profile
	s.lastWebsite = websiteURL
	if s.sendErr != nil {
		return "", s.sendErr
	}
	return s.reply, nil
}

func (s *stubGateway) DeleteMemory(_ context.Context, sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	return nil
}

func testProfile() *identity.UserProfile {
	return &identity.UserProfile{Name: "Ada", Email: "ada@example.com", AssistantName: "Nova"}
}

// newTestModel builds a chat-state model over a temp identity store and
// sizes it so the viewport is ready
func newTestModel(t *testing.T, gw *stubGateway, profile *identity.UserProfile, website string) Model {
	t.Helper()
	store, err := identity.Open(filepath.Join(t.TempDir(), "identity.db"))
	if err != nil {
		t.Fatalf("Failed to open identity store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions, err := session.NewManager(store, gw, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	m := New(Options{
		Logger:   zap.NewNop(),
		Store:    store,
		Sessions: sessions,
		Gateway:  gw,
		Profile:  profile,
		Website:  website,
	})

	resized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return resized.(Model)
}

func pressEnter(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

// TestNewSeedsWelcomeMessage tests that a fresh model starts with exactly
// one personalized welcome message
func TestNewSeedsWelcomeMessage(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, testProfile(), "")

	if m.state != stateChat {
		t.Fatal("Expected chat state with a stored profile")
	}
	msgs := m.conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 welcome message, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0].Text, "Ada") || !strings.Contains(msgs[0].Text, "Nova") {
		t.Errorf("Welcome should name the user and the assistant, got %q", msgs[0].Text)
	}
}

// TestNewWithoutProfileStartsOnboarding tests that a missing profile gates
// the chat behind the form
func TestNewWithoutProfileStartsOnboarding(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, nil, "")

	if m.state != stateOnboarding {
		t.Error("Expected onboarding state without a stored profile")
	}
	if m.form == nil {
		t.Error("Expected an onboarding form")
	}
}

// TestSubmitEmptyInputIsNoOp tests that whitespace-only input submits
// nothing
func TestSubmitEmptyInputIsNoOp(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, testProfile(), "")
	before := m.conv.Len()

	m.textarea.SetValue("   ")
	m = pressEnter(t, m)

	if m.conv.Len() != before {
		t.Errorf("Expected transcript unchanged, got %d messages", m.conv.Len())
	}
	if m.isLoading {
		t.Error("Empty submit should not start a request")
	}
}

// TestSubmitAndReplyAppendExactlyTwoMessages tests the user message plus
// one bot message per exchange
func TestSubmitAndReplyAppendExactlyTwoMessages(t *testing.T) {
	gw := &stubGateway{reply: "<p>hello</p>"}
	m := newTestModel(t, gw, testProfile(), "")
	before := m.conv.Len()

	m.textarea.SetValue("hi there")
	m = pressEnter(t, m)

	if !m.isLoading {
		t.Error("Expected loading state after submit")
	}
	if m.conv.Len() != before+1 {
		t.Fatalf("Expected user message appended, got %d messages", m.conv.Len())
	}

	next, _ := m.Update(replyMsg("<p>hello</p>"))
	m = next.(Model)

	if m.isLoading {
		t.Error("Expected loading cleared after reply")
	}
	msgs := m.conv.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("Expected exactly 2 new messages, got %d total", len(msgs))
	}
	if msgs[len(msgs)-2].Sender != conversation.SenderUser || msgs[len(msgs)-2].Text != "hi there" {
		t.Errorf("Unexpected user entry: %+v", msgs[len(msgs)-2])
	}
	if msgs[len(msgs)-1].Sender != conversation.SenderBot || msgs[len(msgs)-1].Text != "<p>hello</p>" {
		t.Errorf("Bot reply should be stored verbatim: %+v", msgs[len(msgs)-1])
	}
}

// TestSendFailureAppendsFallback tests that any failure yields the fixed
// fallback reply, still two messages per exchange
func TestSendFailureAppendsFallback(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, testProfile(), "")
	before := m.conv.Len()

	m.textarea.SetValue("hi")
	m = pressEnter(t, m)

	next, _ := m.Update(sendFailedMsg{err: errors.New("connection refused")})
	m = next.(Model)

	msgs := m.conv.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("Expected exactly 2 new messages, got %d total", len(msgs))
	}
	if msgs[len(msgs)-1].Text != conversation.FallbackReply {
		t.Errorf("Expected fallback reply, got %q", msgs[len(msgs)-1].Text)
	}
	if m.isLoading {
		t.Error("Expected loading cleared after failure")
	}
}

// TestSubmitWhileLoadingIsIgnored tests the in-flight guard
func TestSubmitWhileLoadingIsIgnored(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, testProfile(), "")
	m.isLoading = true
	m.textarea.SetValue("queued?")
	before := m.conv.Len()

	m = pressEnter(t, m)

	if m.conv.Len() != before {
		t.Error("Submit during an in-flight request should be ignored")
	}
	if m.textarea.Value() != "queued?" {
		t.Error("Ignored submit should keep the typed input")
	}
}

// TestSendCarriesSessionProfileAndWebsite tests the payload the command
// hands to the gateway
func TestSendCarriesSessionProfileAndWebsite(t *testing.T) {
	gw := &stubGateway{reply: "ok"}
	m := newTestModel(t, gw, testProfile(), "https://example.com")

	msg := m.send("question")()
	if _, ok := msg.(replyMsg); !ok {
		t.Fatalf("Expected replyMsg, got %T", msg)
	}

	if gw.lastText != "question" {
		t.Errorf("Expected text forwarded, got %q", gw.lastText)
	}
	if gw.lastSession != m.sessions.ID() {
		t.Errorf("Expected current session id, got %q", gw.lastSession)
	}
	if gw.lastProfile == nil || gw.lastProfile.Name != "Ada" {
		t.Errorf("Expected profile forwarded, got %+v", gw.lastProfile)
	}
	if gw.lastWebsite != "https://example.com" {
		t.Errorf("Expected website forwarded in website mode, got %q", gw.lastWebsite)
	}
}

// TestSendOmitsWebsiteWhenModeOff tests that the target website is held
// back while the mode is disabled, even though it stays remembered
func TestSendOmitsWebsiteWhenModeOff(t *testing.T) {
	gw := &stubGateway{reply: "ok"}
	m := newTestModel(t, gw, testProfile(), "https://example.com")
	m.websiteMode = false

	m.send("question")()

	if gw.lastWebsite != "" {
		t.Errorf("Expected no website while mode is off, got %q", gw.lastWebsite)
	}
	if m.currentWebsite != "https://example.com" {
		t.Error("Disabling the mode should not clear the remembered website")
	}
}

// TestSendFailurePropagates tests that a gateway error becomes a
// sendFailedMsg
func TestSendFailurePropagates(t *testing.T) {
	gw := &stubGateway{sendErr: errors.New("backend down")}
	m := newTestModel(t, gw, testProfile(), "")

	msg := m.send("hi")()
	failed, ok := msg.(sendFailedMsg)
	if !ok {
		t.Fatalf("Expected sendFailedMsg, got %T", msg)
	}
	if failed.err == nil {
		t.Error("Expected the gateway error to be carried")
	}
}

// TestWebsiteModeToggle tests that a notice is appended only on transitions
// into enabled
func TestWebsiteModeToggle(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, testProfile(), "")
	before := m.conv.Len()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	m = next.(Model)
	if !m.websiteMode {
		t.Fatal("Expected website mode enabled")
	}
	if m.conv.Len() != before+1 {
		t.Fatalf("Expected one notice on enable, got %d messages", m.conv.Len())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	m = next.(Model)
	if m.websiteMode {
		t.Fatal("Expected website mode disabled after second toggle")
	}
	if m.conv.Len() != before+1 {
		t.Errorf("Disable should append nothing, got %d messages", m.conv.Len())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	m = next.(Model)
	if m.conv.Len() != before+2 {
		t.Errorf("Re-enable should append exactly one more notice, got %d messages", m.conv.Len())
	}
}

// TestMemoryClearedResetsToOnboarding tests the post-clear state: fresh
// onboarding, dropped profile and a single clear notice
func TestMemoryClearedResetsToOnboarding(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, testProfile(), "")
	m.conv.Append(conversation.SenderUser, "remember me")
	m.isLoading = true

	next, _ := m.Update(memoryClearedMsg{newID: "session_9_fresh"})
	m = next.(Model)

	if m.state != stateOnboarding {
		t.Error("Expected onboarding after memory clear")
	}
	if m.profile != nil {
		t.Errorf("Expected profile dropped, got %+v", m.profile)
	}
	if m.isLoading {
		t.Error("Expected loading cleared")
	}
	msgs := m.conv.Messages()
	if len(msgs) != 1 || msgs[0].Text != conversation.ClearNotice {
		t.Errorf("Expected single clear notice, got %+v", msgs)
	}
}

// TestFinishOnboardingInvalidIsSilent tests that an incomplete submission
// just re-presents the form around the same answers
func TestFinishOnboardingInvalidIsSilent(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, nil, "")
	m.answers.Name = "Ada"
	before := m.conv.Len()
	oldForm := m.form

	next, _ := m.finishOnboarding()
	m = next

	if m.state != stateOnboarding {
		t.Error("Expected to stay in onboarding")
	}
	if m.form == oldForm {
		t.Error("Expected a fresh form instance")
	}
	if m.answers.Name != "Ada" {
		t.Error("Rejection should keep the typed answers")
	}
	if m.conv.Len() != before {
		t.Error("Rejection must not add any message")
	}
}

// TestFinishOnboardingValid tests that completion persists the profile and
// replaces the transcript with a personalized welcome
func TestFinishOnboardingValid(t *testing.T) {
	m := newTestModel(t, &stubGateway{}, nil, "")
	m.conv.Append(conversation.SenderBot, "filler")
	m.answers.Name = "Ada"
	m.answers.Email = "ada@example.com"

	next, _ := m.finishOnboarding()
	m = next

	if m.state != stateChat {
		t.Fatal("Expected chat state after valid onboarding")
	}

	stored, err := m.store.LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if stored == nil || stored.Name != "Ada" || stored.Email != "ada@example.com" {
		t.Errorf("Expected persisted profile, got %+v", stored)
	}

	msgs := m.conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected transcript reset to one welcome, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0].Text, "Ada") {
		t.Errorf("Welcome should use the new name, got %q", msgs[0].Text)
	}
}
