// Package conversation holds the in-memory transcript of the current chat.
// The store is append-only except for Reset, and is only ever touched from
// the UI event loop, so it carries no locking.
package conversation

import (
	"fmt"
	"strings"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// FallbackReply is appended whenever a chat request fails, regardless of
// the failure cause.
const FallbackReply = "Sorry, I'm having trouble connecting right now. Please try again later."

// ClearNotice is the single message the transcript is reset to after a
// memory clear.
const ClearNotice = "Memory cleared! I've forgotten our previous conversations. Let's start fresh."

// Message is a single transcript entry. Text may carry server-supplied HTML
// for bot messages; it is stored verbatim and only converted at render time.
// Messages are never mutated after creation.
type Message struct {
	ID        int64
	Text      string
	Sender    Sender
	Timestamp time.Time
}

type Store struct {
	messages []Message
	nextID   int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Append adds a message to the end of the transcript and returns it.
func (s *Store) Append(sender Sender, text string) Message {
	msg := Message{
		ID:        s.nextID,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	return msg
}

// Reset drops the whole transcript and reinserts exactly one new message,
// so the store is never left empty.
func (s *Store) Reset(sender Sender, text string) Message {
	s.messages = nil
	return s.Append(sender, text)
}

// Messages returns a copy of the transcript in append order.
func (s *Store) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	return len(s.messages)
}

// WelcomeText builds the greeting shown at startup and after onboarding.
// With no stored name the greeting is generic; with a target website the
// URL appears verbatim.
func WelcomeText(name, assistantName, website string) string {
	greeting := "Hi there!"
	if strings.TrimSpace(name) != "" {
		greeting = fmt.Sprintf("Hi %s!", strings.TrimSpace(name))
	}

	intro := fmt.Sprintf("%s I'm %s, your AI assistant.", greeting, assistantName)
	if website != "" {
		return fmt.Sprintf("%s I'm ready to answer questions about %s. Ask me anything!", intro, website)
	}
	return fmt.Sprintf("%s How can I help you today?", intro)
}

// WebsiteModeNotice is appended on each transition into website mode.
func WebsiteModeNotice(website string) string {
	if website == "" {
		return "Website mode enabled. Start a chat with --website to point me at a site."
	}
	return fmt.Sprintf("Website mode enabled. I'll answer questions about %s.", website)
}
