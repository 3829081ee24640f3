package anoni

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/anonivate/anoni/pkg/config"
	"github.com/anonivate/anoni/pkg/gateway"
	"github.com/anonivate/anoni/pkg/identity"
	"github.com/anonivate/anoni/pkg/logging"
	"github.com/anonivate/anoni/pkg/render"
)

// handleHistoryCommand prints the conversation the backend remembers for
// the current session.
func handleHistoryCommand() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPath, err := config.GetIdentityDBPath()
	if err != nil {
		return err
	}
	store, err := identity.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessionID, err := store.LoadOrCreateSessionID()
	if err != nil {
		return err
	}

	gw := gateway.New(cfg.APIBaseURL, logging.Nop())
	mem, err := gw.FetchMemory(context.Background(), sessionID)
	if err != nil {
		return err
	}

	assistantName := cfg.AssistantName
	if profile, err := store.LoadProfile(); err == nil && profile != nil {
		assistantName = profile.AssistantName
	}

	if mem.Count == 0 {
		fmt.Printf("No remembered conversation for session %s.\n", sessionID)
		return nil
	}

	userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	fmt.Printf("Session %s, %d exchanges\n\n", mem.SessionID, mem.Count)
	for _, entry := range mem.Messages {
		ts := time.Unix(int64(entry.Timestamp), 0).Format("2006-01-02 15:04")
		fmt.Printf("%s %s\n%s\n\n", userStyle.Render("You"), timeStyle.Render(ts), entry.User)
		fmt.Printf("%s\n%s\n\n", botStyle.Render(assistantName), render.HTMLToMarkdown(entry.Assistant))
	}
	return nil
}
