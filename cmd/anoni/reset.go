package anoni

import (
	"context"
	"fmt"

	"github.com/anonivate/anoni/pkg/config"
	"github.com/anonivate/anoni/pkg/gateway"
	"github.com/anonivate/anoni/pkg/identity"
	"github.com/anonivate/anoni/pkg/logging"
	"github.com/anonivate/anoni/pkg/session"
)

// handleResetCommand runs the clear-memory sequence outside the TUI:
// best-effort remote delete, local identity wipe, fresh session id.
func handleResetCommand() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logPath, err := config.GetLogPath()
	if err != nil {
		return err
	}
	logger, err := logging.New(logPath, false)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	dbPath, err := config.GetIdentityDBPath()
	if err != nil {
		return err
	}
	store, err := identity.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	gw := gateway.New(cfg.APIBaseURL, logger)
	sessions, err := session.NewManager(store, gw, logger)
	if err != nil {
		return err
	}

	old := sessions.ID()
	fresh, err := sessions.ClearMemory(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Memory cleared for session %s.\n", old)
	fmt.Printf("New session: %s. Onboarding will run on the next chat.\n", fresh)
	return nil
}
