package anoni

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/anonivate/anoni/pkg/config"
	"github.com/anonivate/anoni/pkg/gateway"
	"github.com/anonivate/anoni/pkg/identity"
	"github.com/anonivate/anoni/pkg/logging"
	"github.com/anonivate/anoni/pkg/session"
	"github.com/anonivate/anoni/pkg/tui"
)

func handleChatCommand(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	website := fs.String("website", "", "website URL to analyze during this chat")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("chat requires an interactive terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logPath, err := config.GetLogPath()
	if err != nil {
		return err
	}
	logger, err := logging.New(logPath, *verbose)
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

	profile, err := store.LoadProfile()
	if err != nil {
		return err
	}

	target := *website
	if target == "" {
		target = cfg.WebsiteURL
	}

	// Connectivity probe; the chat starts regardless of the outcome.
	probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if health, err := gw.CheckHealth(probeCtx); err != nil {
		logger.Warn("backend health check failed", zap.String("base_url", cfg.APIBaseURL), zap.Error(err))
	} else {
		logger.Info("backend reachable", zap.String("status", health.Status))
	}

	logger.Info("starting chat",
		zap.String("session_id", sessions.ID()),
		zap.Bool("website_mode", target != ""),
		zap.String("website", target))

	return tui.Run(tui.New(tui.Options{
		Logger:   logger,
		Store:    store,
		Sessions: sessions,
		Gateway:  gw,
		Profile:  profile,
		Website:  target,
	}))
}
