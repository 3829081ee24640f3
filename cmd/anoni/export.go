package anoni

import (
	"context"
	"fmt"
	"os"

	"github.com/anonivate/anoni/pkg/config"
	"github.com/anonivate/anoni/pkg/export"
	"github.com/anonivate/anoni/pkg/gateway"
	"github.com/anonivate/anoni/pkg/identity"
	"github.com/anonivate/anoni/pkg/logging"
)

func handleExportCommand(args []string) error {
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		fmt.Println("usage: anoni export <output.pdf>")
		if len(args) < 1 {
			return fmt.Errorf("no output file provided")
		}
		return nil
	}
	outPath := args[0]

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

	assistantName := cfg.AssistantName
	if profile, err := store.LoadProfile(); err == nil && profile != nil {
		assistantName = profile.AssistantName
	}

	gw := gateway.New(cfg.APIBaseURL, logging.Nop())
	mem, err := gw.FetchMemory(context.Background(), sessionID)
	if err != nil {
		return err
	}
	if mem.Count == 0 {
		return fmt.Errorf("nothing to export: no remembered conversation for session %s", sessionID)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	markdown := export.TranscriptMarkdown(mem, assistantName)
	if err := export.WritePDF(out, markdown); err != nil {
		return err
	}

	fmt.Printf("Exported %d exchanges to %s\n", mem.Count, outPath)
	return nil
}
