package anoni

import (
	"fmt"
	"os"
)

// Execute is the main entry point for the CLI. Running with no arguments
// starts the interactive chat.
func Execute() error {
	if len(os.Args) < 2 {
		return handleChatCommand(nil)
	}
	if os.Args[1] == "-h" || os.Args[1] == "--help" {
		printUsage()
		return nil
	}

	command := os.Args[1]
	switch command {
	case "chat":
		return handleChatCommand(os.Args[2:])
	case "reset":
		return handleResetCommand()
	case "history":
		return handleHistoryCommand()
	case "export":
		return handleExportCommand(os.Args[2:])
	case "config":
		return handleConfigCommand(os.Args[2:])
	case "version":
		printVersion()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println("usage: anoni [-h] {chat,reset,history,export,config,version} ...")
	fmt.Println("")
	fmt.Println("positional arguments:")
	fmt.Println("  {chat,reset,history,export,config,version}")
	fmt.Println("                        Anoni CLI commands")
	fmt.Println("    chat                Start an interactive chat session (default)")
	fmt.Println("    reset               Clear the assistant's memory and start a fresh session")
	fmt.Println("    history             Print the conversation the backend remembers")
	fmt.Println("    export              Export the remembered conversation as a PDF")
	fmt.Println("    config              Manage configuration")
	fmt.Println("    version             Show version information")
	fmt.Println("")
	fmt.Println("options:")
	fmt.Println("  -h, --help            show this help message and exit")
}
