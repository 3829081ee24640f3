package anoni

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Version information
const (
	Version = "1.0.0"
	Name    = "Anoni Chat"
	GitHub  = "https://github.com/anonivate/anoni"
)

// ASCII logo with colors using lipgloss
var asciiLogo = `
    ___                        _
   /   |  ____  ____  ____  (_)
  / /| | / __ \/ __ \/ __ \/ /
 / ___ |/ / / / /_/ / / / / /
/_/  |_/_/ /_/\____/_/ /_/_/
`

func printVersion() {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	linkStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Underline(true)

	fmt.Println(logoStyle.Render(asciiLogo))
	fmt.Println()

	fmt.Println(labelStyle.Render(Name))
	fmt.Printf("%s %s\n", labelStyle.Render("Version:"), valueStyle.Render(Version))
	fmt.Printf("%s %s\n", labelStyle.Render("GitHub:"), linkStyle.Render(GitHub))
	fmt.Println()
}
