package tui

import (
	"fmt"
	"strings"

	"github.com/anonivate/anoni/pkg/conversation"
)

func (m Model) View() string {
	if m.state == stateOnboarding {
		header := m.styles.Header.Render(fmt.Sprintf("%s needs a few details before we chat", m.assistantName))
		return header + "\n\n" + m.form.View()
	}

	if !m.ready {
		return "Initializing..."
	}

	var footer string
	if m.isLoading {
		footer = m.styles.Loading.Render(fmt.Sprintf("%s %s is thinking...", m.spinner.View(), m.assistantName))
	} else {
		footer = m.textarea.View()
	}

	return strings.Join([]string{
		m.renderHeader(),
		m.viewport.View(),
		footer,
		m.renderHelp(),
	}, "\n")
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(fmt.Sprintf("Chat with %s", m.assistantName))
	if !m.websiteMode {
		return title
	}

	mode := "website mode"
	if m.currentWebsite != "" {
		mode = fmt.Sprintf("website mode: %s", m.currentWebsite)
	}
	return title + " " + m.styles.Mode.Render("["+mode+"]")
}

func (m Model) renderHelp() string {
	return m.styles.Help.Render("Enter send · Ctrl+W website mode · Ctrl+R clear memory · Ctrl+C quit")
}

func (m Model) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.conv.Messages() {
		switch msg.Sender {
		case conversation.SenderUser:
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
			sb.WriteString(m.styles.UserText.Render(msg.Text))
			sb.WriteString("\n")
		default:
			sb.WriteString(m.styles.BotLabel.Render(m.assistantName) + "\n")
			sb.WriteString(m.renderer.Reply(msg.Text))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
