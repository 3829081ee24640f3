// Package onboarding is the one-time form gating first use: it collects the
// user's name and email plus an optional assistant name, and produces the
// profile the identity store persists.
package onboarding

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/anonivate/anoni/pkg/config"
	"github.com/anonivate/anoni/pkg/identity"
)

// Answers holds the raw form values. Trimming happens in Valid/Profile so
// the form can keep what the user typed between silent rejections.
type Answers struct {
	Name          string
	Email         string
	AssistantName string
}

// Valid reports whether both required fields are non-empty after trimming.
// Email gets no format validation beyond that.
func (a Answers) Valid() bool {
	return strings.TrimSpace(a.Name) != "" && strings.TrimSpace(a.Email) != ""
}

// Profile converts the answers into a persistable profile, defaulting the
// assistant name when left empty.
func (a Answers) Profile() *identity.UserProfile {
	assistant := strings.TrimSpace(a.AssistantName)
	if assistant == "" {
		assistant = config.DefaultAssistantName
	}
	return &identity.UserProfile{
		Name:          strings.TrimSpace(a.Name),
		Email:         strings.TrimSpace(a.Email),
		AssistantName: assistant,
	}
}

// NewForm builds the onboarding form bound to the given answers. Submission
// with empty required fields is rejected silently by the caller, which
// simply re-presents a fresh form around the same answers.
func NewForm(a *Answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's your name?").
				Value(&a.Name),
			huh.NewInput().
				Title("What's your email?").
				Value(&a.Email),
			huh.NewInput().
				Title("What should I call myself?").
				Placeholder(config.DefaultAssistantName).
				Value(&a.AssistantName),
		),
	)
}
