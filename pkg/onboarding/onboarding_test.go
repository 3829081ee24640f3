package onboarding

import (
	"testing"

	"github.com/anonivate/anoni/pkg/config"
)

// TestValid tests the required-field check, including whitespace-only input
func TestValid(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		want    bool
	}{
		{"both filled", Answers{Name: "Ada", Email: "ada@example.com"}, true},
		{"missing name", Answers{Email: "ada@example.com"}, false},
		{"missing email", Answers{Name: "Ada"}, false},
		{"whitespace name", Answers{Name: "   ", Email: "ada@example.com"}, false},
		{"whitespace email", Answers{Name: "Ada", Email: "\t"}, false},
		{"assistant name alone is not enough", Answers{AssistantName: "Nova"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.answers.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, expected %v for %+v", got, tt.want, tt.answers)
			}
		})
	}
}

// TestProfileDefaultsAssistantName tests that an empty assistant name falls
// back to the default
func TestProfileDefaultsAssistantName(t *testing.T) {
	profile := Answers{Name: "Ada", Email: "ada@example.com"}.Profile()
	if profile.AssistantName != config.DefaultAssistantName {
		t.Errorf("Expected default assistant name %q, got %q", config.DefaultAssistantName, profile.AssistantName)
	}

	custom := Answers{Name: "Ada", Email: "ada@example.com", AssistantName: "Nova"}.Profile()
	if custom.AssistantName != "Nova" {
		t.Errorf("Expected custom assistant name, got %q", custom.AssistantName)
	}
}

// TestProfileTrimsFields tests that stored values are trimmed even though
// the raw answers keep what the user typed
func TestProfileTrimsFields(t *testing.T) {
	profile := Answers{Name: "  Ada ", Email: " ada@example.com  ", AssistantName: " Nova "}.Profile()
	if profile.Name != "Ada" || profile.Email != "ada@example.com" || profile.AssistantName != "Nova" {
		t.Errorf("Expected trimmed fields, got %+v", profile)
	}
}

// TestNewFormBindsAnswers tests that the form shares the answers' backing
// fields so typed values survive a silent rejection
func TestNewFormBindsAnswers(t *testing.T) {
	answers := &Answers{Name: "Ada"}
	form := NewForm(answers)
	if form == nil {
		t.Fatal("NewForm returned nil")
	}
	if answers.Name != "Ada" {
		t.Errorf("Building the form should not touch the answers, got %+v", answers)
	}
}
