// Package gateway is the HTTP client for the Anoni assistant API. It issues
// single-shot JSON requests with no retries, no queuing and no idempotency
// keys; callers decide how failures surface.
package gateway

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/anonivate/anoni/pkg/identity"
)

// ChatRequest mirrors the backend's /chat body. The profile fields are
// omitted entirely when onboarding has not run.
type ChatRequest struct {
	Message       string `json:"message"`
	SessionID     string `json:"session_id"`
	UserName      string `json:"user_name,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	AssistantName string `json:"assistant_name,omitempty"`
}

type ChatResponse struct {
	Response      string   `json:"response"`
	Sources       []string `json:"sources,omitempty"`
	MemorySummary string   `json:"memory_summary,omitempty"`
}

// MemoryEntry is one user/assistant exchange as the backend remembers it.
type MemoryEntry struct {
	User      string  `json:"user"`
	Assistant string  `json:"assistant"`
	Timestamp float64 `json:"timestamp"`
}

type Memory struct {
	SessionID string        `json:"session_id"`
	Messages  []MemoryEntry `json:"messages"`
	Count     int           `json:"count"`
}

type Health struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	WebsiteURL string `json:"website_url"`
}

type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
		log: logger,
	}
}

// SendMessage posts one chat message and returns the reply text. The reply
// may carry HTML; it is returned verbatim. Any transport error or non-2xx
// status is reported as a single undifferentiated failure.
func (c *Client) SendMessage(ctx context.Context, text, sessionID string, profile *identity.UserProfile, websiteURL string) (string, error) {
	body := ChatRequest{
		Message:   text,
		SessionID: sessionID,
	}
	if profile != nil {
		body.UserName = profile.Name
		body.UserEmail = profile.Email
		body.AssistantName = profile.AssistantName
	}

	req := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ChatResponse{})
	if websiteURL != "" {
		req.SetQueryParam("website_url", websiteURL)
	}

	resp, err := req.Post("/chat")
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("chat request failed: %s", resp.Status())
	}

	return resp.Result().(*ChatResponse).Response, nil
}

// DeleteMemory asks the backend to forget a session. Callers treat the
// result as best-effort.
func (c *Client) DeleteMemory(ctx context.Context, sessionID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/memory/" + sessionID)
	if err != nil {
		return fmt.Errorf("memory delete failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("memory delete failed: %s", resp.Status())
	}
	return nil
}

// FetchMemory returns the backend's stored conversation for a session.
func (c *Client) FetchMemory(ctx context.Context, sessionID string) (*Memory, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&Memory{}).
		Get("/memory/" + sessionID)
	if err != nil {
		return nil, fmt.Errorf("memory fetch failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("memory fetch failed: %s", resp.Status())
	}
	return resp.Result().(*Memory), nil
}

// CheckHealth probes the backend. Used as a logged connectivity check at
// chat startup; failures are never fatal.
func (c *Client) CheckHealth(ctx context.Context) (*Health, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&Health{}).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("health check failed: %s", resp.Status())
	}
	return resp.Result().(*Health), nil
}
