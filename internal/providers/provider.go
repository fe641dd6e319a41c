package providers

import (
	"context"
	"fmt"
	"strings"
)

type Message struct {
	Role    string // "user" | "assistant" | "system"
	Content string
}

type Provider interface {
	Name() string
	Complete(ctx context.Context, model string, messages []Message) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Generate issues a single-prompt completion: generate(model, prompt) -> text.
func Generate(ctx context.Context, p Provider, model, prompt string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("provider is not configured")
	}
	return p.Complete(ctx, model, []Message{{Role: "user", Content: prompt}})
}

type ProviderAuthError struct {
	ProviderName string
	Msg          string
}

func (e *ProviderAuthError) Error() string {
	return e.Msg
}

// StatusError is a non-2xx HTTP response from a provider endpoint.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("%s error: %s (status %d)", e.Provider, body, e.Code)
}
