package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// Google talks to the Gemini API through the genai SDK.
type Google struct {
	APIKey     string
	KeyName    string
	BaseURL    string
	HTTPClient *http.Client

	mu     sync.Mutex
	client *genai.Client
}

func NewGoogle(apiKey string) *Google {
	return &Google{APIKey: strings.TrimSpace(apiKey), KeyName: "google"}
}

func (p *Google) Name() string {
	return "google"
}

func (p *Google) getKey() (string, error) {
	if p.APIKey != "" {
		return p.APIKey, nil
	}
	key, err := LoadCredential(p.KeyName)
	if err != nil || key == "" {
		return "", &ProviderAuthError{ProviderName: "google", Msg: "Gemini API key not found; set GEMINI_API_KEY or run `relay auth set google`"}
	}
	return key, nil
}

func (p *Google) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	key, err := p.getKey()
	if err != nil {
		return nil, err
	}
	cfg := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.HTTPClient,
	}
	if p.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *Google) Ping(ctx context.Context) error {
	_, err := p.getKey()
	return err
}

func (p *Google) ListModels(ctx context.Context) ([]string, error) {
	return []string{"gemini-1.5-pro", "gemini-1.5-flash", "gemini-2.5-pro", "gemini-2.5-flash"}, nil
}

func (p *Google) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	var contents []*genai.Content
	var system []string
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, m.Content)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	var cfg *genai.GenerateContentConfig
	if len(system) > 0 {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("google generate: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from google")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from google")
	}
	return sb.String(), nil
}
