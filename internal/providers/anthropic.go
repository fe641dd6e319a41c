package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const anthropicVersion = "2023-06-01"

type Anthropic struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewAnthropic(apiKey string) *Anthropic {
	return &Anthropic{
		BaseURL: "https://api.anthropic.com/v1",
		APIKey:  strings.TrimSpace(apiKey),
		Client:  &http.Client{},
	}
}

func (p *Anthropic) Name() string {
	return "anthropic"
}

func (p *Anthropic) getKey() (string, error) {
	if p.APIKey != "" {
		return p.APIKey, nil
	}
	key, err := LoadCredential("anthropic")
	if err != nil || strings.TrimSpace(key) == "" {
		return "", &ProviderAuthError{ProviderName: "anthropic", Msg: "API key not found; set ANTHROPIC_API_KEY or run `relay auth set anthropic`"}
	}
	return key, nil
}

func (p *Anthropic) Ping(ctx context.Context) error {
	_, err := p.getKey()
	return err
}

func (p *Anthropic) ListModels(ctx context.Context) ([]string, error) {
	key, err := p.getKey()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, &ProviderAuthError{ProviderName: "anthropic", Msg: "Unauthorized: Invalid API key"}
		}
		return nil, &StatusError{Provider: "anthropic", Code: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	models := make([]string, 0, len(result.Data))
	for _, item := range result.Data {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		models = append(models, item.ID)
	}
	return models, nil
}

func (p *Anthropic) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	key, err := p.getKey()
	if err != nil {
		return "", err
	}

	var system []string
	var reqMessages []map[string]string
	for _, m := range messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		reqMessages = append(reqMessages, map[string]string{
			"role":    m.Role,
			"content": m.Content,
		})
	}

	payload := map[string]any{
		"model":      model,
		"max_tokens": 8192,
		"messages":   reqMessages,
	}
	if len(system) > 0 {
		payload["system"] = strings.Join(system, "\n")
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/messages", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return "", &ProviderAuthError{ProviderName: "anthropic", Msg: "Unauthorized: Invalid API key"}
		}
		return "", &StatusError{Provider: "anthropic", Code: resp.StatusCode, Body: string(body)}
	}
	return decodeAnthropicResponse(body)
}

func decodeAnthropicResponse(body []byte) (string, error) {
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("anthropic decode error: %w", err)
	}

	var parts []string
	for _, block := range result.Content {
		if block.Type != "text" {
			continue
		}
		if text := strings.TrimSpace(block.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("empty response from anthropic")
	}
	return strings.Join(parts, "\n"), nil
}
