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

// OpenAI speaks the chat-completions protocol, so it also covers
// OpenAI-compatible gateways reached through BaseURL.
type OpenAI struct {
	BaseURL string
	KeyName string // e.g., "openai" or "deepseek"
	APIKey  string
	Client  *http.Client
}

func NewOpenAI(baseURL, keyName, apiKey string) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if keyName == "" {
		keyName = "openai"
	}
	return &OpenAI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		KeyName: keyName,
		APIKey:  strings.TrimSpace(apiKey),
		Client:  &http.Client{},
	}
}

func (p *OpenAI) Name() string {
	return p.KeyName
}

func (p *OpenAI) getKey() (string, error) {
	if p.APIKey != "" {
		return p.APIKey, nil
	}
	key, err := LoadCredential(p.KeyName)
	if err != nil || key == "" {
		return "", &ProviderAuthError{ProviderName: p.KeyName, Msg: "API key not found for " + p.KeyName}
	}
	return key, nil
}

func (p *OpenAI) Ping(ctx context.Context) error {
	_, err := p.getKey()
	return err
}

func (p *OpenAI) ListModels(ctx context.Context) ([]string, error) {
	key, err := p.getKey()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Provider: p.KeyName, Code: resp.StatusCode, Body: string(body)}
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
	for _, m := range result.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

func (p *OpenAI) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	key, err := p.getKey()
	if err != nil {
		return "", err
	}

	type chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}

	bodyBytes, err := json.Marshal(map[string]any{
		"model":    model,
		"messages": reqMessages,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized {
			return "", &ProviderAuthError{ProviderName: p.KeyName, Msg: "Unauthorized: Invalid API key"}
		}
		return "", &StatusError{Provider: p.KeyName, Code: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%s decode error: %w", p.KeyName, err)
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("empty response from %s", p.KeyName)
}
