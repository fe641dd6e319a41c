package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestOpenAICompleteSendsMessages(t *testing.T) {
	p := NewOpenAI("https://gateway.example/v1/", "openai", "sk-test")
	p.Client = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "https://gateway.example/v1/chat/completions", r.URL.String())
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)

		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"plan ready"}}]}`), nil
	})}

	got, err := p.Complete(context.Background(), "gpt-4o", []Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "plan"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plan ready", got)
}

func TestOpenAICompleteStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantAuth bool
	}{
		{"unauthorized", http.StatusUnauthorized, true},
		{"throttled", http.StatusTooManyRequests, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewOpenAI("", "openai", "sk-test")
			p.Client = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, `{"error":"x"}`), nil
			})}

			_, err := p.Complete(context.Background(), "gpt-4o", []Message{{Role: "user", Content: "hi"}})
			require.Error(t, err)
			var authErr *ProviderAuthError
			assert.Equal(t, tt.wantAuth, errors.As(err, &authErr))
			if !tt.wantAuth {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.status, statusErr.Code)
				assert.True(t, IsTransient(err))
			}
		})
	}
}

func TestAnthropicCompleteSplitsSystemPrompt(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "you are a refiner", body["system"])
		assert.Len(t, body["messages"], 1)

		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"final plan"},{"type":"tool_use"}]}`)
	}))
	defer ts.Close()

	p, err := New(Config{Kind: KindAnthropic, APIKey: "ak-test", BaseURL: ts.URL})
	require.NoError(t, err)

	got, err := p.Complete(context.Background(), "claude", []Message{
		{Role: "system", Content: "you are a refiner"},
		{Role: "user", Content: "refine"},
	})
	require.NoError(t, err)
	assert.Equal(t, "final plan", got)
}

func TestGoogleCompleteUsesGenerateContent(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Task "},{"text":"complete"}]}}]}`)
	}))
	defer ts.Close()

	p, err := New(Config{Kind: KindGoogle, APIKey: "AIza-test", BaseURL: ts.URL})
	require.NoError(t, err)

	got, err := Generate(context.Background(), p, "gemini-1.5-pro", "check")
	require.NoError(t, err)
	assert.Equal(t, "Task complete", got)
	assert.Contains(t, gotPath, "gemini-1.5-pro:generateContent")
}

func TestFactory(t *testing.T) {
	for _, kind := range Kinds() {
		p, err := New(Config{Kind: kind, APIKey: "k"})
		require.NoError(t, err, kind)
		assert.NoError(t, p.Ping(context.Background()), kind)
		assert.NotEmpty(t, kind.EnvVar())
	}

	_, err := New(Config{Kind: "nope"})
	assert.Error(t, err)

	kind, err := ParseKind(" Gemini ")
	require.NoError(t, err)
	assert.Equal(t, KindGoogle, kind)
	_, err = ParseKind("llama")
	assert.Error(t, err)
}
