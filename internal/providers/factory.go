package providers

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindGoogle    Kind = "google"
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
)

// Kinds lists the supported provider kinds in display order.
func Kinds() []Kind {
	return []Kind{KindGoogle, KindOpenAI, KindAnthropic}
}

// ParseKind accepts a kind name or one of its common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "google", "gemini":
		return KindGoogle, nil
	case "openai", "gpt":
		return KindOpenAI, nil
	case "anthropic", "claude":
		return KindAnthropic, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

// EnvVar is the environment variable that carries this kind's API key.
func (k Kind) EnvVar() string {
	switch k {
	case KindGoogle:
		return "GEMINI_API_KEY"
	case KindOpenAI:
		return "OPENAI_API_KEY"
	case KindAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

type Config struct {
	Kind    Kind
	APIKey  string
	BaseURL string
}

func New(cfg Config) (Provider, error) {
	switch cfg.Kind {
	case KindGoogle:
		g := NewGoogle(cfg.APIKey)
		g.BaseURL = cfg.BaseURL
		return g, nil
	case KindOpenAI:
		return NewOpenAI(cfg.BaseURL, string(KindOpenAI), cfg.APIKey), nil
	case KindAnthropic:
		a := NewAnthropic(cfg.APIKey)
		if cfg.BaseURL != "" {
			a.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}
