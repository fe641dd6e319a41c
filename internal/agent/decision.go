package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CompletionMarker is the literal completion signal of compat mode.
const CompletionMarker = "Task complete"

type Mode string

const (
	// ModeCompat terminates on the substring CompletionMarker and has no
	// iteration cap unless one is set explicitly.
	ModeCompat Mode = "compat"
	// ModeStructured asks for a tagged JSON decision and caps iterations.
	ModeStructured Mode = "structured"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStructured:
		return ModeStructured, nil
	case ModeCompat:
		return ModeCompat, nil
	default:
		return "", fmt.Errorf("unknown loop mode %q (want %q or %q)", s, ModeStructured, ModeCompat)
	}
}

type Status string

const (
	StatusContinue Status = "continue"
	StatusDone     Status = "done"
)

// Decision is the orchestrator's verdict: run Prompt next, or stop.
type Decision struct {
	Status Status `json:"status"`
	Prompt string `json:"prompt,omitempty"`
}

func (d Decision) Done() bool {
	return d.Status == StatusDone
}

// CompatDecision reproduces substring matching: any reply containing the
// marker is done, anything else is the next prompt verbatim.
func CompatDecision(text string) Decision {
	if strings.Contains(text, CompletionMarker) {
		return Decision{Status: StatusDone}
	}
	return Decision{Status: StatusContinue, Prompt: text}
}

// ParseDecision reads a structured decision. Replies that carry no JSON
// object fall back to: exactly the marker means done, otherwise the raw
// text is the next prompt.
func ParseDecision(text string) Decision {
	if d, ok := decodeDecision(text); ok {
		return d
	}
	bare := strings.Trim(strings.TrimSpace(text), `"'.!`)
	if strings.EqualFold(bare, CompletionMarker) {
		return Decision{Status: StatusDone}
	}
	return Decision{Status: StatusContinue, Prompt: text}
}

func decodeDecision(text string) (Decision, bool) {
	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return Decision{}, false
	}

	var raw struct {
		Status string `json:"status"`
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal([]byte(body[start:end+1]), &raw); err != nil {
		return Decision{}, false
	}

	switch strings.ToLower(strings.TrimSpace(raw.Status)) {
	case "done", "complete", "completed":
		return Decision{Status: StatusDone}, true
	case "continue":
		prompt := strings.TrimSpace(raw.Prompt)
		if prompt == "" {
			return Decision{}, false
		}
		return Decision{Status: StatusContinue, Prompt: prompt}, true
	default:
		return Decision{}, false
	}
}
