package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Decision
	}{
		{name: "done", in: `{"status":"done"}`, want: Decision{Status: StatusDone}},
		{name: "continue", in: `{"status": "continue", "prompt": "list suppliers"}`, want: Decision{Status: StatusContinue, Prompt: "list suppliers"}},
		{name: "fenced", in: "```json\n{\"status\": \"done\"}\n```", want: Decision{Status: StatusDone}},
		{name: "surrounding prose", in: "Sure.\n{\"status\":\"continue\",\"prompt\":\"cut dining\"}\nThanks", want: Decision{Status: StatusContinue, Prompt: "cut dining"}},
		{name: "status case", in: `{"status":"DONE"}`, want: Decision{Status: StatusDone}},
		{name: "bare marker", in: "Task complete.", want: Decision{Status: StatusDone}},
		{name: "marker inside prose continues", in: "The Task complete flag is not set yet; review debts", want: Decision{Status: StatusContinue, Prompt: "The Task complete flag is not set yet; review debts"}},
		{name: "continue without prompt falls back", in: `{"status":"continue"}`, want: Decision{Status: StatusContinue, Prompt: `{"status":"continue"}`}},
		{name: "unknown status falls back", in: `{"status":"maybe"}`, want: Decision{Status: StatusContinue, Prompt: `{"status":"maybe"}`}},
		{name: "plain text", in: "analyze discretionary spending", want: Decision{Status: StatusContinue, Prompt: "analyze discretionary spending"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDecision(tt.in))
		})
	}
}

func TestCompatDecisionIsSubstringMatch(t *testing.T) {
	assert.True(t, CompatDecision("Task complete").Done())
	assert.True(t, CompatDecision("I think the Task complete criteria are met").Done())
	assert.False(t, CompatDecision("task complete").Done())

	d := CompatDecision("next: review credit cards")
	assert.Equal(t, StatusContinue, d.Status)
	assert.Equal(t, "next: review credit cards", d.Prompt)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStructured, m)

	m, err = ParseMode(" Compat ")
	require.NoError(t, err)
	assert.Equal(t, ModeCompat, m)

	_, err = ParseMode("loose")
	assert.Error(t, err)
}
