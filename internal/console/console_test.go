package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yubzen/relay/internal/agent"
	"github.com/yubzen/relay/internal/domain"
)

func TestHandlePrintsRolePanels(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, domain.Finance())

	c.Handle(agent.Event{Type: agent.EventDecompose, Role: agent.RoleOrchestrator, Pending: true})
	c.Handle(agent.Event{Type: agent.EventDecompose, Role: agent.RoleOrchestrator, Text: "analyze discretionary spending"})
	c.Handle(agent.Event{Type: agent.EventWork, Role: agent.RoleWorker, Pending: true})
	c.Handle(agent.Event{Type: agent.EventWork, Role: agent.RoleWorker, Iteration: 1, Text: "cut to $400"})
	c.Handle(agent.Event{Type: agent.EventRefine, Role: agent.RoleRefiner, Pending: true})
	c.Handle(agent.Event{Type: agent.EventRefine, Role: agent.RoleRefiner, Text: "final"})

	out := buf.String()
	assert.Contains(t, out, "Calling Orchestrator for your objective")
	assert.Contains(t, out, "Sending tasks to financial agent 👇")
	assert.Contains(t, out, "Financial Agent Result")
	assert.Contains(t, out, "Task completed, sending result to Orchestrator 👇")
	assert.Contains(t, out, "Calling Refiner to provide the optimized financial plan:")
	assert.Contains(t, out, "Optimized Financial Plan")
	assert.Contains(t, out, "analyze discretionary spending")
	assert.Equal(t, 1, strings.Count(out, "Calling Orchestrator"))
	assert.Less(t, strings.Index(out, "Sending tasks"), strings.Index(out, "Financial Agent Result"))
}

func TestPanelIsRoundedAndPlainOffTerminal(t *testing.T) {
	c := New(&bytes.Buffer{}, domain.SupplyChain())
	out := c.Panel("Orchestrator", "sub", "**bold** text", green)
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "**bold** text")
	assert.True(t, strings.HasSuffix(out, "sub"))
}

func TestSavedAndPlan(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, domain.SupplyChain())
	c.Plan("restock jeans")
	c.Saved("supply_chain_optimization_2024-03-09_14-05-07.txt")

	out := buf.String()
	assert.Contains(t, out, "Optimized Supply Chain Plan:\nrestock jeans")
	assert.Contains(t, out, "Supply chain optimization plan saved to supply_chain_optimization_2024-03-09_14-05-07.txt")
}

func TestWrapToWidth(t *testing.T) {
	wrapped := wrapToWidth(strings.Repeat("x", 25), 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, strings.Split(wrapped, "\n"))

	assert.Equal(t, "a\n\n    b", wrapToWidth("a\r\n\r\n\tb", 0))
}

func TestPrompterReadsLineWhenNotTerminal(t *testing.T) {
	var out bytes.Buffer
	p := &Prompter{In: strings.NewReader("Reduce monthly expenses by 10%\nignored\n"), Out: &out}

	got, err := p.Ask(context.Background(), "Please enter your financial optimization objective: ", []string{"old"})
	require.NoError(t, err)
	assert.Equal(t, "Reduce monthly expenses by 10%", got)
	assert.Equal(t, "Please enter your financial optimization objective: ", out.String())
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	p := &Prompter{In: strings.NewReader("cut stockouts"), Out: &bytes.Buffer{}}
	got, err := p.Ask(context.Background(), "? ", nil)
	require.NoError(t, err)
	assert.Equal(t, "cut stockouts", got)

	p = &Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	_, err = p.Ask(context.Background(), "? ", nil)
	assert.ErrorIs(t, err, ErrPromptAborted)
}

func TestPromptModelKeys(t *testing.T) {
	m := newPromptModel("Objective?", []string{"Reduce monthly expenses by 10%"})
	assert.Contains(t, m.View(), "tab completes")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	m = next.(promptModel)
	assert.Equal(t, "hi", m.input.Value())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(promptModel)
	assert.True(t, m.done)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	next, _ = newPromptModel("q", nil).Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(promptModel).aborted)
}
