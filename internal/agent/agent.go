package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yubzen/relay/internal/providers"
	"github.com/yubzen/relay/internal/redact"
)

type Role string

const (
	RoleOrchestrator Role = "orchestrator"
	RoleWorker       Role = "worker"
	RoleRefiner      Role = "refiner"
)

// Agent is one model-backed role. It sends a prompt and returns the raw
// reply without interpreting it.
type Agent struct {
	Role         Role
	Model        string
	Provider     providers.Provider
	SystemPrompt string
	Redactor     *redact.Redactor
}

var ErrAgentNotReady = errors.New("agent is not initialized")

func NewAgent(role Role, model string, provider providers.Provider) *Agent {
	return &Agent{
		Role:     role,
		Model:    model,
		Provider: provider,
	}
}

func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentNotReady
	}
	if a.Provider == nil {
		return fmt.Errorf("%s agent provider is not configured", a.Role)
	}
	if strings.TrimSpace(a.Model) == "" {
		return fmt.Errorf("%s agent model is empty", a.Role)
	}
	return nil
}

// Run issues exactly one completion call. Outbound text is scrubbed of
// secrets; the reply is returned as-is.
func (a *Agent) Run(ctx context.Context, prompt string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := stillRunning(ctx); err != nil {
		return "", err
	}
	if err := a.Validate(); err != nil {
		return "", err
	}

	var (
		reply string
		err   error
	)
	if s := strings.TrimSpace(a.SystemPrompt); s != "" {
		reply, err = a.Provider.Complete(ctx, a.Model, []providers.Message{
			{Role: "system", Content: a.Redactor.Clean(s)},
			{Role: "user", Content: a.Redactor.Clean(prompt)},
		})
	} else {
		reply, err = providers.Generate(ctx, a.Provider, a.Model, a.Redactor.Clean(prompt))
	}
	if err != nil {
		return "", asCancelled(err)
	}
	return reply, nil
}
