package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Summary renders the effective configuration for `relay config show`.
// API keys are reported as present or missing, never printed.
func Summary(c *Config, path string) string {
	var b strings.Builder
	line := func(key, value string) {
		b.WriteString(itemStyle.Render(keyStyle.Render(key+":")+" "+value) + "\n")
	}

	b.WriteString(titleStyle.Render("Relay Configuration") + "\n")
	line("file", path)
	b.WriteString("\n")
	line("domain", c.Defaults.Domain)
	line("mode", c.Defaults.Mode)
	maxIter := "mode default"
	if c.Defaults.MaxIterations > 0 {
		maxIter = fmt.Sprintf("%d", c.Defaults.MaxIterations)
	}
	line("max iterations", maxIter)
	line("output dir", c.Defaults.OutputDir)
	line("provider", c.Provider.Kind)
	if c.Provider.BaseURL != "" {
		line("base url", c.Provider.BaseURL)
	}
	line("orchestrator model", c.Provider.Models.Orchestrator)
	line("worker model", c.Provider.Models.Worker)
	line("refiner model", c.Provider.Models.Refiner)
	line("retry", fmt.Sprintf("%d attempts, base %s", c.Retry.MaxAttempts, c.Retry.BaseDelay.Duration))
	journal := "disabled"
	if c.Journal.Enabled {
		journal = c.Journal.Path
	}
	line("journal", journal)

	names := make([]string, 0, len(c.Domains))
	for name := range c.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := c.ModelsFor(name)
		line("domain "+name, fmt.Sprintf("%s / %s / %s", m.Orchestrator, m.Worker, m.Refiner))
	}

	keys := make([]string, 0, len(c.apiKeys))
	for kind := range c.apiKeys {
		keys = append(keys, string(kind))
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		line("env api keys", "none")
	} else {
		line("env api keys", strings.Join(keys, ", "))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
