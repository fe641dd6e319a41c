// Package console prints the role panels of a run and reads the objective.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yubzen/relay/internal/agent"
	"github.com/yubzen/relay/internal/domain"
)

const defaultWidth = 80

var (
	green = lipgloss.Color("42")
	blue  = lipgloss.Color("39")

	headingStyle  = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Console renders loop events for one domain.
type Console struct {
	out      io.Writer
	domain   *domain.Domain
	width    int
	markdown bool
	renderer *glamour.TermRenderer
}

// New enables markdown rendering only when out is a terminal.
func New(out io.Writer, dom *domain.Domain) *Console {
	c := &Console{out: out, domain: dom, width: defaultWidth}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.markdown = true
	}
	return c
}

// SetMarkdown forces markdown rendering on or off.
func (c *Console) SetMarkdown(on bool) {
	c.markdown = on
}

func (c *Console) body(text string) string {
	inner := c.width - 4
	if c.markdown {
		if c.renderer == nil {
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(inner))
			if err == nil {
				c.renderer = r
			}
		}
		if c.renderer != nil {
			if out, err := c.renderer.Render(text); err == nil {
				return strings.Trim(out, "\n")
			}
		}
	}
	return wrapToWidth(text, inner)
}

// Panel draws a rounded box with a bold title and an optional subtitle
// line beneath it.
func (c *Console) Panel(title, subtitle, text string, color lipgloss.Color) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(c.width - 2)
	titled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
	out := box.Render(titled + "\n\n" + c.body(text))
	if subtitle != "" {
		out += "\n" + subtitleStyle.Render(subtitle)
	}
	return out
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// Handle prints one loop event. It is used as agent.Loop.Notify.
func (c *Console) Handle(ev agent.Event) {
	switch {
	case ev.Role == agent.RoleOrchestrator && ev.Pending:
		c.println("\n" + headingStyle.Render("Calling Orchestrator for your objective"))
	case ev.Role == agent.RoleOrchestrator:
		c.println(c.Panel("Orchestrator", fmt.Sprintf("Sending tasks to %s 👇", c.domain.AgentName), ev.Text, green))
	case ev.Role == agent.RoleWorker && !ev.Pending:
		c.println(c.Panel(titleCase(c.domain.AgentName)+" Result", "Task completed, sending result to Orchestrator 👇", ev.Text, blue))
	case ev.Role == agent.RoleRefiner && ev.Pending:
		c.println(fmt.Sprintf("\nCalling Refiner to provide the %s:", strings.ToLower(c.domain.PlanTitle)))
	case ev.Role == agent.RoleRefiner:
		c.println(c.Panel(c.domain.PlanTitle, "", ev.Text, green))
	}
}

// Plan prints the closing plan block.
func (c *Console) Plan(plan string) {
	c.println("\n" + headingStyle.Render(c.domain.PlanTitle+":") + "\n" + plan)
}

// Saved reports where the plan was written.
func (c *Console) Saved(path string) {
	c.println(fmt.Sprintf("\n%s plan saved to %s", capitalize(c.domain.Topic), path))
}

// Stopped notes a run that ended on the iteration cap.
func (c *Console) Stopped(iterations int) {
	c.println(subtitleStyle.Render(fmt.Sprintf("Stopped after %d sub-tasks without a completion signal.", iterations)))
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
