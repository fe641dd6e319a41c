package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var ErrPromptAborted = errors.New("objective prompt aborted")

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Prompter reads the objective. A terminal gets an editable input line with
// previous objectives as tab completions; anything else is read as one line.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout}
}

func (p *Prompter) interactive() bool {
	f, ok := p.In.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (p *Prompter) Ask(ctx context.Context, question string, suggestions []string) (string, error) {
	if p.interactive() {
		return p.askTerminal(ctx, question, suggestions)
	}
	return p.askLine(question)
}

func (p *Prompter) askLine(question string) (string, error) {
	fmt.Fprint(p.Out, question)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrPromptAborted
	}
	return line, nil
}

func (p *Prompter) askTerminal(ctx context.Context, question string, suggestions []string) (string, error) {
	m := newPromptModel(question, suggestions)
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(p.In), tea.WithOutput(p.Out))
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	result := final.(promptModel)
	if result.aborted {
		return "", ErrPromptAborted
	}
	return result.input.Value(), nil
}

type promptModel struct {
	question string
	input    textinput.Model
	aborted  bool
	done     bool
	hint     bool
}

func newPromptModel(question string, suggestions []string) promptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "describe what you want to achieve"
	ti.CharLimit = 2000
	ti.Width = defaultWidth - 4
	ti.Focus()
	if len(suggestions) > 0 {
		ti.ShowSuggestions = true
		ti.SetSuggestions(suggestions)
	}
	return promptModel{question: question, input: ti, hint: len(suggestions) > 0}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	s := questionStyle.Render(strings.TrimSpace(m.question)) + "\n" + m.input.View() + "\n"
	if m.hint {
		s += hintStyle.Render("tab completes a previous objective, esc cancels") + "\n"
	}
	return s
}
