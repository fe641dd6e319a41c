package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// wrapToWidth normalizes model text for a plain panel: CRLF and tabs are
// flattened and each paragraph is wrapped to width without trailing blanks.
func wrapToWidth(text string, width int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")
	if width <= 0 {
		return text
	}

	wrapper := lipgloss.NewStyle().Width(width)
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			out = append(out, "")
			continue
		}
		for _, line := range strings.Split(wrapper.Render(paragraph), "\n") {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return strings.Join(out, "\n")
}
