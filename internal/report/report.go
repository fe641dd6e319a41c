// Package report writes the plain-text record of a run: the objective, the
// task breakdown and the refined plan under fixed banners.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	TimestampLayout = "2006-01-02_15-04-05"
	BreakdownTitle  = "Task Breakdown"
)

var banner = strings.Repeat("=", 40)

// Report is everything written for one run.
type Report struct {
	Objective string
	Breakdown string
	PlanTitle string
	Plan      string
}

// Render produces the file body. Both sections are always present and in
// the same order, however many sub-tasks ran.
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %s\n\n", r.Objective)
	fmt.Fprintf(&b, "%s %s %s\n\n", banner, BreakdownTitle, banner)
	b.WriteString(r.Breakdown)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s %s\n\n", banner, r.PlanTitle, banner)
	b.WriteString(r.Plan)
	return b.String()
}

// Filename is prefix_<timestamp>.txt at second resolution; two runs in
// the same second share a name.
func Filename(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s.txt", prefix, at.Format(TimestampLayout))
}

// Writer places reports in Dir. Now is the capture clock.
type Writer struct {
	Dir string
	Now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

// Write creates or overwrites the report file and returns its path.
func (w *Writer) Write(prefix string, r Report) (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, Filename(prefix, now()))
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
