// Package domain binds role prompts, a dataset and a dataset serializer into
// one definition the generic orchestrator/worker/refiner loop can run.
package domain

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/yubzen/relay/internal/dataset"
)

// Serializer renders the dataset block that is embedded in every prompt.
type Serializer func(*dataset.Dataset) (string, error)

// Prompts holds one template per role call. Each template receives a
// PromptData value.
type Prompts struct {
	Decompose *template.Template
	Check     *template.Template
	Work      *template.Template
	Refine    *template.Template
}

// PromptData is the value every prompt template is executed with.
type PromptData struct {
	Objective  string
	Data       string
	Prompt     string // sub-task prompt handed to the worker
	Latest     string // most recent worker output, for the completion check
	Results    string // joined worker outputs, for the refiner
	Structured bool
	Topic      string
	AgentName  string
}

type Domain struct {
	Name            string
	Topic           string // e.g. "financial optimization"
	AgentName       string // e.g. "financial agent"
	Description     string
	ObjectivePrompt string
	PlanTitle       string
	ReportPrefix    string
	Data            func() *dataset.Dataset
	Serialize       Serializer
	Prompts         Prompts
}

func (d *Domain) Validate() error {
	if d == nil {
		return fmt.Errorf("domain is nil")
	}
	if d.Name == "" {
		return fmt.Errorf("domain name is empty")
	}
	if d.Serialize == nil {
		return fmt.Errorf("domain %s has no serializer", d.Name)
	}
	p := d.Prompts
	if p.Decompose == nil || p.Check == nil || p.Work == nil || p.Refine == nil {
		return fmt.Errorf("domain %s is missing a role prompt", d.Name)
	}
	return nil
}

// Render executes tmpl with data after filling in the domain labels.
func (d *Domain) Render(tmpl *template.Template, data PromptData) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("domain %s: prompt template is nil", d.Name)
	}
	data.Topic = d.Topic
	data.AgentName = d.AgentName
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// SnapshotSerializer embeds the whole dataset as one JSON object under label.
func SnapshotSerializer(label string) Serializer {
	return func(ds *dataset.Dataset) (string, error) {
		snap, err := ds.Snapshot()
		if err != nil {
			return "", err
		}
		return label + ": " + snap, nil
	}
}

// SectionSerializer embeds each category as its own titled JSON line.
func SectionSerializer(sep string) Serializer {
	return func(ds *dataset.Dataset) (string, error) {
		sections, err := ds.Sections()
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(sections))
		for _, s := range sections {
			parts = append(parts, s.Title+": "+s.JSON)
		}
		return strings.Join(parts, sep), nil
	}
}

var registry = map[string]*Domain{}

// Register adds d to the set of domains the CLI can run.
func Register(d *Domain) {
	if err := d.Validate(); err != nil {
		panic(err)
	}
	registry[d.Name] = d
}

// Lookup finds a registered domain by name.
func Lookup(name string) (*Domain, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown domain %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
