// Package redact scrubs credentials out of text before it is sent to a model
// provider.
package redact

import (
	"regexp"
	"sort"
	"strings"
)

var patterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	// .env style VAR=value lines keep the name and lose the value.
	{regexp.MustCompile(`(?m)^([A-Z_]+)=\S+$`), "${1}=[REDACTED]"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9\-_]{20,}`), "[REDACTED_KEY]"},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},
	{regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`), "[REDACTED_KEY]"},
	{regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`), "[REDACTED_KEY]"},
}

// Clean applies the built-in secret patterns.
func Clean(input string) string {
	for _, p := range patterns {
		input = p.re.ReplaceAllString(input, p.repl)
	}
	return input
}

// Redactor additionally removes exact secret values known at runtime,
// such as the API key loaded for this run.
type Redactor struct {
	secrets []string
}

// New ignores secrets shorter than 8 characters; replacing those would
// mangle ordinary words.
func New(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		s = strings.TrimSpace(s)
		if len(s) >= 8 {
			r.secrets = append(r.secrets, s)
		}
	}
	// Longest first so a secret that contains another is removed whole.
	sort.Slice(r.secrets, func(i, j int) bool { return len(r.secrets[i]) > len(r.secrets[j]) })
	return r
}

func (r *Redactor) Clean(input string) string {
	if r != nil {
		for _, s := range r.secrets {
			input = strings.ReplaceAll(input, s, "[REDACTED]")
		}
	}
	return Clean(input)
}
