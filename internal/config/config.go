package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/yubzen/relay/internal/providers"
)

// Duration decodes TOML strings such as "1s" or "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type RoleModels struct {
	Orchestrator string `toml:"orchestrator,omitempty"`
	Worker       string `toml:"worker,omitempty"`
	Refiner      string `toml:"refiner,omitempty"`
}

// merge fills every empty role in m from base.
func (m RoleModels) merge(base RoleModels) RoleModels {
	if m.Orchestrator == "" {
		m.Orchestrator = base.Orchestrator
	}
	if m.Worker == "" {
		m.Worker = base.Worker
	}
	if m.Refiner == "" {
		m.Refiner = base.Refiner
	}
	return m
}

type DomainConfig struct {
	Models RoleModels `toml:"models"`
	Data   string     `toml:"data,omitempty"`
}

type Config struct {
	Defaults struct {
		Domain        string `toml:"domain"`
		Mode          string `toml:"mode"`
		MaxIterations int    `toml:"max_iterations"` // 0 uses the mode default
		OutputDir     string `toml:"output_dir"`
	} `toml:"defaults"`
	Provider struct {
		Kind    string     `toml:"kind"`
		BaseURL string     `toml:"base_url,omitempty"`
		Models  RoleModels `toml:"models"`
	} `toml:"provider"`
	Retry struct {
		MaxAttempts int      `toml:"max_attempts"`
		BaseDelay   Duration `toml:"base_delay"`
		MaxDelay    Duration `toml:"max_delay"`
	} `toml:"retry"`
	Journal struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"journal"`
	Logging struct {
		Verbose bool   `toml:"verbose"`
		File    string `toml:"file,omitempty"`
	} `toml:"logging"`
	Domains map[string]DomainConfig `toml:"domains,omitempty"`

	// apiKeys come from the environment only and are never written back.
	apiKeys map[providers.Kind]string
}

func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "relay", "config.toml")
}

func Default() *Config {
	var cfg Config

	cfg.Defaults.Domain = "finance"
	cfg.Defaults.Mode = "structured"
	cfg.Defaults.OutputDir = "."
	cfg.Provider.Kind = string(providers.KindGoogle)
	cfg.Provider.Models = RoleModels{
		Orchestrator: "gemini-1.5-pro",
		Worker:       "gemini-1.5-pro",
		Refiner:      "gemini-1.5-flash",
	}
	cfg.Retry.MaxAttempts = 2
	cfg.Retry.BaseDelay = Duration{time.Second}
	cfg.Retry.MaxDelay = Duration{30 * time.Second}
	cfg.Journal.Enabled = true
	cfg.Journal.Path = "relay.db"

	return &cfg
}

func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile decodes path over the defaults. A missing file yields the
// defaults unchanged.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Save() error {
	return c.SaveFile(GetConfigPath())
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

func (c *Config) Validate() error {
	if _, err := providers.ParseKind(c.Provider.Kind); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Defaults.Mode)) {
	case "", "structured", "compat":
	default:
		return fmt.Errorf("defaults.mode %q must be structured or compat", c.Defaults.Mode)
	}
	if c.Defaults.MaxIterations < 0 {
		return fmt.Errorf("defaults.max_iterations must not be negative")
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry.max_attempts must not be negative")
	}
	return nil
}

// ModelsFor resolves the per-role models for domain, falling back to the
// provider-wide models for any role the domain leaves unset.
func (c *Config) ModelsFor(domain string) RoleModels {
	override := c.Domains[strings.ToLower(strings.TrimSpace(domain))]
	return override.Models.merge(c.Provider.Models)
}

// DataFor returns the dataset file configured for domain, if any.
func (c *Config) DataFor(domain string) string {
	return c.Domains[strings.ToLower(strings.TrimSpace(domain))].Data
}

func (c *Config) RetryPolicy() providers.RetryPolicy {
	policy := providers.DefaultRetryPolicy()
	if c.Retry.MaxAttempts > 0 {
		policy.MaxAttempts = c.Retry.MaxAttempts
	}
	if c.Retry.BaseDelay.Duration > 0 {
		policy.BaseDelay = c.Retry.BaseDelay.Duration
	}
	if c.Retry.MaxDelay.Duration > 0 {
		policy.MaxDelay = c.Retry.MaxDelay.Duration
	}
	return policy
}

// APIKey returns the key found in the environment for kind, or "".
func (c *Config) APIKey(kind providers.Kind) string {
	return c.apiKeys[kind]
}
