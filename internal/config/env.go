package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yubzen/relay/internal/providers"
)

// envKeys maps viper keys to the variables that set them. Each key is read
// from the process environment first and the .env file second.
var envKeys = map[string]string{
	"relay_provider":           "RELAY_PROVIDER",
	"relay_base_url":           "RELAY_BASE_URL",
	"relay_mode":               "RELAY_MODE",
	"relay_max_iterations":     "RELAY_MAX_ITERATIONS",
	"relay_output_dir":         "RELAY_OUTPUT_DIR",
	"relay_journal":            "RELAY_JOURNAL",
	"relay_orchestrator_model": "RELAY_ORCHESTRATOR_MODEL",
	"relay_worker_model":       "RELAY_WORKER_MODEL",
	"relay_refiner_model":      "RELAY_REFINER_MODEL",
}

// ApplyEnv overlays the optional dir/.env file and the process environment
// on top of c. API keys are captured here and nowhere else.
func (c *Config) ApplyEnv(dir string) error {
	v := viper.New()

	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	for key, name := range envKeys {
		if err := v.BindEnv(key, name); err != nil {
			return err
		}
	}
	for _, kind := range providers.Kinds() {
		if err := v.BindEnv(strings.ToLower(kind.EnvVar()), kind.EnvVar()); err != nil {
			return err
		}
	}

	if s := v.GetString("relay_provider"); s != "" {
		c.Provider.Kind = s
	}
	if s := v.GetString("relay_base_url"); s != "" {
		c.Provider.BaseURL = s
	}
	if s := v.GetString("relay_mode"); s != "" {
		c.Defaults.Mode = s
	}
	if v.IsSet("relay_max_iterations") {
		c.Defaults.MaxIterations = v.GetInt("relay_max_iterations")
	}
	if s := v.GetString("relay_output_dir"); s != "" {
		c.Defaults.OutputDir = s
	}
	if s := v.GetString("relay_journal"); s != "" {
		c.Journal.Path = s
	}
	if s := v.GetString("relay_orchestrator_model"); s != "" {
		c.Provider.Models.Orchestrator = s
	}
	if s := v.GetString("relay_worker_model"); s != "" {
		c.Provider.Models.Worker = s
	}
	if s := v.GetString("relay_refiner_model"); s != "" {
		c.Provider.Models.Refiner = s
	}

	c.apiKeys = make(map[providers.Kind]string)
	for _, kind := range providers.Kinds() {
		if key := strings.TrimSpace(v.GetString(strings.ToLower(kind.EnvVar()))); key != "" {
			c.apiKeys[kind] = key
		}
	}

	return c.Validate()
}
