package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a configuration from the given YAML file path, then
// fills in defaults for anything left unset.
func Load(path string) (*ForgeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg ForgeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches standard locations and loads the first config found.
// Search order: ./testforge.yaml, ~/.testforge/config.yaml
func LoadDefault() (*ForgeConfig, error) {
	candidates := []string{"testforge.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".testforge", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return nil, fmt.Errorf("no config found (searched: %v)", candidates)
}

// applyDefaults fills unset fields with the tool's defaults.
func applyDefaults(cfg *ForgeConfig) {
	f := &cfg.Forge

	if f.MetadataFile == "" {
		f.MetadataFile = "metadata.json"
	}
	if f.OutputDir == "" {
		f.OutputDir = "unit_tests"
	}
	if f.LedgerFile == "" {
		f.LedgerFile = "test_failure_log.json"
	}
	if f.Language == "" {
		f.Language = "Python"
	}
	if f.MaxIterations == 0 {
		f.MaxIterations = 3
	}
	if f.AssertionMarker == "" {
		f.AssertionMarker = "AssertionError"
	}

	c := &f.Completion
	if c.Model == "" {
		c.Model = "gpt-4"
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.4
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 700
	}
	if c.EscalationStep == 0 {
		c.EscalationStep = 0.1
	}

	if f.Exec.Command == "" {
		f.Exec.Command = "python -m unittest {{test_file}}"
	}
	if f.Exec.Timeout == "" {
		f.Exec.Timeout = "2m"
	}
}
