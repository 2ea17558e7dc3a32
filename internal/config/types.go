package config

import "path/filepath"

// ForgeConfig is the top-level configuration structure parsed from YAML.
type ForgeConfig struct {
	Forge Forge `yaml:"forge"`
}

// Forge holds the full tool configuration: repo paths, the retry budget, and
// the completion/execution/coverage sub-configs. It is built once at startup
// and passed into components at construction.
type Forge struct {
	Repo            string     `yaml:"repo"`
	MetadataFile    string     `yaml:"metadata_file"`
	OutputDir       string     `yaml:"output_dir"`
	LedgerFile      string     `yaml:"ledger_file"`
	Language        string     `yaml:"language"`
	MaxIterations   int        `yaml:"max_iterations"`
	AssertionMarker string     `yaml:"assertion_marker"`
	DatabaseURL     string     `yaml:"database_url"`
	Completion      Completion `yaml:"completion"`
	Exec            Exec       `yaml:"exec"`
	Coverage        Coverage   `yaml:"coverage"`
}

// Completion configures the text-generation backend and sampling defaults.
type Completion struct {
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	EscalationStep float32 `yaml:"escalation_step"`
}

// Exec configures how a test artifact is executed.
type Exec struct {
	Command string `yaml:"command"` // must reference {{test_file}}
	Timeout string `yaml:"timeout"`
}

// Coverage configures the optional coverage tool bracketing a run.
type Coverage struct {
	StartCommand  string `yaml:"start_command"`
	ReportCommand string `yaml:"report_command"`
}

// resolve joins a configured path with the repo root unless it is already
// absolute.
func (f *Forge) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Repo, path)
}

// MetadataPath returns the metadata file location, resolved against the repo.
func (f *Forge) MetadataPath() string { return f.resolve(f.MetadataFile) }

// OutputPath returns the artifact output directory, resolved against the repo.
func (f *Forge) OutputPath() string { return f.resolve(f.OutputDir) }

// LedgerPath returns the ledger file location, resolved against the repo.
func (f *Forge) LedgerPath() string { return f.resolve(f.LedgerFile) }
