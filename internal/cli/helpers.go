package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"testforge/internal/config"
	"testforge/internal/coverage"
	"testforge/internal/db"
	"testforge/internal/ledger"
	"testforge/internal/llm"
	"testforge/internal/synth"
	"testforge/internal/validate"
)

// loadConfig loads and validates the config from --config or the default
// search locations.
func loadConfig() (*config.ForgeConfig, error) {
	var (
		cfg *config.ForgeConfig
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid config:\n  %s", strings.Join(msgs, "\n  "))
	}
	return cfg, nil
}

// buildClient creates the completion client, reading the API key from the
// configured environment variable.
func buildClient(f *config.Forge) (llm.CompletionClient, error) {
	apiKey := os.Getenv(f.Completion.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("completion API key: environment variable %s is not set", f.Completion.APIKeyEnv)
	}
	return llm.NewOpenAIClient(apiKey, f.Completion.Model, f.Completion.BaseURL)
}

func baseParams(f *config.Forge) llm.Params {
	return llm.Params{
		MaxTokens:   f.Completion.MaxTokens,
		Temperature: f.Completion.Temperature,
	}
}

func newSynthesizer(client llm.CompletionClient, f *config.Forge) *synth.Synthesizer {
	return synth.New(client, synth.Options{
		RepoRoot:  f.Repo,
		OutputDir: f.OutputPath(),
		Language:  f.Language,
		Params:    baseParams(f),
	})
}

func newLoop(client llm.CompletionClient, f *config.Forge, led *ledger.Ledger, events validate.EventLog) *validate.Loop {
	runner := &validate.ExecRunner{
		CommandTemplate: f.Exec.Command,
		Timeout:         f.ExecTimeout(0),
	}

	loop := validate.NewLoop(runner, client, led)
	loop.SetClassifier(&validate.MarkerClassifier{Marker: f.AssertionMarker})
	loop.SetPolicy(llm.Escalate(baseParams(f), f.Completion.EscalationStep))
	loop.SetMaxAttempts(f.MaxIterations)
	loop.SetWorkDir(f.Repo)
	if events != nil {
		loop.SetEvents(events)
	}
	return loop
}

func newCoverageSink(f *config.Forge, out io.Writer) coverage.Sink {
	if f.Coverage.StartCommand == "" && f.Coverage.ReportCommand == "" {
		return coverage.Nop{}
	}
	return &coverage.CommandSink{
		Dir:           f.Repo,
		StartCommand:  f.Coverage.StartCommand,
		ReportCommand: f.Coverage.ReportCommand,
		Out:           out,
	}
}

// openRunLog opens the optional run-history database. The cleanup function is
// always safe to call.
func openRunLog(f *config.Forge) (*db.RunLog, func(), error) {
	if f.DatabaseURL == "" {
		return nil, func() {}, nil
	}
	d, err := db.Open(f.DatabaseURL)
	if err != nil {
		return nil, func() {}, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, func() {}, err
	}
	return d.NewRun(), func() { d.Close() }, nil
}
