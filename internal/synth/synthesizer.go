// Package synth turns function descriptors into generated test artifacts.
package synth

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"testforge/internal/artifact"
	"testforge/internal/descriptor"
	"testforge/internal/llm"
	"testforge/internal/prompt"
)

// Options configures a Synthesizer.
type Options struct {
	RepoRoot  string     // root the metadata's relative paths resolve against
	OutputDir string     // reset and recreated before synthesis
	Language  string     // language named in the generation prompt
	Params    llm.Params // fixed generation parameters for every descriptor
}

// Synthesizer generates one test artifact per source file, appending a block
// per descriptor in store order.
type Synthesizer struct {
	client   llm.CompletionClient
	opts     Options
	progress io.Writer
}

// New creates a Synthesizer.
func New(client llm.CompletionClient, opts Options) *Synthesizer {
	return &Synthesizer{client: client, opts: opts}
}

// SetProgress sets a writer for per-function progress lines (e.g. os.Stderr).
func (s *Synthesizer) SetProgress(w io.Writer) {
	s.progress = w
}

func (s *Synthesizer) logf(format string, args ...interface{}) {
	if s.progress != nil {
		fmt.Fprintf(s.progress, "  → "+format+"\n", args...)
	}
}

// Generate resets the output directory, then walks the store in order — files
// in discovery order, descriptors in extraction order — requesting a test for
// each descriptor and appending it to the source file's artifact. The double
// loop order determines concatenation order inside each artifact and must not
// change between runs.
func (s *Synthesizer) Generate(ctx context.Context, store *descriptor.Store) error {
	if err := s.resetOutputDir(); err != nil {
		return err
	}

	for _, entry := range store.Files {
		if len(entry.Functions) == 0 {
			continue
		}

		// Source text is read lazily, once per file, when its first
		// descriptor is synthesized.
		src, err := os.ReadFile(filepath.Join(s.opts.RepoRoot, entry.Path))
		if err != nil {
			return fmt.Errorf("read source %s: %w", entry.Path, err)
		}

		artifactPath := filepath.Join(s.opts.OutputDir, artifact.Name(entry.Path))
		for _, fn := range entry.Functions {
			s.logf("generating test for %s in %s", fn.Name, entry.Path)

			p, err := buildPrompt(s.opts.Language, fn, string(src))
			if err != nil {
				return fmt.Errorf("build prompt for %s: %w", fn.Name, err)
			}

			text, err := s.client.Complete(ctx, p, s.opts.Params)
			if err != nil {
				return fmt.Errorf("generate test for %s: %w", fn.Name, err)
			}

			if err := artifact.Append(artifactPath, text); err != nil {
				return err
			}
			s.logf("test saved to %s", artifactPath)
		}
	}
	return nil
}

// resetOutputDir destroys and recreates the output directory so a run never
// inherits artifacts from a previous one.
func (s *Synthesizer) resetOutputDir() error {
	dir := s.opts.OutputDir
	if dir == "" {
		return fmt.Errorf("output directory is not set")
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear output dir %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

// buildPrompt renders the generation prompt for one descriptor. Missing
// annotations and docstrings become an explicit "none" sentinel so the prompt
// shape is deterministic.
func buildPrompt(language string, fn descriptor.FunctionDescriptor, fileContent string) (string, error) {
	return prompt.Render(prompt.GenerateTest, prompt.Vars{
		"language":      language,
		"function_name": fn.Name,
		"args":          formatArgs(fn.Args),
		"annotations":   formatAnnotations(fn.Args, fn.Annotations),
		"docstring":     orNone(fn.Docstring),
		"file_content":  fileContent,
	})
}

func formatArgs(args []string) string {
	if len(args) == 0 {
		return "none"
	}
	return strings.Join(args, ", ")
}

// formatAnnotations renders per-argument annotations in argument order, with
// a "none" sentinel for arguments that have no annotation.
func formatAnnotations(args []string, annotations map[string]string) string {
	if len(args) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg+": "+orNone(annotations[arg]))
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
