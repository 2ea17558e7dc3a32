// Package artifact owns the naming convention and file handling for
// generated test artifacts: one plain-text file per source file, accumulating
// generated blocks during synthesis and rewritten whole during repair.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const namePrefix = "test_"

// Name returns the artifact filename for a source file path:
// test_<source-basename>.
func Name(sourcePath string) string {
	return namePrefix + filepath.Base(sourcePath)
}

// Matches reports whether filename follows the artifact naming convention.
func Matches(filename string) bool {
	return strings.HasPrefix(filename, namePrefix)
}

// Append adds a generated block plus a blank-line separator to the artifact,
// creating it if absent.
func Append(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	if _, err := f.WriteString(text + "\n\n"); err != nil {
		f.Close()
		return fmt.Errorf("append artifact %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", path, err)
	}
	return nil
}

// Overwrite replaces the artifact content in place with a repaired test.
func Overwrite(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("overwrite artifact %s: %w", path, err)
	}
	return nil
}

// List returns the artifact paths in dir, in directory listing (sorted name)
// order, skipping subdirectories and files outside the naming convention.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !Matches(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
