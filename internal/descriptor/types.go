package descriptor

// FunctionDescriptor is the structured summary of one analyzed function,
// produced by the static-analysis stage. Immutable once loaded.
type FunctionDescriptor struct {
	Name        string            `json:"name"`
	Args        []string          `json:"args"`
	Annotations map[string]string `json:"annotations"`
	Docstring   string            `json:"docstring"`
}

// FileEntry holds the descriptors extracted from one source file, in
// discovery order. A file that failed analysis upstream appears with an
// empty descriptor list.
type FileEntry struct {
	Path      string
	Functions []FunctionDescriptor
}

// Store is the read-only metadata document consumed by the synthesizer:
// source files in discovery order plus the module dependency graph.
type Store struct {
	Files        []FileEntry
	Dependencies map[string][]string
}

// Imports returns the modules imported by the given module, or nil when the
// module is not in the dependency graph.
func (s *Store) Imports(module string) []string {
	return s.Dependencies[module]
}

// FunctionCount returns the total number of descriptors across all files.
func (s *Store) FunctionCount() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Functions)
	}
	return n
}
