package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses a metadata document from the given path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}
	st, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return st, nil
}

// Parse decodes a metadata document. The "files" object is decoded token by
// token so that key order — the upstream discovery order — is preserved;
// synthesis order, and therefore artifact content, depends on it.
func Parse(data []byte) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	st := &Store{Dependencies: map[string][]string{}}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "files":
			if err := parseFiles(dec, st); err != nil {
				return nil, err
			}
		case "dependencies":
			if err := dec.Decode(&st.Dependencies); err != nil {
				return nil, fmt.Errorf("decode dependencies: %w", err)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip field %q: %w", key, err)
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return st, nil
}

func parseFiles(dec *json.Decoder, st *Store) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		path, err := stringToken(dec)
		if err != nil {
			return err
		}
		var fns []FunctionDescriptor
		if err := dec.Decode(&fns); err != nil {
			return fmt.Errorf("decode descriptors for %s: %w", path, err)
		}
		st.Files = append(st.Files, FileEntry{Path: path, Functions: fns})
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %v", tok)
	}
	return s, nil
}
