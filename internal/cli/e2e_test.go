package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"testforge/internal/ledger"
)

// fakeCompletionServer serves an OpenAI-shaped chat-completions endpoint that
// always returns the given text.
func fakeCompletionServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": text}, "finish_reason": "stop"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setupRepo builds a throwaway repo: one source file, one descriptor for
// add(a, b), and a config whose exec step runs the artifact through sh so no
// Python toolchain is needed.
func setupRepo(t *testing.T, backendURL string) (repo string, cfgFile string) {
	t.Helper()
	repo = t.TempDir()

	source := "def add(a, b):\n    return a + b\n"
	if err := os.WriteFile(filepath.Join(repo, "add.py"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	metadata := `{
  "files": {
    "add.py": [
      {"name": "add", "args": ["a", "b"], "annotations": {}, "docstring": null}
    ]
  },
  "dependencies": {"add": []}
}`
	if err := os.WriteFile(filepath.Join(repo, "metadata.json"), []byte(metadata), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := fmt.Sprintf(`forge:
  repo: %s
  completion:
    model: gpt-4
    base_url: %s/v1
    api_key_env: TESTFORGE_TEST_KEY
  exec:
    command: "sh {{test_file}}"
    timeout: "10s"
`, repo, backendURL)
	cfgFile = filepath.Join(repo, "testforge.yaml")
	if err := os.WriteFile(cfgFile, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TESTFORGE_TEST_KEY", "test-key")
	return repo, cfgFile
}

func TestRun_EndToEnd_CleanPass(t *testing.T) {
	// The "generated test" is a shell script that passes.
	srv := fakeCompletionServer(t, "true # assert add(2,3)==5")
	repo, cfgFile := setupRepo(t, srv.URL)

	out, err := executeCommand("run", "--config", cfgFile)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 passed, 0 code issues, 0 exhausted") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	// Artifact holds exactly the synthesized block; validation never touched it.
	data, err := os.ReadFile(filepath.Join(repo, "unit_tests", "test_add.py"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "true # assert add(2,3)==5\n\n" {
		t.Errorf("unexpected artifact content: %q", data)
	}

	led, err := ledger.Load(filepath.Join(repo, "test_failure_log.json"))
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if !led.Empty() {
		t.Errorf("expected empty ledger, got %+v", led)
	}
}

func TestRun_EndToEnd_TrueDefect(t *testing.T) {
	// The "generated test" fails with the assertion marker: production code
	// disagrees with the expectation, so no repair may happen.
	script := "echo 'AssertionError: add(2,3) == 6 failed' >&2; exit 1"
	srv := fakeCompletionServer(t, script)
	repo, cfgFile := setupRepo(t, srv.URL)

	out, err := executeCommand("run", "--config", cfgFile)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "0 passed, 1 code issues, 0 exhausted") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	led, err := ledger.Load(filepath.Join(repo, "test_failure_log.json"))
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(led.CodeIssues) != 1 || led.CodeIssues[0].Attempt != 1 {
		t.Fatalf("expected one code issue at attempt 1, got %+v", led.CodeIssues)
	}
	if len(led.TestIssues) != 0 {
		t.Errorf("expected no test issues, got %+v", led.TestIssues)
	}

	// The artifact was never overwritten.
	data, err := os.ReadFile(filepath.Join(repo, "unit_tests", "test_add.py"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != script+"\n\n" {
		t.Errorf("artifact must keep its synthesized content, got %q", data)
	}

	// The ledger command reports the failure.
	ledgerOut, err := executeCommand("ledger", "--config", cfgFile)
	if err != nil {
		t.Fatalf("ledger command: %v", err)
	}
	if !strings.Contains(ledgerOut, "code issues (1)") {
		t.Errorf("unexpected ledger output:\n%s", ledgerOut)
	}
}
