package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLedger_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_failure_log.json")

	l := New()
	l.AddTestIssue("unit_tests/test_math.py", "ImportError: no module named foo", 1)
	l.AddTestIssue("unit_tests/test_math.py", "SyntaxError: invalid syntax", 2)
	l.AddCodeIssue("unit_tests/test_util.py", "AssertionError: 5 != 6", 1)

	if err := l.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_EmptyRunSerializesEmptyArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	l := New()
	if !l.Empty() {
		t.Error("new ledger should be empty")
	}
	if err := l.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"test_issues": []`) || !strings.Contains(s, `"code_issues": []`) {
		t.Errorf("expected empty arrays, got:\n%s", s)
	}
}

func TestLedger_SaveOverwritesPriorRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	old := New()
	old.AddCodeIssue("test_old.py", "AssertionError", 1)
	if err := old.Save(path); err != nil {
		t.Fatal(err)
	}

	fresh := New()
	fresh.AddTestIssue("test_new.py", "NameError", 1)
	if err := fresh.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CodeIssues) != 0 {
		t.Errorf("prior run's records should be gone, got %v", got.CodeIssues)
	}
	if len(got.TestIssues) != 1 || got.TestIssues[0].TestFile != "test_new.py" {
		t.Errorf("unexpected records: %v", got.TestIssues)
	}
}
