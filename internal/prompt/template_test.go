package prompt

import (
	"strings"
	"testing"
)

func TestRender_ExpandsVariables(t *testing.T) {
	out, err := Render("hello {{name}}, attempt {{attempt}}", Vars{
		"name":    "world",
		"attempt": "2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello world, attempt 2" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRender_MissingVariables(t *testing.T) {
	_, err := Render("{{b}} and {{a}} and {{b}}", Vars{})
	if err == nil {
		t.Fatal("expected error for missing variables")
	}
	// Missing names are deduplicated and sorted.
	if !strings.Contains(err.Error(), "a, b") {
		t.Errorf("expected sorted missing names, got: %v", err)
	}
}

func TestRender_EmptyValueIsNotMissing(t *testing.T) {
	out, err := Render("[{{x}}]", Vars{"x": ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[]" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestBuiltinTemplates_Render(t *testing.T) {
	gen, err := Render(GenerateTest, Vars{
		"language":      "Python",
		"function_name": "add",
		"args":          "['a', 'b']",
		"annotations":   "none",
		"docstring":     "Adds two numbers.",
		"file_content":  "def add(a, b):\n    return a + b\n",
	})
	if err != nil {
		t.Fatalf("render GenerateTest: %v", err)
	}
	if !strings.Contains(gen, "Function name: add") {
		t.Errorf("generation prompt missing function name:\n%s", gen)
	}
	if !strings.Contains(gen, "def add(a, b):") {
		t.Errorf("generation prompt missing file context:\n%s", gen)
	}

	rep, err := Render(RepairTest, Vars{
		"error":        "ImportError: no module named foo",
		"test_content": "import foo",
	})
	if err != nil {
		t.Fatalf("render RepairTest: %v", err)
	}
	if !strings.Contains(rep, "ImportError") {
		t.Errorf("repair prompt missing error text:\n%s", rep)
	}
}
