package analyze

import (
	"testing"

	"github.com/drift-docs/drift-cli/internal/state"
)

func TestClassify_TrivialBeforeCritical(t *testing.T) {
	c := NewClassifier(nil, nil)

	// A test file under cmd/ matches both tables; trivial wins.
	got := c.Classify("cmd/foo_test.go")
	if got.Priority != state.PrioritySkip {
		t.Fatalf("Classify = %+v, want skip", got)
	}
	if got.Group != "test" {
		t.Fatalf("unexpected group: %+v", got)
	}
}

func TestClassify_Critical(t *testing.T) {
	c := NewClassifier(nil, nil)

	got := c.Classify("README.md")
	if got.Priority != state.PriorityHigh || got.Group != "readme" {
		t.Fatalf("Classify = %+v, want high/readme", got)
	}

	got = c.Classify("cmd/drift/scan.go")
	if got.Priority != state.PriorityHigh || got.Group != "entry_points" {
		t.Fatalf("Classify = %+v, want high/entry_points", got)
	}
}

func TestClassify_Normal(t *testing.T) {
	c := NewClassifier(nil, nil)
	got := c.Classify("internal/scope/filter.go")
	if got.Priority != state.PriorityNormal {
		t.Fatalf("Classify = %+v, want normal", got)
	}
	if got.Group != "" || got.Pattern != "" {
		t.Fatalf("normal classification should carry no match: %+v", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := NewClassifier(nil, nil)
	upper := c.Classify("TEST_FILE.PY")
	lower := c.Classify("test_file.py")
	if upper != lower {
		t.Fatalf("case sensitivity leak: %+v vs %+v", upper, lower)
	}
	if upper.Priority != state.PrioritySkip {
		t.Fatalf("Classify = %+v, want skip", upper)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewClassifier(nil, nil)
	p := "pkg/server/handler.go"
	first := c.Classify(p)
	for i := 0; i < 3; i++ {
		if got := c.Classify(p); got != first {
			t.Fatalf("classification changed across calls: %+v vs %+v", got, first)
		}
	}
}

func TestClassify_InjectableTables(t *testing.T) {
	c := NewClassifier(
		[]PatternGroup{{Name: "scratch", Patterns: []string{"scratch/*"}}},
		[]PatternGroup{{Name: "core", Patterns: []string{"core/*"}}},
	)
	if got := c.Classify("scratch/notes.go"); got.Priority != state.PrioritySkip {
		t.Fatalf("custom trivial table ignored: %+v", got)
	}
	if got := c.Classify("core/engine.go"); got.Priority != state.PriorityHigh {
		t.Fatalf("custom critical table ignored: %+v", got)
	}
	// Default patterns must not apply with custom tables.
	if got := c.Classify("README.md"); got.Priority != state.PriorityNormal {
		t.Fatalf("default table leaked into custom classifier: %+v", got)
	}
}

func TestClassification_Reason(t *testing.T) {
	c := Classification{Priority: state.PrioritySkip, Group: "lock", Pattern: "*.lock"}
	if got := c.Reason(); got != "trivial file (lock: *.lock)" {
		t.Fatalf("Reason = %q", got)
	}
	if got := (Classification{Priority: state.PriorityNormal}).Reason(); got != "no pattern matched" {
		t.Fatalf("Reason = %q", got)
	}
}
