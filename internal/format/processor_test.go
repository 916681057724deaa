package format

import (
	"strings"
	"testing"

	"github.com/drift-docs/drift-cli/internal/state"
)

func TestCombinedRelevance(t *testing.T) {
	cases := []struct {
		name string
		rec  state.ChangeRecord
		want float64
	}{
		{"bare", state.ChangeRecord{}, 0},
		{"scope only", state.ChangeRecord{MaxRelevance: 0.5}, 0.5},
		{"high priority boost", state.ChangeRecord{MaxRelevance: 0.4, Priority: state.PriorityHigh}, 0.7},
		{"term boost", state.ChangeRecord{MaxRelevance: 0.4, TermMatches: 2}, 0.5},
		{"term boost capped", state.ChangeRecord{MaxRelevance: 0.4, TermMatches: 100}, 0.6},
		{"clamped", state.ChangeRecord{MaxRelevance: 0.9, Priority: state.PriorityHigh, TermMatches: 100}, 1.0},
	}
	for _, c := range cases {
		got := CombinedRelevance(&c.rec)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s: CombinedRelevance = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSortByPriority(t *testing.T) {
	changes := map[string]*state.ChangeRecord{
		"b.go": {Path: "b.go", Magnitude: &state.Magnitude{Score: 1.0}},
		"a.go": {Path: "a.go", Magnitude: &state.Magnitude{Score: 1.0}},
		"c.go": {Path: "c.go", Priority: state.PriorityHigh, Magnitude: &state.Magnitude{Score: 0.2}},
		"d.go": {Path: "d.go", Magnitude: &state.Magnitude{Score: 0.4}},
	}

	got := NewProcessor().SortByPriority(changes)
	var order []string
	for _, rec := range got {
		order = append(order, rec.Path)
	}

	// High first despite its small magnitude, then magnitude desc, path asc.
	want := []string{"c.go", "a.go", "b.go", "d.go"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func sampleSummary() *state.CodeSummary {
	return &state.CodeSummary{
		SpecificChanges: []state.ChangeDetail{
			{Name: "add retry loop", Description: "wraps the fetch in bounded retries"},
			{Name: "drop dead flag"},
		},
		FunctionalImpact:    []string{"fetches survive transient failures"},
		ProgrammingLanguage: "go",
	}
}

// The high tier must carry every specific change; pruning there would lose
// the only detailed record of what changed.
func TestFormatAdaptive_HighTierKeepsEverything(t *testing.T) {
	changes := map[string]*state.ChangeRecord{
		"src/fetch.go": {
			Path:         "src/fetch.go",
			MaxRelevance: 0.9,
			Magnitude:    &state.Magnitude{Score: 0.8},
			Summary:      sampleSummary(),
		},
	}

	out := NewProcessor().FormatAdaptive(changes)
	for _, want := range []string{
		"### src/fetch.go (priority: normal, magnitude: 0.80, relevance: 0.90)",
		"Language: go",
		"- fetches survive transient failures",
		"- add retry loop: wraps the fetch in bounded retries",
		"- drop dead flag",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "omitted") {
		t.Fatalf("high tier pruned detail:\n%s", out)
	}
}

func TestFormatAdaptive_MediumTierOmitsChanges(t *testing.T) {
	changes := map[string]*state.ChangeRecord{
		"src/fetch.go": {
			Path:         "src/fetch.go",
			MaxRelevance: 0.4,
			Summary:      sampleSummary(),
		},
	}

	out := NewProcessor().FormatAdaptive(changes)
	if !strings.Contains(out, "- fetches survive transient failures") {
		t.Fatalf("medium tier lost functional impact:\n%s", out)
	}
	if !strings.Contains(out, "Changes: 2 detailed change(s) omitted") {
		t.Fatalf("medium tier missing omission note:\n%s", out)
	}
	if strings.Contains(out, "add retry loop") {
		t.Fatalf("medium tier leaked detailed changes:\n%s", out)
	}
}

func TestFormatAdaptive_LowTier(t *testing.T) {
	changes := map[string]*state.ChangeRecord{
		"src/fetch.go": {
			Path:    "src/fetch.go",
			Summary: sampleSummary(),
		},
	}

	out := NewProcessor().FormatAdaptive(changes)
	for _, want := range []string{
		"- fetches survive transient failures",
		"Language: go",
		"2 change(s) omitted (low relevance)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "add retry loop") {
		t.Fatalf("low tier leaked detailed changes:\n%s", out)
	}
}

func TestFormatAdaptive_NoSummary(t *testing.T) {
	changes := map[string]*state.ChangeRecord{
		"src/fetch.go": {Path: "src/fetch.go"},
	}
	out := NewProcessor().FormatAdaptive(changes)
	if !strings.Contains(out, "(no summary available)") {
		t.Fatalf("missing placeholder:\n%s", out)
	}
}

func TestFormatAdaptive_ZeroValueProcessorUsesDefaults(t *testing.T) {
	changes := map[string]*state.ChangeRecord{
		"src/fetch.go": {Path: "src/fetch.go", MaxRelevance: 0.9, Summary: sampleSummary()},
	}
	var p Processor
	if out := p.FormatAdaptive(changes); !strings.Contains(out, "- add retry loop") {
		t.Fatalf("zero-value processor did not apply default thresholds:\n%s", out)
	}
}
