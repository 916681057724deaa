package scope

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTemplate_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.yaml")

	tpl := &Template{Docs: map[string]DocScope{
		"readme": {
			Path: "README.md",
			Sections: map[string]Section{
				"overview": {
					Description: "what the tool does",
					Triggers: UpdateTriggers{
						CodePatterns:  []string{"*/cli/*"},
						ChangeTypes:   []string{"cli"},
						MinMagnitude:  0.3,
						RelevantTerms: []string{"drift", "scan"},
					},
				},
			},
		},
	}}
	if err := tpl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sec, ok := got.Docs["readme"].Sections["overview"]
	if !ok {
		t.Fatalf("round trip lost section: %+v", got)
	}
	if sec.Triggers.MinMagnitude != 0.3 || len(sec.Triggers.CodePatterns) != 1 {
		t.Fatalf("triggers changed: %+v", sec.Triggers)
	}
}

func TestLoad_MissingFileIsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "scope.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	// Callers use this to fail open when no scope was set up.
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error does not wrap os.ErrNotExist: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.yaml")
	if err := os.WriteFile(path, []byte(":\n :bad"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid YAML")
	}
}

func TestTemplate_KeysAndCounts(t *testing.T) {
	tpl := &Template{Docs: map[string]DocScope{
		"zeta":  {Sections: map[string]Section{"a": {}, "b": {}}},
		"alpha": {Sections: map[string]Section{"c": {}}},
	}}

	keys := tpl.DocKeys()
	if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "zeta" {
		t.Fatalf("DocKeys = %v", keys)
	}
	if tpl.SectionCount() != 3 {
		t.Fatalf("SectionCount = %d", tpl.SectionCount())
	}
	names := tpl.Docs["zeta"].SectionNames()
	if len(names) != 2 || names[0] != "a" {
		t.Fatalf("SectionNames = %v", names)
	}
}
