package cmd

import (
	"strings"
	"testing"

	"github.com/drift-docs/drift-cli/internal/config"
	"github.com/drift-docs/drift-cli/internal/gitio"
)

func TestExcludedBy(t *testing.T) {
	excludes := config.DefaultConfig().Excludes

	cases := []struct {
		path string
		want bool
	}{
		{"src/.DS_Store", true},
		{"build/output.tmp", true},
		{"notes.bak", true},
		{"editor~", true},
		{".idea/workspace.xml", true},
		{"app/__pycache__/mod.cpython-311.pyc", true},
		{"server.log", true},
		{"src/main.go", false},
		{"docs/guide.md", false},
	}
	for _, c := range cases {
		pat, got := excludedBy(excludes, c.path)
		if got != c.want {
			t.Errorf("excludedBy(%q) = (%q, %v), want %v", c.path, pat, got, c.want)
		}
	}
}

func TestStatSummary(t *testing.T) {
	s := statSummary(gitio.DiffStat{Path: "src/main.py", LinesAdded: 12, LinesDeleted: 3})
	if s.ProgrammingLanguage != "python" {
		t.Fatalf("language = %q", s.ProgrammingLanguage)
	}
	if len(s.FunctionalImpact) != 1 || !strings.Contains(s.FunctionalImpact[0], "12 line(s) added") {
		t.Fatalf("impact = %v", s.FunctionalImpact)
	}

	r := statSummary(gitio.DiffStat{
		Path: "new/name.go", OldPath: "old/name.go",
		IsRename: true, RenameSimilarity: 97,
	})
	if len(r.FunctionalImpact) != 2 || !strings.Contains(r.FunctionalImpact[1], "old/name.go") {
		t.Fatalf("rename note missing: %v", r.FunctionalImpact)
	}
}

func TestLanguageFromPath(t *testing.T) {
	cases := map[string]string{
		"cmd/root.go":   "go",
		"SCRIPT.PY":     "python",
		"web/app.ts":    "typescript",
		"unknown.xyz":   "",
		"Makefile":      "",
		"conf/app.yml":  "yaml",
		"conf/app.yaml": "yaml",
	}
	for path, want := range cases {
		if got := languageFromPath(path); got != want {
			t.Errorf("languageFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
