package scope

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMarkdown(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestBootstrap(t *testing.T) {
	repo := t.TempDir()
	writeMarkdown(t, repo, "docs/user-guide.md",
		"---\nkeywords: scanning filtering\n---\n"+
			"# CLI Commands\nHow to run the scanner.\n"+
			"## Release Notes\nWhat changed between versions.\n")

	tpl, err := Bootstrap(repo, "docs")
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	doc, ok := tpl.Docs["user_guide"]
	if !ok {
		t.Fatalf("doc key not derived: %v", tpl.Docs)
	}
	if doc.Path != "docs/user-guide.md" {
		t.Fatalf("doc path = %q", doc.Path)
	}

	cli, ok := doc.Sections["cli_commands"]
	if !ok {
		t.Fatalf("sections = %v", doc.SectionNames())
	}
	if cli.Description != "How to run the scanner." {
		t.Fatalf("description = %q", cli.Description)
	}
	if len(cli.Triggers.CodePatterns) == 0 || cli.Triggers.CodePatterns[0] != "**/cli/**" {
		t.Fatalf("cli triggers not guessed: %+v", cli.Triggers)
	}
	if cli.Triggers.MinMagnitude != 0.3 {
		t.Fatalf("MinMagnitude = %v", cli.Triggers.MinMagnitude)
	}

	// Frontmatter keywords feed the relevant terms.
	var hasKeyword bool
	for _, term := range cli.Triggers.RelevantTerms {
		if term == "scanning" {
			hasKeyword = true
		}
	}
	if !hasKeyword {
		t.Fatalf("keywords not mined: %v", cli.Triggers.RelevantTerms)
	}

	// A heading with no table match falls back to generic source triggers
	// with a higher magnitude bar.
	generic, ok := doc.Sections["release_notes"]
	if !ok {
		t.Fatalf("sections = %v", doc.SectionNames())
	}
	if generic.Triggers.MinMagnitude != 0.6 {
		t.Fatalf("generic MinMagnitude = %v", generic.Triggers.MinMagnitude)
	}
	if len(generic.Triggers.CodePatterns) == 0 {
		t.Fatalf("generic section has no patterns: %+v", generic.Triggers)
	}
}

func TestBootstrap_HeadinglessDocGetsOverview(t *testing.T) {
	repo := t.TempDir()
	writeMarkdown(t, repo, "docs/notes.md", "just some prose, no headings\n")

	tpl, err := Bootstrap(repo, "docs")
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	doc := tpl.Docs["notes"]
	if _, ok := doc.Sections["overview"]; !ok {
		t.Fatalf("fallback overview section missing: %v", doc.SectionNames())
	}
}

func TestBootstrap_MissingDocsDir(t *testing.T) {
	tpl, err := Bootstrap(t.TempDir(), "docs")
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if len(tpl.Docs) != 0 {
		t.Fatalf("docs = %v", tpl.Docs)
	}
}
