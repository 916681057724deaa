package scope

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/drift-docs/drift-cli/internal/analyze"
)

// sectionDefaults maps heading keywords to starter update triggers.
// Ordered, first match wins, mirroring the category inference table.
var sectionDefaults = []struct {
	keyword  string
	patterns []string
	types    []string
}{
	{"cli", []string{"**/cli/**", "**/cmd/**", "main.*"}, []string{"cli"}},
	{"command", []string{"**/cli/**", "**/cmd/**"}, []string{"cli"}},
	{"usage", []string{"**/cli/**", "**/cmd/**"}, []string{"cli", "feature"}},
	{"api", []string{"**/api/**", "**/handlers/**", "*.proto"}, []string{"api"}},
	{"endpoint", []string{"**/api/**", "**/routes/**"}, []string{"api"}},
	{"config", []string{"*.yaml", "*.yml", "*.toml", "**/config/**"}, []string{"configuration"}},
	{"install", []string{"dockerfile*", "makefile", "setup.py"}, []string{"deployment", "configuration"}},
	{"deploy", []string{"dockerfile*", "**/deploy/**", "**/k8s/**"}, []string{"deployment"}},
	{"architecture", []string{"**/internal/**", "**/pkg/**"}, []string{"architecture", "refactor"}},
	{"test", []string{"**/tests/**"}, []string{"testing"}},
	{"security", []string{"**/auth/**", "**/security/**"}, []string{"security"}},
}

// Bootstrap generates a starter scope template by scanning the markdown
// files under docsDir: every file becomes a doc entry, every top-level
// heading a section, with triggers guessed from the heading text and
// frontmatter keywords. The result is a starting point meant to be edited,
// not a finished scope.
func Bootstrap(repoRoot, docsDir string) (*Template, error) {
	root := filepath.Join(repoRoot, docsDir)
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &Template{Docs: map[string]DocScope{}}, nil
		}
		return nil, fmt.Errorf("cannot stat docs directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs path is not a directory: %s", root)
	}

	tpl := &Template{Docs: make(map[string]DocScope)}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(repoRoot, path)
		if err != nil {
			return err
		}

		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		h, body := splitFrontmatter(string(b))

		keywords := strings.TrimSpace(h["keywords"])
		if keywords == "" {
			keywords = strings.TrimSpace(h["tags"])
		}

		docKey := docKeyFromPath(rel)
		doc := DocScope{
			Path:     filepath.ToSlash(rel),
			Sections: make(map[string]Section),
		}
		for name, desc := range headingSections(body) {
			doc.Sections[name] = Section{
				Description: desc,
				Triggers:    guessTriggers(name, keywords),
			}
		}
		if len(doc.Sections) == 0 {
			doc.Sections["overview"] = Section{Triggers: guessTriggers("overview", keywords)}
		}

		tpl.Docs[docKey] = doc
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan docs: %w", err)
	}
	return tpl, nil
}

// docKeyFromPath derives a stable doc key from a relative path:
// "docs/user-guide.md" → "user_guide".
func docKeyFromPath(rel string) string {
	base := filepath.Base(rel)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, "-", "_")
	base = strings.ReplaceAll(base, " ", "_")
	return base
}

// headingSections extracts level-1/2 markdown headings and the first
// non-empty line under each as the section description.
func headingSections(body string) map[string]string {
	out := make(map[string]string)
	lines := strings.Split(body, "\n")

	current := ""
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if strings.HasPrefix(trimmed, "# ") || strings.HasPrefix(trimmed, "## ") {
			name := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			name = strings.ToLower(name)
			name = strings.ReplaceAll(name, " ", "_")
			if name != "" {
				out[name] = ""
				current = name
			}
			continue
		}
		if current != "" && out[current] == "" && trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			out[current] = trimmed
		}
	}
	return out
}

// guessTriggers builds starter triggers for a section from its heading text
// and the document's frontmatter keywords.
func guessTriggers(sectionName, keywords string) UpdateTriggers {
	lower := strings.ToLower(sectionName)

	trig := UpdateTriggers{MinMagnitude: 0.3}
	for _, e := range sectionDefaults {
		if strings.Contains(lower, e.keyword) {
			trig.CodePatterns = append([]string{}, e.patterns...)
			trig.ChangeTypes = append([]string{}, e.types...)
			break
		}
	}
	if trig.CodePatterns == nil {
		// Generic section: react to any substantial source change.
		trig.CodePatterns = []string{"**/*.go", "**/*.py", "**/*.ts", "**/*.js"}
		trig.MinMagnitude = 0.6
	}

	for t := range analyze.ExtractTerms(sectionName + " " + keywords) {
		trig.RelevantTerms = append(trig.RelevantTerms, t)
	}
	sort.Strings(trig.RelevantTerms)
	return trig
}
