// Package docscan builds the documentation state consumed by the term
// index: one record per markdown file, with a content hash and a section
// summary extracted from headings, backticked identifiers, and path-like
// references.
package docscan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/state"
)

var (
	reBacktick = regexp.MustCompile("`([^`\n]+)`")
	rePathRef  = regexp.MustCompile(`[A-Za-z0-9_.-]+(?:/[A-Za-z0-9_.-]+)+`)
)

// Scan walks repoRoot/docsDir and returns doc records keyed by repo-relative
// path. Files matching the classifier's trivial patterns are recorded as
// skipped so the index build ignores them but staleness tracking still sees
// a stable universe.
func Scan(repoRoot, docsDir string, classifier *analyze.Classifier) (map[string]*state.DocRecord, error) {
	root := filepath.Join(repoRoot, docsDir)
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return map[string]*state.DocRecord{}, nil
		}
		return nil, fmt.Errorf("cannot stat docs directory %s: %w", root, err)
	}
	if classifier == nil {
		classifier = analyze.NewClassifier(nil, nil)
	}

	docs := make(map[string]*state.DocRecord)

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
		rel = filepath.ToSlash(rel)

		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		rec := &state.DocRecord{Hash: HashContent(b)}
		cls := classifier.Classify(rel)
		rec.Priority = cls.Priority
		if cls.Priority == state.PrioritySkip {
			rec.Skipped = true
		} else {
			rec.Summary = Summarize(string(b))
		}

		docs[rel] = rec
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan docs: %w", err)
	}
	return docs, nil
}

// HashContent fingerprints document content for staleness tracking.
func HashContent(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Summarize splits a markdown body into per-heading sections, collecting
// backticked identifiers and path-like strings as references. Content before
// the first heading lands in an "overview" section.
func Summarize(body string) *state.DocSummary {
	summary := &state.DocSummary{}

	current := state.DocSection{Name: "overview"}
	flush := func() {
		if current.Name != "" && (len(current.References) > 0 || current.Name != "overview" || len(summary.Sections) == 0) {
			summary.Sections = append(summary.Sections, current)
		}
	}

	for _, ln := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(ln)
		if strings.HasPrefix(trimmed, "#") {
			name := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			if name != "" {
				flush()
				current = state.DocSection{Name: name}
			}
			continue
		}
		current.References = append(current.References, lineReferences(trimmed)...)
	}
	flush()
	return summary
}

func lineReferences(line string) []string {
	var refs []string
	for _, m := range reBacktick.FindAllStringSubmatch(line, -1) {
		if ref := strings.TrimSpace(m[1]); ref != "" {
			refs = append(refs, ref)
		}
	}
	for _, m := range rePathRef.FindAllString(line, -1) {
		refs = append(refs, m)
	}
	return refs
}
