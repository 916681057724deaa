package analyze

import (
	"fmt"
	"strings"

	"github.com/drift-docs/drift-cli/internal/state"
)

// PatternGroup is a named set of glob patterns used by the classifier.
type PatternGroup struct {
	Name     string
	Patterns []string
}

// Classification is the result of classifying one file path.
//
// Group and Pattern identify which table entry decided the outcome; both are
// empty for PriorityNormal.
type Classification struct {
	Priority state.Priority
	Group    string
	Pattern  string
}

// Reason renders a human-readable explanation of the classification.
func (c Classification) Reason() string {
	switch c.Priority {
	case state.PrioritySkip:
		return fmt.Sprintf("trivial file (%s: %s)", c.Group, c.Pattern)
	case state.PriorityHigh:
		return fmt.Sprintf("critical file (%s: %s)", c.Group, c.Pattern)
	default:
		return "no pattern matched"
	}
}

// DefaultTrivialGroups lists file patterns that are never worth documenting:
// tests, lockfiles, vendored trees, generated and minified output.
func DefaultTrivialGroups() []PatternGroup {
	return []PatternGroup{
		{Name: "test", Patterns: []string{
			"test_*", "*_test.*", "*.test.*", "*_spec.*",
			"**/tests/**", "**/test/**", "**/__tests__/**", "**/testdata/**",
		}},
		{Name: "lock", Patterns: []string{
			"*.lock", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
			"go.sum", "pipfile.lock", "poetry.lock", "cargo.lock",
		}},
		{Name: "vendor", Patterns: []string{
			"**/vendor/**", "**/node_modules/**", "**/third_party/**",
			"**/.venv/**", "**/dist/**", "**/build/**",
		}},
		{Name: "generated", Patterns: []string{
			"*.pb.go", "*_generated.*", "*.gen.*", "**/generated/**",
			"*_pb2.py", "*.g.cs",
		}},
		{Name: "minified", Patterns: []string{
			"*.min.js", "*.min.css", "*.map",
		}},
	}
}

// DefaultCriticalGroups lists file patterns that almost always affect docs:
// readmes, API definitions, entry points, and top-level configuration.
func DefaultCriticalGroups() []PatternGroup {
	return []PatternGroup{
		{Name: "readme", Patterns: []string{
			"readme*", "**/readme*", "changelog*", "**/docs/**",
		}},
		{Name: "api_docs", Patterns: []string{
			"**/api/**", "openapi.*", "swagger.*", "*.proto", "*.graphql",
		}},
		{Name: "entry_points", Patterns: []string{
			"main.*", "**/cmd/**", "__main__.py", "setup.py", "cli.*",
			"**/cli/**", "index.js", "index.ts", "app.py",
		}},
		{Name: "config", Patterns: []string{
			"*.yaml", "*.yml", "*.toml", "*.ini", "*.cfg",
			"dockerfile*", "makefile", "*.mk",
		}},
	}
}

// Classifier assigns a fast pattern-based priority to file paths.
//
// Classification is a pure function of the path string: no I/O, no shared
// mutable state, safe for concurrent use.
type Classifier struct {
	trivial  []PatternGroup
	critical []PatternGroup
}

// NewClassifier builds a classifier from the given pattern tables.
// Nil tables fall back to the built-in defaults.
func NewClassifier(trivial, critical []PatternGroup) *Classifier {
	if trivial == nil {
		trivial = DefaultTrivialGroups()
	}
	if critical == nil {
		critical = DefaultCriticalGroups()
	}
	return &Classifier{trivial: trivial, critical: critical}
}

// Classify maps a file path to SKIP, HIGH, or NORMAL. Matching is
// case-insensitive; trivial patterns are checked before critical ones and the
// first match wins within each table.
func (c *Classifier) Classify(p string) Classification {
	lower := strings.ToLower(strings.ReplaceAll(p, "\\", "/"))

	for _, g := range c.trivial {
		if pat, ok := MatchAny(g.Patterns, lower); ok {
			return Classification{Priority: state.PrioritySkip, Group: g.Name, Pattern: pat}
		}
	}
	for _, g := range c.critical {
		if pat, ok := MatchAny(g.Patterns, lower); ok {
			return Classification{Priority: state.PriorityHigh, Group: g.Name, Pattern: pat}
		}
	}
	return Classification{Priority: state.PriorityNormal}
}
