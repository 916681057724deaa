// Package state holds the record model shared by the scan pipeline: per-path
// documentation and code-change records, magnitudes, and section relevance.
// Everything here is plain data; the packages that compute it live in
// internal/analyze, internal/scope, and internal/index.
package state

// Priority is the fast pattern-based classification of a changed file.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PrioritySkip   Priority = "skip"
)

// Category is a closed enumeration of change kinds inferred from a file path.
type Category string

const (
	CategoryAPI           Category = "api"
	CategoryCLI           Category = "cli"
	CategoryConfiguration Category = "configuration"
	CategoryArchitecture  Category = "architecture"
	CategoryDeployment    Category = "deployment"
	CategoryTesting       Category = "testing"
	CategorySecurity      Category = "security"
	CategoryFeature       Category = "feature"
	CategoryBugfix        Category = "bugfix"
	CategoryRefactor      Category = "refactor"
	CategoryDocumentation Category = "documentation"
)

// DocSection is one summarized section of a documentation file.
type DocSection struct {
	Name       string   `json:"section_name"`
	References []string `json:"references,omitempty"`
}

// DocSummary is the structured summary of a documentation file.
type DocSummary struct {
	Sections []DocSection `json:"sections"`
}

// DocRecord is the per-document entry of the scanned doc state.
//
// MatchCount/MatchedTerms are attached by the term-index relevance filter;
// ScopeRelevance may be attached by an earlier scope-filtering stage.
type DocRecord struct {
	Hash           string      `json:"hash"`
	Summary        *DocSummary `json:"summary,omitempty"`
	Priority       Priority    `json:"priority,omitempty"`
	Skipped        bool        `json:"skipped,omitempty"`
	ScopeRelevance float64     `json:"scope_relevance,omitempty"`
	MatchCount     int         `json:"match_count,omitempty"`
	MatchedTerms   bool        `json:"matched_terms,omitempty"`
}

// ChangeDetail is one specific change reported in a code summary.
type ChangeDetail struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CodeSummary is the structured summary of a changed code file.
type CodeSummary struct {
	SpecificChanges     []ChangeDetail `json:"specific_changes,omitempty"`
	FunctionalImpact    []string       `json:"functional_impact,omitempty"`
	ProgrammingLanguage string         `json:"programming_language,omitempty"`
}

// Magnitude summarizes how significant a file's change is.
//
// Score is in [0,1]; RenameSimilarity is the git similarity percentage
// (0-100) and only meaningful when IsRename is set. RelatedDocs is populated
// later by the term-index relevance boost.
type Magnitude struct {
	LinesAdded       int      `json:"lines_added"`
	LinesDeleted     int      `json:"lines_deleted"`
	TotalLines       int      `json:"total_lines"`
	IsRename         bool     `json:"is_rename,omitempty"`
	RenameSimilarity int      `json:"rename_similarity,omitempty"`
	Score            float64  `json:"score"`
	RelatedDocs      []string `json:"related_docs,omitempty"`
}

// SectionRelevance scores one (file, documentation section) pairing.
type SectionRelevance struct {
	DocKey            string     `json:"doc_key"`
	SectionName       string     `json:"section_name"`
	RelevanceScore    float64    `json:"relevance_score"`
	MatchedPatterns   []string   `json:"matched_patterns,omitempty"`
	MatchedCategories []Category `json:"matched_categories,omitempty"`
}

// ChangeRecord is the per-file entry of a scan, accumulated stage by stage:
// classification, magnitude, scope relevance, term matches.
type ChangeRecord struct {
	Path       string       `json:"path"`
	Hash       string       `json:"hash,omitempty"`
	Summary    *CodeSummary `json:"summary,omitempty"`
	Priority   Priority     `json:"priority,omitempty"`
	Skipped    bool         `json:"skipped,omitempty"`
	SkipReason string       `json:"skip_reason,omitempty"`
	Magnitude  *Magnitude   `json:"magnitude,omitempty"`

	Category     Category           `json:"category,omitempty"`
	Sections     []SectionRelevance `json:"sections,omitempty"`
	MaxRelevance float64            `json:"max_relevance,omitempty"`
	TermMatches  int                `json:"term_matches,omitempty"`
}

// MagnitudeScore returns the magnitude score, or 0 when none was computed.
func (c *ChangeRecord) MagnitudeScore() float64 {
	if c.Magnitude == nil {
		return 0
	}
	return c.Magnitude.Score
}
