// Package index implements the persisted inverted term index that links
// documentation files to the vocabulary of code changes, plus the staleness
// tracking that decides when it must be rebuilt.
package index

import (
	"regexp"
	"sort"
	"strings"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/state"
)

// TermIndex maps normalized terms to the documents mentioning them, tracks
// the content hash each document was indexed at, and collects code-path glob
// patterns mined from document references, bucketed by section category.
//
// A single writer builds the index per scan cycle; after that, concurrent
// reads are safe.
type TermIndex struct {
	TermToDocs   map[string]map[string]struct{}
	DocHashes    map[string]string
	CodePatterns map[string]map[string]struct{}
}

// NewTermIndex returns an empty index.
func NewTermIndex() *TermIndex {
	return &TermIndex{
		TermToDocs:   make(map[string]map[string]struct{}),
		DocHashes:    make(map[string]string),
		CodePatterns: make(map[string]map[string]struct{}),
	}
}

// Empty reports whether the index has never been built (or failed to load).
func (ix *TermIndex) Empty() bool {
	return len(ix.DocHashes) == 0
}

func (ix *TermIndex) reset() {
	ix.TermToDocs = make(map[string]map[string]struct{})
	ix.DocHashes = make(map[string]string)
	ix.CodePatterns = make(map[string]map[string]struct{})
}

// Build (re)builds the index from the current doc state. Skipped documents
// and documents without a summary are ignored. When extractPatterns is set,
// file-path-like substrings in section references are generalized into glob
// patterns under the section's inferred category.
func (ix *TermIndex) Build(docs map[string]*state.DocRecord, extractPatterns bool) {
	ix.reset()

	for docID, rec := range docs {
		if rec == nil || rec.Skipped || rec.Summary == nil {
			continue
		}
		ix.DocHashes[docID] = rec.Hash

		for _, sec := range rec.Summary.Sections {
			ix.addTerms(docID, analyze.ExtractTerms(sec.Name))
			for _, ref := range sec.References {
				ix.addTerms(docID, analyze.ExtractTerms(ref))
				if extractPatterns {
					ix.minePatterns(sec.Name, ref)
				}
			}
		}
	}
}

func (ix *TermIndex) addTerms(docID string, terms map[string]struct{}) {
	for t := range terms {
		set, ok := ix.TermToDocs[t]
		if !ok {
			set = make(map[string]struct{})
			ix.TermToDocs[t] = set
		}
		set[docID] = struct{}{}
	}
}

// rePathLike finds path-like substrings: two or more slash-separated
// identifier segments.
var rePathLike = regexp.MustCompile(`[A-Za-z0-9_.-]+(?:/[A-Za-z0-9_.-]+)+`)

const minPathSegmentLen = 2

// minePatterns extracts path-like references and generalizes each into three
// glob variants: rooted (dir/*), component (*/dir/*), and deep (**/dir/**).
func (ix *TermIndex) minePatterns(sectionName, ref string) {
	category := SectionCategory(sectionName)

	for _, p := range rePathLike.FindAllString(ref, -1) {
		segs := strings.Split(strings.Trim(p, "/"), "/")
		if len(segs) < 2 {
			continue
		}
		ok := true
		for _, s := range segs {
			if len(s) < minPathSegmentLen {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		// The last directory component anchors the generalized variants.
		dir := segs[:len(segs)-1]
		anchor := dir[len(dir)-1]

		ix.addPattern(category, strings.Join(dir, "/")+"/*")
		ix.addPattern(category, "*/"+anchor+"/*")
		ix.addPattern(category, "**/"+anchor+"/**")
	}
}

func (ix *TermIndex) addPattern(category, pattern string) {
	set, ok := ix.CodePatterns[category]
	if !ok {
		set = make(map[string]struct{})
		ix.CodePatterns[category] = set
	}
	set[pattern] = struct{}{}
}

// sectionCategoryTable maps section-name keywords to pattern categories.
// Ordered, first match wins.
var sectionCategoryTable = []struct {
	keyword  string
	category string
}{
	{"cli", "cli"},
	{"command", "cli"},
	{"usage", "cli"},
	{"api", "api"},
	{"endpoint", "api"},
	{"config", "config"},
	{"setting", "config"},
	{"architecture", "architecture"},
	{"design", "architecture"},
	{"test", "testing"},
	{"doc", "documentation"},
	{"depend", "dependencies"},
	{"performance", "performance"},
	{"security", "security"},
	{"auth", "security"},
}

// SectionCategory buckets a section name into a pattern category via keyword
// lookup; unmatched names fall into "general".
func SectionCategory(name string) string {
	lower := strings.ToLower(name)
	for _, e := range sectionCategoryTable {
		if strings.Contains(lower, e.keyword) {
			return e.category
		}
	}
	return "general"
}

// DocMatch pairs a document with how many query terms it matched.
type DocMatch struct {
	DocID   string
	Matches int
}

// RelevantDocs extracts terms from diffText and returns the documents that
// share them, ordered by descending match count (doc ID ascending on ties).
func (ix *TermIndex) RelevantDocs(diffText string) []DocMatch {
	counts := make(map[string]int)
	for t := range analyze.ExtractTerms(diffText) {
		for docID := range ix.TermToDocs[t] {
			counts[docID]++
		}
	}

	out := make([]DocMatch, 0, len(counts))
	for docID, n := range counts {
		out = append(out, DocMatch{DocID: docID, Matches: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].DocID < out[j].DocID
	})
	return out
}

// IsStale reports whether the index no longer reflects the current doc
// state: never built, a tracked document's hash changed, or a summarized
// document was never indexed. Removed documents do not trigger staleness;
// their entries only ever over-match.
func (ix *TermIndex) IsStale(docs map[string]*state.DocRecord) bool {
	if ix.Empty() {
		return true
	}
	for docID, rec := range docs {
		if rec == nil || rec.Skipped || rec.Summary == nil {
			continue
		}
		stored, ok := ix.DocHashes[docID]
		if !ok || stored != rec.Hash {
			return true
		}
	}
	return false
}

// DefaultMinMatchThreshold is the match count above which a document is kept
// by FilterRelevantDocs on term evidence alone.
const DefaultMinMatchThreshold = 3

// FilterRelevantDocs keeps the documents plausibly affected by the given
// changes. A document survives when its term match count reaches the
// threshold, or its priority is high, or it already carries scope relevance
// from an earlier stage. The OR is deliberately permissive: losing a needed
// doc costs more than sending an extra one.
//
// Kept records are annotated with MatchCount and MatchedTerms.
func (ix *TermIndex) FilterRelevantDocs(changes map[string]*state.ChangeRecord, docs map[string]*state.DocRecord, minMatch int) map[string]*state.DocRecord {
	if minMatch <= 0 {
		minMatch = DefaultMinMatchThreshold
	}

	changeTerms := make(map[string]struct{})
	for path, rec := range changes {
		for t := range analyze.ExtractTerms(path) {
			changeTerms[t] = struct{}{}
		}
		if rec == nil || rec.Summary == nil {
			continue
		}
		for t := range analyze.ExtractTerms(summaryText(rec.Summary)) {
			changeTerms[t] = struct{}{}
		}
	}

	out := make(map[string]*state.DocRecord)
	for docID, rec := range docs {
		if rec == nil {
			continue
		}

		matches := 0
		for t := range changeTerms {
			if _, ok := ix.TermToDocs[t][docID]; ok {
				matches++
			}
		}

		keep := matches >= minMatch ||
			rec.Priority == state.PriorityHigh ||
			rec.ScopeRelevance > 0
		if !keep {
			continue
		}

		rec.MatchCount = matches
		rec.MatchedTerms = matches > 0
		out[docID] = rec
	}
	return out
}

func summaryText(s *state.CodeSummary) string {
	var b strings.Builder
	for _, c := range s.SpecificChanges {
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(c.Description)
		b.WriteByte(' ')
	}
	for _, f := range s.FunctionalImpact {
		b.WriteString(f)
		b.WriteByte(' ')
	}
	b.WriteString(s.ProgrammingLanguage)
	return b.String()
}
