package scope

import (
	"sort"

	"github.com/drift-docs/drift-cli/internal/analyze"
	"github.com/drift-docs/drift-cli/internal/state"
)

// Weights control how pattern, category, and magnitude signals combine into
// a section relevance score. They are expected to sum to roughly 1.0, but
// that is a caller responsibility: the filter neither validates nor
// renormalizes, since renormalizing would silently shift which files clear
// MinRelevance.
type Weights struct {
	Pattern   float64
	Category  float64
	Magnitude float64
}

// DefaultWeights returns the tuned default signal weights.
func DefaultWeights() Weights {
	return Weights{Pattern: 0.4, Category: 0.3, Magnitude: 0.3}
}

// DefaultMinRelevance is the score below which a (file, section) pairing is
// not reported.
const DefaultMinRelevance = 0.3

// MaxSectionsPerChange caps how many relevant sections are attached to a
// surviving change record.
const MaxSectionsPerChange = 5

// sectionRef identifies one section inside the template.
type sectionRef struct {
	docKey  string
	section string
}

// Filter scores changed files against a scope template.
//
// Construction precomputes an inverted pattern index (pattern → sections
// declaring it); after that the filter is read-only and safe for concurrent
// use.
type Filter struct {
	tpl          *Template
	weights      Weights
	minRelevance float64

	patternIndex map[string][]sectionRef
}

// NewFilter builds a filter over tpl. Zero-value weights and a zero
// minRelevance select the defaults.
func NewFilter(tpl *Template, weights Weights, minRelevance float64) *Filter {
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if minRelevance == 0 {
		minRelevance = DefaultMinRelevance
	}

	f := &Filter{
		tpl:          tpl,
		weights:      weights,
		minRelevance: minRelevance,
		patternIndex: make(map[string][]sectionRef),
	}
	for _, docKey := range tpl.DocKeys() {
		doc := tpl.Docs[docKey]
		for _, name := range doc.SectionNames() {
			for _, pat := range doc.Sections[name].Triggers.CodePatterns {
				f.patternIndex[pat] = append(f.patternIndex[pat], sectionRef{docKey: docKey, section: name})
			}
		}
	}
	return f
}

// PatternCount returns the number of distinct code patterns indexed.
func (f *Filter) PatternCount() int {
	return len(f.patternIndex)
}

// RelevantSections scores every section of the template against one changed
// file and returns the pairings at or above the minimum relevance, sorted by
// descending score (ties broken by doc key, then section name).
//
// The score is weights.Pattern when any of the section's patterns matches
// the path (first matching pattern only), plus weights.Category when the
// inferred category is one of the section's change types, plus
// weights.Magnitude*min(magnitude,1) when magnitude clears the section's
// MinMagnitude gate. The sum is clamped to [0,1].
func (f *Filter) RelevantSections(path string, magnitude float64, category state.Category) []state.SectionRelevance {
	var out []state.SectionRelevance

	for _, docKey := range f.tpl.DocKeys() {
		doc := f.tpl.Docs[docKey]
		for _, name := range doc.SectionNames() {
			trig := doc.Sections[name].Triggers

			var score float64
			var matched []string
			var matchedCats []state.Category

			if pat, ok := analyze.MatchAny(trig.CodePatterns, path); ok {
				score += f.weights.Pattern
				matched = append(matched, pat)
			}
			if category != "" && containsType(trig.ChangeTypes, category) {
				score += f.weights.Category
				matchedCats = append(matchedCats, category)
			}
			if magnitude >= trig.MinMagnitude && magnitude > 0 {
				m := magnitude
				if m > 1 {
					m = 1
				}
				score += f.weights.Magnitude * m
			}
			if score > 1 {
				score = 1
			}
			if score < f.minRelevance {
				continue
			}

			out = append(out, state.SectionRelevance{
				DocKey:            docKey,
				SectionName:       name,
				RelevanceScore:    score,
				MatchedPatterns:   matched,
				MatchedCategories: matchedCats,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		if out[i].DocKey != out[j].DocKey {
			return out[i].DocKey < out[j].DocKey
		}
		return out[i].SectionName < out[j].SectionName
	})
	return out
}

// FilterChanges drops already-skipped records and records with no relevant
// sections; this is the primary cost gate before any LLM call. Surviving
// records are annotated with their inferred category, up to
// MaxSectionsPerChange top sections, and the maximum relevance seen.
//
// The returned relevance map carries the full (uncapped) section lists keyed
// by path for programmatic use.
func (f *Filter) FilterChanges(changes map[string]*state.ChangeRecord) (map[string]*state.ChangeRecord, map[string][]state.SectionRelevance) {
	filtered := make(map[string]*state.ChangeRecord)
	relevance := make(map[string][]state.SectionRelevance)

	for path, rec := range changes {
		if rec == nil || rec.Skipped {
			continue
		}

		category := InferCategory(path)
		sections := f.RelevantSections(path, rec.MagnitudeScore(), category)
		if len(sections) == 0 {
			continue
		}

		rec.Category = category
		if len(sections) > MaxSectionsPerChange {
			rec.Sections = sections[:MaxSectionsPerChange]
		} else {
			rec.Sections = sections
		}
		rec.MaxRelevance = sections[0].RelevanceScore

		filtered[path] = rec
		relevance[path] = sections
	}
	return filtered, relevance
}

func containsType(types []string, c state.Category) bool {
	for _, t := range types {
		if t == string(c) {
			return true
		}
	}
	return false
}
