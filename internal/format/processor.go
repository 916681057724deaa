// Package format turns a filtered, scored change set into the prompt body
// handed to the suggestion provider, ordering files by priority and pruning
// per-file detail to fit an implicit token budget.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drift-docs/drift-cli/internal/state"
)

// Detail-tier thresholds on combined relevance.
const (
	DefaultHighThreshold   = 0.6
	DefaultMediumThreshold = 0.3
)

// Combined-relevance boosts.
const (
	highPriorityBoost = 0.3
	termMatchDivisor  = 20.0
	termMatchBoostCap = 0.2
)

// Processor formats scored changes adaptively. Zero-value thresholds select
// the defaults.
type Processor struct {
	HighThreshold   float64
	MediumThreshold float64
}

// NewProcessor returns a processor with default thresholds.
func NewProcessor() *Processor {
	return &Processor{
		HighThreshold:   DefaultHighThreshold,
		MediumThreshold: DefaultMediumThreshold,
	}
}

// CombinedRelevance folds scope relevance, classification priority, and term
// match count into one [0,1] score.
func CombinedRelevance(rec *state.ChangeRecord) float64 {
	score := rec.MaxRelevance
	if rec.Priority == state.PriorityHigh {
		score += highPriorityBoost
	}
	boost := float64(rec.TermMatches) / termMatchDivisor
	if boost > termMatchBoostCap {
		boost = termMatchBoostCap
	}
	score += boost
	if score > 1 {
		score = 1
	}
	return score
}

// SortByPriority orders changes for presentation: HIGH-classified files
// first, then by descending magnitude within each tier, with path as the
// stable tiebreak.
func (p *Processor) SortByPriority(changes map[string]*state.ChangeRecord) []*state.ChangeRecord {
	out := make([]*state.ChangeRecord, 0, len(changes))
	for _, rec := range changes {
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		hi := out[i].Priority == state.PriorityHigh
		hj := out[j].Priority == state.PriorityHigh
		if hi != hj {
			return hi
		}
		mi, mj := out[i].MagnitudeScore(), out[j].MagnitudeScore()
		if mi != mj {
			return mi > mj
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// FormatAdaptive renders the change set with per-file detail tiers:
//
//   - combined ≥ HighThreshold: the full summary, nothing dropped;
//   - MediumThreshold ≤ combined < HighThreshold: functional impact verbatim,
//     detailed changes replaced with an omission note;
//   - combined < MediumThreshold: functional impact and language only.
//
// Pruning is lossy for low-relevance files by design; the high tier must
// never lose information.
func (p *Processor) FormatAdaptive(changes map[string]*state.ChangeRecord) string {
	high := p.HighThreshold
	if high == 0 {
		high = DefaultHighThreshold
	}
	medium := p.MediumThreshold
	if medium == 0 {
		medium = DefaultMediumThreshold
	}

	var b strings.Builder
	for _, rec := range p.SortByPriority(changes) {
		combined := CombinedRelevance(rec)

		fmt.Fprintf(&b, "### %s (priority: %s, magnitude: %.2f, relevance: %.2f)\n",
			rec.Path, priorityLabel(rec.Priority), rec.MagnitudeScore(), combined)

		if rec.Summary == nil {
			b.WriteString("(no summary available)\n\n")
			continue
		}

		switch {
		case combined >= high:
			writeFullSummary(&b, rec.Summary)
		case combined >= medium:
			writeImpact(&b, rec.Summary)
			if n := len(rec.Summary.SpecificChanges); n > 0 {
				fmt.Fprintf(&b, "Changes: %d detailed change(s) omitted\n", n)
			}
		default:
			writeImpact(&b, rec.Summary)
			if rec.Summary.ProgrammingLanguage != "" {
				fmt.Fprintf(&b, "Language: %s\n", rec.Summary.ProgrammingLanguage)
			}
			if n := len(rec.Summary.SpecificChanges); n > 0 {
				fmt.Fprintf(&b, "%d change(s) omitted (low relevance)\n", n)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeFullSummary(b *strings.Builder, s *state.CodeSummary) {
	if s.ProgrammingLanguage != "" {
		fmt.Fprintf(b, "Language: %s\n", s.ProgrammingLanguage)
	}
	writeImpact(b, s)
	if len(s.SpecificChanges) > 0 {
		b.WriteString("Changes:\n")
		for _, c := range s.SpecificChanges {
			if c.Description != "" {
				fmt.Fprintf(b, "- %s: %s\n", c.Name, c.Description)
			} else {
				fmt.Fprintf(b, "- %s\n", c.Name)
			}
		}
	}
}

func writeImpact(b *strings.Builder, s *state.CodeSummary) {
	if len(s.FunctionalImpact) == 0 {
		return
	}
	b.WriteString("Impact:\n")
	for _, f := range s.FunctionalImpact {
		fmt.Fprintf(b, "- %s\n", f)
	}
}

func priorityLabel(p state.Priority) string {
	if p == "" {
		return string(state.PriorityNormal)
	}
	return string(p)
}
