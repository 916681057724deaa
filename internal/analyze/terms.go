package analyze

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const minTermLen = 3

// reRun extracts camelCase/PascalCase runs and plain identifier runs:
// an uppercase-led run of letters/digits, an all-caps run, or a lowercase run.
var reRun = regexp.MustCompile(`[A-Z]+[a-z0-9]*|[a-z]+[0-9]*`)

// ExtractTerms tokenizes free text into normalized search terms.
//
// Each whitespace-separated token contributes: path segments (when the token
// contains a path separator), camelCase/PascalCase runs, snake_case and
// kebab-case fragments, and bare alphabetic runs. Fragments shorter than
// three characters are discarded; everything kept is lowercased.
//
// Deterministic and side-effect free; empty input yields an empty set.
func ExtractTerms(text string) map[string]struct{} {
	out := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return out
	}
	// Fold fullwidth/composed forms so the same identifier always indexes
	// to the same term.
	text = norm.NFKC.String(text)

	for _, tok := range strings.Fields(text) {
		tokenTerms(tok, out)
	}
	return out
}

func tokenTerms(tok string, out map[string]struct{}) {
	add := func(s string) {
		s = strings.ToLower(s)
		if len(s) >= minTermLen {
			out[s] = struct{}{}
		}
	}

	// Path-like tokens contribute their segments, extension splits included.
	if strings.ContainsAny(tok, `/\`) {
		segs := strings.FieldsFunc(tok, func(r rune) bool {
			return r == '/' || r == '\\' || r == '.'
		})
		for _, seg := range segs {
			if isWord(seg) {
				add(seg)
			}
		}
	}

	// snake_case / kebab-case fragments.
	for _, frag := range strings.FieldsFunc(tok, func(r rune) bool {
		return r == '_' || r == '-'
	}) {
		if isWord(frag) {
			add(frag)
		}
	}

	// camelCase runs and bare alphabetic runs.
	for _, run := range reRun.FindAllString(tok, -1) {
		add(run)
	}
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// MatchCount returns how many of the wanted terms appear in have.
func MatchCount(have map[string]struct{}, wanted map[string]struct{}) int {
	n := 0
	for t := range wanted {
		if _, ok := have[t]; ok {
			n++
		}
	}
	return n
}
