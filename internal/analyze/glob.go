package analyze

import (
	"path"
	"strings"
)

// MatchPath reports whether a slash-separated file path matches a shell-glob
// pattern. On top of path.Match semantics, "**" matches any number of path
// segments (including zero), and a pattern without any "/" also matches
// against the path's base name, so "*.lock" matches "deps/cargo.lock".
//
// Patterns are assumed syntactically valid; a malformed pattern simply never
// matches.
func MatchPath(pattern, p string) bool {
	pattern = strings.TrimPrefix(strings.ReplaceAll(pattern, "\\", "/"), "/")
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")

	if pattern == "" {
		return false
	}
	if pattern == "*" || pattern == "**" {
		return true
	}

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(p)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

func matchSegments(pat, segs []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	if pat[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pat[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	ok, err := path.Match(pat[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], segs[1:])
}

// MatchAny returns the first pattern in patterns that matches p, if any.
func MatchAny(patterns []string, p string) (string, bool) {
	for _, pat := range patterns {
		if MatchPath(pat, p) {
			return pat, true
		}
	}
	return "", false
}
