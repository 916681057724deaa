package analyze

import "testing"

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*", "anything/at/all.go", true},
		{"**", "anything/at/all.go", true},
		{"*/cli/*", "dope/cli/main.py", true},
		{"*/cli/*", "cli/main.py", false},
		{"*/cli/*", "a/b/cli/main.py", false},
		{"**/cli/**", "a/b/cli/x/main.py", true},
		{"**/cli/**", "cli/main.py", true},
		{"src/cli/*", "src/cli/main.py", true},
		{"src/cli/*", "src/cli/sub/main.py", false},
		{"*.lock", "deps/cargo.lock", true},
		{"*.lock", "deps/cargo.locks", false},
		{"*_test.*", "pkg/foo_test.go", true},
		{"**/vendor/**", "x/vendor/y/z.go", true},
		{"**/vendor/**", "x/y/z.go", false},
		{"readme*", "readme.md", true},
		{"", "x", false},
	}
	for _, c := range cases {
		if got := MatchPath(c.pattern, c.path); got != c.want {
			t.Errorf("MatchPath(%q, %q) = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestMatchAny_FirstMatchWins(t *testing.T) {
	pat, ok := MatchAny([]string{"*.go", "**/cli/**", "*"}, "a/cli/x.go")
	if !ok || pat != "*.go" {
		t.Fatalf("MatchAny = (%q, %v), want (*.go, true)", pat, ok)
	}
}
