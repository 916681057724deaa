package scope

import (
	"strings"

	"github.com/drift-docs/drift-cli/internal/state"
)

// categoryTable maps path keywords to change categories. The table is
// ordered and the first matching keyword wins, so the match result does not
// depend on map iteration order. More specific keywords go before broader
// ones (a test helper under cmd/ is still a test).
var categoryTable = []struct {
	keyword  string
	category state.Category
}{
	{"test", state.CategoryTesting},
	{"spec", state.CategoryTesting},
	{"readme", state.CategoryDocumentation},
	{"docs/", state.CategoryDocumentation},
	{".md", state.CategoryDocumentation},
	{"cli", state.CategoryCLI},
	{"cmd/", state.CategoryCLI},
	{"command", state.CategoryCLI},
	{"api", state.CategoryAPI},
	{"endpoint", state.CategoryAPI},
	{"handler", state.CategoryAPI},
	{"route", state.CategoryAPI},
	{"config", state.CategoryConfiguration},
	{"settings", state.CategoryConfiguration},
	{".yaml", state.CategoryConfiguration},
	{".yml", state.CategoryConfiguration},
	{".toml", state.CategoryConfiguration},
	{".ini", state.CategoryConfiguration},
	{"deploy", state.CategoryDeployment},
	{"docker", state.CategoryDeployment},
	{"k8s", state.CategoryDeployment},
	{"helm", state.CategoryDeployment},
	{"auth", state.CategorySecurity},
	{"security", state.CategorySecurity},
	{"crypto", state.CategorySecurity},
	{"secret", state.CategorySecurity},
	{"architecture", state.CategoryArchitecture},
	{"design", state.CategoryArchitecture},
	{"fix", state.CategoryBugfix},
	{"refactor", state.CategoryRefactor},
	{"feature", state.CategoryFeature},
	{"feat", state.CategoryFeature},
}

// InferCategory guesses a change category from a file path by keyword
// substring matching. Returns "" when no keyword matches.
func InferCategory(path string) state.Category {
	lower := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	for _, e := range categoryTable {
		if strings.Contains(lower, e.keyword) {
			return e.category
		}
	}
	return ""
}
