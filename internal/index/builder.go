package index

import "github.com/drift-docs/drift-cli/internal/state"

// Builder is the single cache-invalidation entry point: it loads the cached
// index and rebuilds only when the cache is missing, malformed, or stale
// against the current doc state.
type Builder struct {
	// Path of the JSON cache file.
	Path string
	// ExtractPatterns enables mining code-path glob patterns during builds.
	ExtractPatterns bool
	// Force rebuilds even when the cache is fresh.
	Force bool
}

// BuildIfNeeded returns a usable index and whether it was rebuilt. A corrupt
// or missing cache is not an error; it simply forces a rebuild.
func (b *Builder) BuildIfNeeded(docs map[string]*state.DocRecord) (*TermIndex, bool, error) {
	ix := NewTermIndex()
	if !b.Force {
		if ix.Load(b.Path) && !ix.IsStale(docs) {
			return ix, false, nil
		}
	}

	ix.Build(docs, b.ExtractPatterns)
	if err := ix.Save(b.Path); err != nil {
		return nil, false, err
	}
	return ix, true, nil
}
