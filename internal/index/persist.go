package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
)

// persistedIndex is the on-disk JSON form of a TermIndex: the same three
// maps, with sets flattened to sorted arrays.
type persistedIndex struct {
	TermToDocs   map[string][]string `json:"term_to_docs"`
	DocHashes    map[string]string   `json:"doc_hashes"`
	CodePatterns map[string][]string `json:"code_patterns"`
}

const lockAcquireTimeout = 5 * time.Second

// Save writes the index to path as JSON. The write goes through a temp file
// and an atomic rename, guarded by an advisory file lock so two drift
// processes cannot interleave writes to the same cache.
func (ix *TermIndex) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create index dir %s: %w", dir, err)
	}

	release, err := acquireIndexLock(path + ".lock")
	if err != nil {
		return err
	}
	defer release()

	p := persistedIndex{
		TermToDocs:   setsToSorted(ix.TermToDocs),
		DocHashes:    ix.DocHashes,
		CodePatterns: setsToSorted(ix.CodePatterns),
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write index temp file %s: %w", tmp, err)
	}
	return swapFile(tmp, path)
}

// Load reads the index from path, replacing any in-memory state. It returns
// false on a missing file or malformed JSON, leaving the index empty; the
// caller is expected to rebuild before relying on results.
func (ix *TermIndex) Load(path string) bool {
	ix.reset()

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var p persistedIndex
	if err := json.Unmarshal(data, &p); err != nil {
		return false
	}

	ix.TermToDocs = sortedToSets(p.TermToDocs)
	if p.DocHashes != nil {
		ix.DocHashes = p.DocHashes
	}
	ix.CodePatterns = sortedToSets(p.CodePatterns)
	return true
}

// acquireIndexLock takes the advisory lock with a bounded retry loop.
func acquireIndexLock(lockPath string) (func(), error) {
	l := flock.New(lockPath)
	deadline := time.Now().Add(lockAcquireTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire index lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another drift process is writing the index (lock: %s)", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// swapFile replaces dest with src by renaming, keeping a .bak of the
// previous file until the swap succeeds.
func swapFile(src, dest string) error {
	backup := dest + ".bak"
	_ = removeBackup(backup)

	hadPrev := false
	if _, err := os.Stat(dest); err == nil {
		if err := os.Rename(dest, backup); err != nil {
			return fmt.Errorf("cannot back up index %s: %w", dest, err)
		}
		hadPrev = true
	}
	if err := os.Rename(src, dest); err != nil {
		if hadPrev {
			_ = os.Rename(backup, dest)
		}
		return fmt.Errorf("cannot install index %s: %w", dest, err)
	}
	if hadPrev {
		if err := removeBackup(backup); err != nil {
			return fmt.Errorf("cannot remove index backup %s: %w", backup, err)
		}
	}
	return nil
}

func setsToSorted(m map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, set := range m {
		vals := make([]string, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		out[k] = vals
	}
	return out
}

func sortedToSets(m map[string][]string) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(m))
	for k, vals := range m {
		set := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			set[v] = struct{}{}
		}
		out[k] = set
	}
	return out
}
