package index

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"

	"github.com/armon/go-radix"
)

// PathIndexStats tracks usage metrics for the path index
type PathIndexStats struct {
	TotalRecords  int64
	PathLookups   int64
	PrefixLookups int64
	Insertions    int64
	mu            sync.RWMutex
}

// PathIndex provides O(k) path lookups over a finished listing tree using a
// compressed trie (patricia tree), where k is the length of the path being
// searched, not the number of records in the tree.
type PathIndex struct {
	tree    *radix.Tree
	mu      sync.RWMutex
	stats   *PathIndexStats
	records map[string]*meta.Meta // direct path -> record mapping for verification
}

// NewPathIndex creates a new patricia tree-based path index
func NewPathIndex() *PathIndex {
	return &PathIndex{
		tree:    radix.New(),
		stats:   &PathIndexStats{},
		records: make(map[string]*meta.Meta),
	}
}

// Insert adds a record to the path index with O(k) complexity
func (idx *PathIndex) Insert(record *meta.Meta) error {
	if record == nil {
		return fmt.Errorf("invalid input: record cannot be nil")
	}

	path := idx.normalizePath(record.Path)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	_, updated := idx.tree.Insert(path, record)
	idx.records[path] = record

	idx.stats.mu.Lock()
	if !updated {
		idx.stats.TotalRecords++
	}
	idx.stats.Insertions++
	idx.stats.mu.Unlock()

	slog.Debug("path index insertion completed",
		"path", path,
		"was_update", updated)

	return nil
}

// Lookup finds a record by its exact path with O(k) complexity
func (idx *PathIndex) Lookup(path string) (*meta.Meta, bool) {
	normalized := idx.normalizePath(path)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	value, found := idx.tree.Get(normalized)

	idx.stats.mu.Lock()
	idx.stats.PathLookups++
	idx.stats.mu.Unlock()

	if !found {
		return nil, false
	}
	return value.(*meta.Meta), true
}

// PrefixLookup finds all records whose paths start with the given prefix
func (idx *PathIndex) PrefixLookup(prefix string) []*meta.Meta {
	normalized := idx.normalizePath(prefix)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var results []*meta.Meta
	idx.tree.WalkPrefix(normalized, func(key string, value interface{}) bool {
		results = append(results, value.(*meta.Meta))
		return false
	})

	idx.stats.mu.Lock()
	idx.stats.PrefixLookups++
	idx.stats.mu.Unlock()

	return results
}

// Len returns the number of indexed records
func (idx *PathIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Len()
}

// normalizePath cleans paths so lookups are insensitive to trailing
// separators and redundant segments
func (idx *PathIndex) normalizePath(path string) string {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned != "/" {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}
	return cleaned
}
