package matcher

import "path/filepath"

// Index maps normalized filename stems to the original filenames.
// Key order is insertion order, which makes the substring fallback
// deterministic: callers feed filenames in sorted listing order and the
// first satisfying key wins.
type Index struct {
	keys  map[string]string   // normalized stem -> filename
	order []string            // keys in first-insertion order
	files map[string]struct{} // filenames present in the index
}

// NewIndex builds an index from filenames, in the given order.
func NewIndex(filenames []string) *Index {
	ix := &Index{
		keys:  make(map[string]string, len(filenames)),
		files: make(map[string]struct{}, len(filenames)),
	}
	for _, f := range filenames {
		ix.Add(f)
	}
	return ix
}

// Add indexes one filename under the normalized key of its stem.
// When two stems normalize to the same key the later filename wins the
// mapping; the key keeps its original position in the iteration order.
func (ix *Index) Add(filename string) {
	stem := filename[:len(filename)-len(filepath.Ext(filename))]
	key := Normalize(stem)
	if _, exists := ix.keys[key]; !exists {
		ix.order = append(ix.order, key)
	}
	ix.keys[key] = filename
	ix.files[filename] = struct{}{}
}

// Lookup returns the filename indexed under key.
func (ix *Index) Lookup(key string) (string, bool) {
	f, ok := ix.keys[key]
	return f, ok
}

// Keys returns the index keys in insertion order.
func (ix *Index) Keys() []string {
	return ix.order
}

// HasFile reports whether filename was added to the index.
func (ix *Index) HasFile(filename string) bool {
	_, ok := ix.files[filename]
	return ok
}

// Len returns the number of distinct keys.
func (ix *Index) Len() int {
	return len(ix.order)
}
