// Package catalog holds an immutable collection of chunksum file
// descriptors together with a derived inverted index from chunk hash to
// owning files. The index makes candidate-pair discovery sub-quadratic:
// only files that share at least one chunk hash are ever paired.
//
// Catalogs are read-only after Build and safe to share across goroutines.
package catalog

import (
	"fmt"
	"io"
	"sort"

	"chunkdup/internal/sums"
)

// NotFoundError reports a path absent from the catalog.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file path not found: %s", e.Path)
}

// DuplicatePathError reports two descriptors supplied with the same path.
// Erroring (rather than letting the later descriptor win) keeps builds
// deterministic.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate file path: %s", e.Path)
}

// Catalog owns path→File and hash→File maps plus the chunk→owners inverted
// index. All derived state is computed once in Build; nothing mutates a
// Catalog afterwards.
type Catalog struct {
	byPath map[string]*sums.File
	byHash map[string]*sums.File

	// chunkOwners maps a chunk hash to the file hashes owning it, in first
	// insertion order with consecutive duplicates removed (a file listing
	// the same chunk several times appears once).
	chunkOwners map[string][]string
}

// Pair is an identity pair of file hashes, A from one catalog and B from
// another, known to share at least one chunk.
type Pair struct {
	A, B string
}

// Build constructs a Catalog from descriptors. Supplying two descriptors
// with the same path fails with DuplicatePathError. Two descriptors with
// the same overall hash share one identity: the later one wins in the
// hash map while both paths stay addressable via Lookup.
func Build(files []*sums.File) (*Catalog, error) {
	c := &Catalog{
		byPath:      make(map[string]*sums.File, len(files)),
		byHash:      make(map[string]*sums.File, len(files)),
		chunkOwners: make(map[string][]string),
	}
	for _, f := range files {
		if _, ok := c.byPath[f.Path()]; ok {
			return nil, &DuplicatePathError{Path: f.Path()}
		}
		c.byPath[f.Path()] = f
		c.byHash[f.Hash()] = f
		for _, ch := range f.Chunks() {
			owners := c.chunkOwners[ch.Hash]
			// All chunks of one file are inserted consecutively, so
			// checking the tail is enough to dedup repeated chunks.
			if n := len(owners); n > 0 && owners[n-1] == f.Hash() {
				continue
			}
			c.chunkOwners[ch.Hash] = append(owners, f.Hash())
		}
	}
	return c, nil
}

// Load parses a chunksums stream and builds a Catalog from it.
func Load(r io.Reader) (*Catalog, error) {
	files, err := sums.ParseAll(r)
	if err != nil {
		return nil, err
	}
	return Build(files)
}

// Len returns the number of distinct paths in the catalog.
func (c *Catalog) Len() int { return len(c.byPath) }

// Lookup returns the descriptor recorded under path, or NotFoundError.
func (c *Catalog) Lookup(path string) (*sums.File, error) {
	f, ok := c.byPath[path]
	if !ok {
		return nil, &NotFoundError{Path: path}
	}
	return f, nil
}

// ByHash returns the descriptor with the given overall content hash.
func (c *Catalog) ByHash(hash string) (*sums.File, bool) {
	f, ok := c.byHash[hash]
	return f, ok
}

// CandidatePairs reports every (A, B) identity pair such that A (from c)
// and B (from other) share at least one chunk hash. The result is sorted
// and deduplicated. Cost is the sum over shared chunks of
// |ownersA|×|ownersB|, which can grow large for chunks owned by many
// files; that blow-up is accepted, not silently bounded.
func (c *Catalog) CandidatePairs(other *Catalog) []Pair {
	seen := make(map[Pair]struct{})
	for chunk, ownersA := range c.chunkOwners {
		ownersB, ok := other.chunkOwners[chunk]
		if !ok {
			continue
		}
		for _, a := range ownersA {
			for _, b := range ownersB {
				seen[Pair{A: a, B: b}] = struct{}{}
			}
		}
	}
	pairs := make([]Pair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}
