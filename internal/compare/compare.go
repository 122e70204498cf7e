// Package compare drives pairwise comparison between two catalogs: it
// discovers candidate pairs from the shared-chunk index, aligns each pair,
// and reports the surviving results in descending similarity order.
//
// Deduplication policy: a pair's canonical key is the lexicographically
// smaller of (sizeA, pathA, sizeB, pathB) and its swapped form; the
// opposite orientation of an already-reported pair is discarded. A pair of
// the same path with ratio 1.0 is a trivial self-match and is suppressed,
// which keeps a catalog compared against itself from reporting every file
// as its own duplicate.
package compare

import (
	"sort"

	"chunkdup/internal/align"
	"chunkdup/internal/catalog"
	"chunkdup/internal/sums"
)

// Result is the outcome of comparing one file pair.
type Result struct {
	FileA *sums.File
	FileB *sums.File
	Align align.Alignment
	Ratio float64
	Total int64
}

// key orders results and identifies pair orientations.
type key struct {
	sizeA int64
	pathA string
	sizeB int64
	pathB string
}

func resultKey(a, b *sums.File) key {
	return key{sizeA: a.Size(), pathA: a.Path(), sizeB: b.Size(), pathB: b.Path()}
}

func (k key) less(o key) bool {
	if k.sizeA != o.sizeA {
		return k.sizeA < o.sizeA
	}
	if k.pathA != o.pathA {
		return k.pathA < o.pathA
	}
	if k.sizeB != o.sizeB {
		return k.sizeB < o.sizeB
	}
	return k.pathB < o.pathB
}

func (k key) swapped() key {
	return key{sizeA: k.sizeB, pathA: k.pathB, sizeB: k.sizeA, pathB: k.pathA}
}

// Differ compares files across two catalogs. The catalogs may be the same
// object; comparisons are independent and read-only.
type Differ struct {
	A *catalog.Catalog
	B *catalog.Catalog
}

// New returns a Differ over the two catalogs.
func New(a, b *catalog.Catalog) *Differ {
	return &Differ{A: a, B: b}
}

// Compare aligns the files recorded under the two paths. The path lookup
// is the only failure mode; the alignment itself cannot fail.
func (d *Differ) Compare(pathA, pathB string) (*Result, error) {
	fa, err := d.A.Lookup(pathA)
	if err != nil {
		return nil, err
	}
	fb, err := d.B.Lookup(pathB)
	if err != nil {
		return nil, err
	}
	return d.CompareFiles(fa, fb), nil
}

// CompareFiles aligns two descriptors directly.
func (d *Differ) CompareFiles(fa, fb *sums.File) *Result {
	al := align.Align(fa.Chunks(), fb.Chunks())
	return &Result{
		FileA: fa,
		FileB: fb,
		Align: al,
		Ratio: al.Ratio(),
		Total: al.Total(),
	}
}

// Duplicates compares every candidate pair and returns the surviving
// results sorted by descending (ratio, sizeA, pathA, sizeB, pathB).
// Symmetric duplicates and same-path exact matches are dropped per the
// package policy. Candidate identities whose descriptors are missing from
// a catalog are skipped rather than aborting the batch.
func (d *Differ) Duplicates() []*Result {
	seen := make(map[key]struct{})
	var results []*Result
	for _, p := range d.A.CandidatePairs(d.B) {
		fa, ok := d.A.ByHash(p.A)
		if !ok {
			continue
		}
		fb, ok := d.B.ByHash(p.B)
		if !ok {
			continue
		}
		k := resultKey(fa, fb)
		if _, dup := seen[k.swapped()]; dup {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		r := d.CompareFiles(fa, fb)
		if fa.Path() == fb.Path() && r.Ratio == 1.0 {
			continue
		}
		seen[k] = struct{}{}
		results = append(results, r)
	}
	sortResults(results)
	return results
}

// sortResults orders results descending by (ratio, sizeA, pathA, sizeB,
// pathB), the same tuple the dedup key uses.
func sortResults(rs []*Result) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Ratio != rs[j].Ratio {
			return rs[i].Ratio > rs[j].Ratio
		}
		ki := resultKey(rs[i].FileA, rs[i].FileB)
		kj := resultKey(rs[j].FileA, rs[j].FileB)
		return kj.less(ki)
	})
}
