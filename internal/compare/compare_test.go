package compare

import (
	"errors"
	"strings"
	"testing"

	"chunkdup/internal/catalog"
)

func load(t *testing.T, in string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	return c
}

func TestDuplicatesAcrossCatalogs(t *testing.T) {
	c1 := load(t, `
bee1  /A/1  fck0sha2!aa:10,bb:10
bee2  /A/2  fck0sha2!cc:10,dd:10,ee:10
bee3  /A/3  fck0sha2!ff:10,f0:10
bee4  /A/4  fck0sha2!f1:10
`)
	c2 := load(t, `
bee5  /B/1  fck0sha2!a1:10,a2:10
bee6  /B/2  fck0sha2!cc:10,dd:10,ff:10
bee7  /B/3  fck0sha2!ff:10,a3:10
bee8  /B/4  fck0sha2!f1:10
`)
	dups := New(c1, c2).Duplicates()
	type row struct {
		ratio        float64
		pathA, pathB string
	}
	want := []row{
		{1.0, "/A/4", "/B/4"},
		{0.6666666666666666, "/A/2", "/B/2"},
		{0.5, "/A/3", "/B/3"},
		{0.4, "/A/3", "/B/2"},
	}
	if len(dups) != len(want) {
		t.Fatalf("got %d results, want %d: %v", len(dups), len(want), dups)
	}
	for i, w := range want {
		r := dups[i]
		if r.Ratio != w.ratio || r.FileA.Path() != w.pathA || r.FileB.Path() != w.pathB {
			t.Fatalf("result %d = %v %s:%s, want %v %s:%s",
				i, r.Ratio, r.FileA.Path(), r.FileB.Path(), w.ratio, w.pathA, w.pathB)
		}
	}
}

// Comparing a catalog against itself must suppress exact self-matches and
// report each symmetric pair once.
func TestDuplicatesSelfCompare(t *testing.T) {
	const repeat = `
bee1  a  fck0sha2!aa:1,aa:1,aa:1,bb:2
bee2  b  fck0sha2!aa:1,bb:2
bee3  c  fck0sha2!aa:1,aa:1,aa:1,bb:2
`
	c1 := load(t, repeat)
	c2 := load(t, repeat)
	dups := New(c1, c2).Duplicates()
	if len(dups) != 3 {
		t.Fatalf("got %d results, want 3: %v", len(dups), dups)
	}
	type row struct {
		ratio        float64
		pathA, pathB string
	}
	want := []row{
		{1.0, "a", "c"},
		{0.75, "a", "b"},
		{0.75, "b", "c"},
	}
	for i, w := range want {
		r := dups[i]
		if r.Ratio != w.ratio || r.FileA.Path() != w.pathA || r.FileB.Path() != w.pathB {
			t.Fatalf("result %d = %v %s:%s, want %v %s:%s",
				i, r.Ratio, r.FileA.Path(), r.FileB.Path(), w.ratio, w.pathA, w.pathB)
		}
	}
	for _, r := range dups {
		if r.FileA.Path() == r.FileB.Path() {
			t.Fatalf("self pair reported: %s", r.FileA.Path())
		}
	}
}

func TestCompareByPath(t *testing.T) {
	c := load(t, `
bee1  ./a  fck0sha2!aa:10,bb:10,cc:5,dd:5,f1:5
bee2  ./b  fck0sha2!bb:10,f2:5,cc:5,f3:5,dd:5,f4:10
`)
	r, err := New(c, c).Compare("./a", "./b")
	if err != nil {
		t.Fatalf("compare error: %v", err)
	}
	// matches bb+cc+dd = 20 of 35+40 combined bytes
	if want := 2.0 * 20 / 75; r.Ratio != want {
		t.Fatalf("ratio = %v, want %v", r.Ratio, want)
	}
	// the asymmetric trailing replace (5 vs 10 bytes) occupies its
	// larger side in the total
	if r.Total != 50 {
		t.Fatalf("total = %d, want 50", r.Total)
	}
}

func TestComparePathNotFound(t *testing.T) {
	c := load(t, "bee1  ./a  fck0sha2!aa:10\n")
	_, err := New(c, c).Compare("./a", "./missing")
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestDuplicatesIdenticalContentDistinctPaths(t *testing.T) {
	// identical chunk content under two paths must be reported with
	// ratio 1.0, not suppressed
	c1 := load(t, "bee1  /A/x  fck0sha2!aa:10,bb:20\n")
	c2 := load(t, "bee2  /B/y  fck0sha2!aa:10,bb:20\n")
	dups := New(c1, c2).Duplicates()
	if len(dups) != 1 {
		t.Fatalf("got %d results, want 1", len(dups))
	}
	if dups[0].Ratio != 1.0 {
		t.Fatalf("ratio = %v, want 1.0", dups[0].Ratio)
	}
}
