package align

import (
	"testing"

	"chunkdup/internal/sums"
)

func chunks(pairs ...any) []sums.Chunk {
	out := make([]sums.Chunk, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, sums.Chunk{Hash: pairs[i].(string), Size: int64(pairs[i+1].(int))})
	}
	return out
}

var (
	fixtureA = chunks("aa", 10, "bb", 10, "cc", 5, "dd", 5, "ee", 5)
	fixtureB = chunks("bb", 10, "ff", 5, "cc", 5, "gg", 5, "dd", 5, "hh", 5)
)

func TestAlignFixtureOps(t *testing.T) {
	al := Align(fixtureA, fixtureB)
	want := []Op{
		{Type: Delete, SizeA: 10},
		{Type: Equal, SizeA: 10, SizeB: 10},
		{Type: Insert, SizeB: 5},
		{Type: Equal, SizeA: 5, SizeB: 5},
		{Type: Insert, SizeB: 5},
		{Type: Equal, SizeA: 5, SizeB: 5},
		{Type: Replace, SizeA: 5, SizeB: 5},
	}
	if len(al.Ops) != len(want) {
		t.Fatalf("ops = %v, want %v", al.Ops, want)
	}
	for i := range want {
		if al.Ops[i] != want[i] {
			t.Fatalf("op %d = %v, want %v", i, al.Ops[i], want[i])
		}
	}
}

func TestAlignFixtureRatio(t *testing.T) {
	al := Align(fixtureA, fixtureB)
	if al.Matches() != 20 {
		t.Fatalf("matches = %d, want 20", al.Matches())
	}
	if al.SizeA() != 35 || al.SizeB() != 35 {
		t.Fatalf("sizes = %d/%d, want 35/35", al.SizeA(), al.SizeB())
	}
	if al.Ratio() != 0.5714285714285714 {
		t.Fatalf("ratio = %v, want 0.5714285714285714", al.Ratio())
	}
	if al.Total() != 45 {
		t.Fatalf("total = %d, want 45", al.Total())
	}
}

func TestAlignSymmetry(t *testing.T) {
	ab := Align(fixtureA, fixtureB)
	ba := Align(fixtureB, fixtureA)
	if ab.Ratio() != ba.Ratio() {
		t.Fatalf("ratio not symmetric: %v vs %v", ab.Ratio(), ba.Ratio())
	}
	if ab.Total() != ba.Total() {
		t.Fatalf("total not symmetric: %d vs %d", ab.Total(), ba.Total())
	}
}

func TestAlignSelf(t *testing.T) {
	al := Align(fixtureA, fixtureA)
	if al.Ratio() != 1.0 {
		t.Fatalf("ratio = %v, want 1.0", al.Ratio())
	}
	for _, op := range al.Ops {
		if op.Type != Equal {
			t.Fatalf("non-equal op in self alignment: %v", op)
		}
	}
	if al.Total() != 35 {
		t.Fatalf("total = %d, want 35", al.Total())
	}
}

func TestAlignTotalInvariant(t *testing.T) {
	al := Align(fixtureA, fixtureB)
	var sum int64
	for _, op := range al.Ops {
		sum += op.Width()
	}
	if sum != al.Total() {
		t.Fatalf("op widths sum to %d, total is %d", sum, al.Total())
	}
	if al.Total() < al.SizeA() || al.Total() < al.SizeB() {
		t.Fatalf("total %d smaller than a side (%d/%d)", al.Total(), al.SizeA(), al.SizeB())
	}
}

func TestAlignEmptySides(t *testing.T) {
	al := Align(nil, nil)
	if len(al.Ops) != 0 || al.Total() != 0 {
		t.Fatalf("empty alignment has ops: %v", al.Ops)
	}
	if al.Ratio() != 1.0 {
		t.Fatalf("two empty files must count as identical, ratio = %v", al.Ratio())
	}

	al = Align(nil, fixtureB)
	if len(al.Ops) != 1 || al.Ops[0].Type != Insert || al.Ops[0].SizeB != 35 {
		t.Fatalf("want single insert of 35, got %v", al.Ops)
	}
	if al.Ratio() != 0 {
		t.Fatalf("ratio = %v, want 0", al.Ratio())
	}

	al = Align(fixtureA, nil)
	if len(al.Ops) != 1 || al.Ops[0].Type != Delete || al.Ops[0].SizeA != 35 {
		t.Fatalf("want single delete of 35, got %v", al.Ops)
	}
}

func TestOpValue(t *testing.T) {
	if v := (Op{Type: Insert, SizeB: 7}).Value(); v != 7 {
		t.Fatalf("insert value = %d, want 7", v)
	}
	if v := (Op{Type: Replace, SizeA: 3, SizeB: 9}).Value(); v != 3 {
		t.Fatalf("replace value = %d, want sizeA 3", v)
	}
}

func TestDumpParseRoundTrip(t *testing.T) {
	in := "I10 E20 D40 E40 R50"
	al, err := Parse(in)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if got := al.Dump(); got != in {
		t.Fatalf("dump = %q, want %q", got, in)
	}
	if al.Total() != 160 {
		t.Fatalf("total = %d, want 160", al.Total())
	}
	if al.Matches() != 60 {
		t.Fatalf("matches = %d, want 60", al.Matches())
	}
	if al.Ops[0].SizeA != 0 || al.Ops[0].SizeB != 10 {
		t.Fatalf("insert sides = %d/%d", al.Ops[0].SizeA, al.Ops[0].SizeB)
	}
}

func TestParseRejectsUnknownOp(t *testing.T) {
	if _, err := Parse("X10"); err == nil {
		t.Fatalf("expected error for unknown op type")
	}
	if _, err := Parse("Eten"); err == nil {
		t.Fatalf("expected error for bad value")
	}
}
