// Package align turns two chunk sequences into a typed, byte-weighted
// alignment. It treats each chunk hash as an atomic token and uses
// github.com/pmezard/go-difflib's SequenceMatcher to partition both
// sequences into matched and unmatched runs, then weighs each run by the
// byte sizes of the chunks it covers.
//
// The similarity ratio is Dice-coefficient style: 2·matched bytes divided
// by the combined size of both files, 1.0 iff the chunk contents are
// byte-identical.
package align

import (
	"fmt"

	difflib "github.com/pmezard/go-difflib/difflib"

	"chunkdup/internal/sums"
)

// OpType tags one alignment operation.
type OpType int

const (
	// Equal covers a run of identical chunks on both sides.
	Equal OpType = iota
	// Insert covers chunks present only on side B.
	Insert
	// Delete covers chunks present only on side A.
	Delete
	// Replace covers mismatched runs present on both sides.
	Replace
)

func (t OpType) String() string {
	switch t {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("optype(%d)", int(t))
}

// Op is one typed alignment operation. SizeA and SizeB are the byte
// extents consumed from each side: SizeA is 0 for Insert, SizeB is 0 for
// Delete, both are equal for Equal, and independent for Replace.
type Op struct {
	Type  OpType
	SizeA int64
	SizeB int64
}

// Value is the byte quantity the op contributes on its dominant side:
// SizeB for Insert, SizeA otherwise.
func (op Op) Value() int64 {
	if op.Type == Insert {
		return op.SizeB
	}
	return op.SizeA
}

// Width is the byte extent the op occupies in a rendered bar,
// max(SizeA, SizeB).
func (op Op) Width() int64 {
	if op.SizeB > op.SizeA {
		return op.SizeB
	}
	return op.SizeA
}

func (op Op) String() string {
	return fmt.Sprintf("<%s %d>", op.Type, op.Value())
}

// Alignment is the ordered op sequence covering the full extent of both
// inputs, with the derived totals computed once by Align.
type Alignment struct {
	Ops []Op

	total   int64
	matches int64
	sizeA   int64
	sizeB   int64
}

// Total is Σ max(SizeA, SizeB) over all ops: the byte extent of the
// rendered bar. It is symmetric and never smaller than either side's size.
func (al Alignment) Total() int64 { return al.total }

// Matches is the byte count covered by Equal ops.
func (al Alignment) Matches() int64 { return al.matches }

// SizeA and SizeB are the total byte sizes of each input side.
func (al Alignment) SizeA() int64 { return al.sizeA }
func (al Alignment) SizeB() int64 { return al.sizeB }

// Ratio is the Dice-style similarity 2·Matches/(SizeA+SizeB) in [0,1].
// Two zero-size files are defined as identical: Ratio is 1.0 when both
// sides are empty, avoiding a zero denominator.
func (al Alignment) Ratio() float64 {
	if al.sizeA+al.sizeB == 0 {
		return 1.0
	}
	return float64(2*al.matches) / float64(al.sizeA+al.sizeB)
}

// Align computes the alignment of two chunk sequences. The result is
// deterministic for equal inputs; when one side is empty it is a single
// Insert or Delete, and two empty sides yield no ops.
func Align(a, b []sums.Chunk) Alignment {
	ha := make([]string, len(a))
	for i, c := range a {
		ha[i] = c.Hash
	}
	hb := make([]string, len(b))
	for i, c := range b {
		hb[i] = c.Hash
	}

	var al Alignment
	m := difflib.NewMatcher(ha, hb)
	for _, oc := range m.GetOpCodes() {
		sa := sumSizes(a[oc.I1:oc.I2])
		sb := sumSizes(b[oc.J1:oc.J2])
		var op Op
		switch oc.Tag {
		case 'e':
			op = Op{Type: Equal, SizeA: sa, SizeB: sb}
		case 'i':
			op = Op{Type: Insert, SizeB: sb}
		case 'd':
			op = Op{Type: Delete, SizeA: sa}
		case 'r':
			op = Op{Type: Replace, SizeA: sa, SizeB: sb}
		}
		al.Ops = append(al.Ops, op)
		al.total += op.Width()
		if op.Type == Equal {
			al.matches += op.SizeA
		}
	}
	for _, c := range a {
		al.sizeA += c.Size
	}
	for _, c := range b {
		al.sizeB += c.Size
	}
	return al
}

func sumSizes(chunks []sums.Chunk) int64 {
	var n int64
	for _, c := range chunks {
		n += c.Size
	}
	return n
}
