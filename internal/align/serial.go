package align

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump serializes the alignment as one letter plus byte value per op,
// e.g. "I10 E20 D40 E40 R50". Only each op's dominant value survives;
// Replace ops with asymmetric sides do not round-trip exactly.
func (al Alignment) Dump() string {
	parts := make([]string, len(al.Ops))
	for i, op := range al.Ops {
		parts[i] = fmt.Sprintf("%c%d", strings.ToUpper(op.Type.String())[0], op.Value())
	}
	return strings.Join(parts, " ")
}

// Parse rebuilds an alignment from Dump's form. Equal and Replace ops set
// both sides to the value, Insert sets side B, Delete side A.
func Parse(s string) (Alignment, error) {
	var al Alignment
	for _, fld := range strings.Fields(s) {
		v, err := strconv.ParseInt(fld[1:], 10, 64)
		if err != nil {
			return Alignment{}, fmt.Errorf("alignment op %q: %w", fld, err)
		}
		var op Op
		switch fld[0] {
		case 'E':
			op = Op{Type: Equal, SizeA: v, SizeB: v}
		case 'I':
			op = Op{Type: Insert, SizeB: v}
		case 'D':
			op = Op{Type: Delete, SizeA: v}
		case 'R':
			op = Op{Type: Replace, SizeA: v, SizeB: v}
		default:
			return Alignment{}, fmt.Errorf("alignment op %q: unknown type %q", fld, fld[:1])
		}
		al.Ops = append(al.Ops, op)
		al.total += op.Width()
		if op.Type == Equal {
			al.matches += op.SizeA
		}
		al.sizeA += op.SizeA
		al.sizeB += op.SizeB
	}
	return al, nil
}
