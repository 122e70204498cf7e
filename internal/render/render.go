// Package render fits a byte-weighted alignment onto a fixed number of
// character columns. Each alignment op receives integer widths for both
// sides such that the total of per-op maximum widths equals the requested
// width exactly. Rounding up during scaling keeps every non-empty op
// visible; the resulting overshoot is removed by shrinking the widest ops
// first. When even maximal shrinking cannot reach the requested width,
// a contiguous middle span of ops collapses into one 3-column ellipsis.
package render

import (
	"fmt"

	"chunkdup/internal/align"
)

// ellipsisCols is the fixed column cost of the collapse marker ("...").
const ellipsisCols = 3

// WidthError reports a requested width too small to express any plan:
// below 1 always, below 3 when the ellipsis fallback becomes unavoidable.
type WidthError struct {
	Width int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("render width %d too small", e.Width)
}

// Cell assigns integer column widths to one alignment op. Elided cells
// take no columns of their own; the first elided cell carries the Marker
// flag and stands in for the whole collapsed span.
type Cell struct {
	Op     align.Op
	WidthA int
	WidthB int
	Elided bool
	Marker bool
}

// Width is the column count the cell occupies: max(WidthA, WidthB), or 0
// when the cell is elided.
func (c Cell) Width() int {
	if c.Elided {
		return 0
	}
	if c.WidthB > c.WidthA {
		return c.WidthB
	}
	return c.WidthA
}

// Plan is the column layout for one alignment at one requested width.
type Plan struct {
	Width    int // requested width
	Cells    []Cell
	Ellipsis bool // a middle span collapsed into the 3-column marker
}

// Columns is the number of columns the plan renders to: the sum of cell
// widths plus the ellipsis marker if present. Equal to Width whenever no
// ellipsis was needed; with an ellipsis, kept edge cells stay at their
// ceil-scaled widths, so Columns may exceed Width by a small bounded
// slack.
func (p Plan) Columns() int {
	n := 0
	for _, c := range p.Cells {
		n += c.Width()
	}
	if p.Ellipsis {
		n += ellipsisCols
	}
	return n
}

// Build produces the column layout of al at the requested width.
//
// Scaling rounds up (ceil(size·width/total) per side), so the tentative
// layout never undershoots. Overshoot is removed one column at a time from
// the op with the largest remaining shrink budget, where each op's budget
// is its maximum width minus one: no op that started visible shrinks to
// zero. If the overshoot exceeds the combined budget, the tentative shrink
// is discarded and the middle ops collapse into the ellipsis instead,
// keeping ceil((width-3)/2) leading and floor((width-3)/2) trailing ops at
// their unshrunk widths.
//
// An alignment with total 0 yields an empty plan.
func Build(al align.Alignment, width int) (Plan, error) {
	if width < 1 {
		return Plan{}, &WidthError{Width: width}
	}
	p := Plan{Width: width, Cells: make([]Cell, len(al.Ops))}
	total := al.Total()
	if total == 0 {
		return p, nil
	}

	// Step 1: ceil-scale both sides of every op.
	w := int64(width)
	for i, op := range al.Ops {
		p.Cells[i] = Cell{
			Op:     op,
			WidthA: int((op.SizeA*w + total - 1) / total),
			WidthB: int((op.SizeB*w + total - 1) / total),
		}
	}

	// Step 2: per-op shrink budgets.
	budgets := make([]int, len(p.Cells))
	budgetSum := 0
	overshoot := -width
	for i, c := range p.Cells {
		overshoot += c.Width()
		if b := c.Width() - 1; b > 0 {
			budgets[i] = b
			budgetSum += b
		}
	}
	if overshoot <= 0 {
		// Ceil scaling can only overshoot or match for a non-empty
		// alignment, never undershoot.
		return p, nil
	}

	// Step 3: spread the correction across the widest ops.
	if overshoot <= budgetSum {
		for _, i := range shrinkSchedule(budgets, overshoot) {
			if p.Cells[i].WidthA > 0 {
				p.Cells[i].WidthA--
			}
			if p.Cells[i].WidthB > 0 {
				p.Cells[i].WidthB--
			}
		}
		return p, nil
	}

	// Step 4: exact fit is impossible; collapse the middle.
	if width < ellipsisCols {
		return Plan{}, &WidthError{Width: width}
	}
	left := (width - ellipsisCols + 1) / 2
	right := (width - ellipsisCols) / 2
	from, to := left, len(p.Cells)-right
	for i := from; i < to; i++ {
		p.Cells[i].Elided = true
	}
	if from < to {
		p.Cells[from].Marker = true
		p.Ellipsis = true
	}
	return p, nil
}

// shrinkSchedule returns the op indices to decrement, largest remaining
// budget first with the lowest index winning ties. It stops after count
// picks or when every budget is spent. The input slice is not modified.
func shrinkSchedule(budgets []int, count int) []int {
	rem := make([]int, len(budgets))
	copy(rem, budgets)
	out := make([]int, 0, count)
	for len(out) < count {
		best := -1
		for i, r := range rem {
			if r > 0 && (best < 0 || r > rem[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		rem[best]--
		out = append(out, best)
	}
	return out
}
