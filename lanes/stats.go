package lanes

import (
	"maps"
	"slices"
)

// Stats counts vector instructions executed on a Unit and how many of their
// lanes did useful work.
//
// Every masked primitive counts Width() total lanes and CountTrue(mask)
// active lanes. HorizontalAdd and Interleave always count as fully active.
// Mask combinators and CountTrue are not vector instructions.
type Stats struct {
	Instructions int
	TotalLanes   int
	ActiveLanes  int
	// PerOp counts instructions by name (OpLoad, OpMul, ...).
	PerOp map[string]int
}

// Utilization returns ActiveLanes / TotalLanes, or 0 if nothing ran.
func (s Stats) Utilization() float64 {
	if s.TotalLanes == 0 {
		return 0
	}
	return float64(s.ActiveLanes) / float64(s.TotalLanes)
}

// Merge returns the sum of s and o.
func (s Stats) Merge(o Stats) Stats {
	out := Stats{
		Instructions: s.Instructions + o.Instructions,
		TotalLanes:   s.TotalLanes + o.TotalLanes,
		ActiveLanes:  s.ActiveLanes + o.ActiveLanes,
		PerOp:        make(map[string]int, len(s.PerOp)+len(o.PerOp)),
	}
	maps.Copy(out.PerOp, s.PerOp)
	for op, n := range o.PerOp {
		out.PerOp[op] += n
	}
	return out
}

// Ops returns the names in PerOp in sorted order.
func (s Stats) Ops() []string {
	return slices.Sorted(maps.Keys(s.PerOp))
}
