package feed

import (
	"math"
	"strings"
)

// TieBreak decides between several items whose centres are all inside the viewport.
type TieBreak int

const (
	// TieBreakNearest picks the item whose centre is closest to the viewport
	// centre; on an exact tie the later item wins.
	TieBreakNearest TieBreak = iota
	// TieBreakLast picks the last candidate in source order.
	TieBreakLast
)

// ParseTieBreak maps a config value to a TieBreak, defaulting to nearest
func ParseTieBreak(s string) TieBreak {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last":
		return TieBreakLast
	default:
		return TieBreakNearest
	}
}

func (t TieBreak) String() string {
	if t == TieBreakLast {
		return "last"
	}
	return "nearest"
}

// ItemGeometry is the laid-out position of one item, in scroll coordinates.
// Height <= 0 means the item has not been laid out yet.
type ItemGeometry struct {
	Index  int
	Offset float64
	Height float64
}

// Geometry is a snapshot of the scroll container supplied by the renderer.
type Geometry struct {
	ScrollOffset   float64
	ViewportHeight float64
	Items          []ItemGeometry
}

// Tracker picks the centred item from a geometry sample using midpoint
// containment: an item qualifies when offset+height/2 lies within
// [scrollOffset, scrollOffset+viewportHeight]. Items indexed outside
// [0, Count) are ignored; Count <= 0 leaves the upper bound open.
type Tracker struct {
	TieBreak TieBreak
	Count    int
}

// Sample returns the most visible index, or ok=false when no item qualifies.
func (t Tracker) Sample(g Geometry) (index int, ok bool) {
	if !(g.ViewportHeight > 0) || math.IsNaN(g.ScrollOffset) {
		return 0, false
	}

	top := g.ScrollOffset
	bottom := top + g.ViewportHeight
	mid := top + g.ViewportHeight/2

	best := -1
	bestDist := math.Inf(1)
	for _, it := range g.Items {
		if it.Index < 0 || (t.Count > 0 && it.Index >= t.Count) {
			continue
		}
		if !(it.Height > 0) || math.IsNaN(it.Offset) {
			continue
		}
		center := it.Offset + it.Height/2
		if center < top || center > bottom {
			continue
		}
		if t.TieBreak == TieBreakLast {
			best = it.Index
			continue
		}
		if d := math.Abs(center - mid); d <= bestDist {
			best, bestDist = it.Index, d
		}
	}

	return best, best >= 0
}
