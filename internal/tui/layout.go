package tui

import (
	"math"

	"github.com/mmcdole/reel/internal/feed"
)

const (
	// HeaderHeight and FooterHeight are the rows around the feed viewport
	HeaderHeight = 1
	FooterHeight = 1
	ChromeHeight = HeaderHeight + FooterHeight

	// PeekRows is how much of the neighbouring cards stays visible
	PeekRows = 2

	MinItemHeight = 5
)

// Scroller owns the feed viewport's scroll offset and the programmatic
// scroll animation. Offsets are in terminal rows.
type Scroller struct {
	count      int
	viewHeight int
	itemHeight int
	fullScreen bool

	offset float64
	target float64
	anchor int // last index scrolled to

	frames    int // animation length
	remaining int // frames left in the running animation
	seq       int // identifies the running animation
}

// NewScroller creates a scroller over count items
func NewScroller(count, frames int) *Scroller {
	return &Scroller{count: count, frames: max(frames, 1)}
}

// Resize sets the viewport height and render mode. The view snaps to the
// anchored item and any running animation is dropped.
func (s *Scroller) Resize(viewHeight int, fullScreen bool) {
	s.viewHeight = max(viewHeight, 0)
	s.fullScreen = fullScreen
	if fullScreen {
		s.itemHeight = max(s.viewHeight, 1)
	} else {
		s.itemHeight = max(s.viewHeight-2*PeekRows, MinItemHeight)
	}
	s.cancel()
	s.offset = s.centredOffset(s.anchor)
	s.target = s.offset
}

// Ready reports whether the viewport has been sized
func (s *Scroller) Ready() bool { return s.viewHeight > 0 }

func (s *Scroller) ViewHeight() int { return s.viewHeight }
func (s *Scroller) ItemHeight() int { return s.itemHeight }
func (s *Scroller) Offset() float64 { return s.offset }
func (s *Scroller) Animating() bool { return s.remaining > 0 }

// centredOffset is the scroll offset that centres item i
func (s *Scroller) centredOffset(i int) float64 {
	return float64(i*s.itemHeight) - float64(s.viewHeight-s.itemHeight)/2
}

func (s *Scroller) clamp(offset float64) float64 {
	if s.count == 0 {
		return 0
	}
	return math.Max(s.centredOffset(0), math.Min(offset, s.centredOffset(s.count-1)))
}

// ScrollTo starts an animation centring index and returns its sequence
// number. ok is false when no animation is needed.
func (s *Scroller) ScrollTo(index int) (seq int, ok bool) {
	s.anchor = index
	s.target = s.clamp(s.centredOffset(index))
	s.cancel()
	if !s.Ready() || s.offset == s.target {
		s.offset = s.target
		return s.seq, false
	}
	s.remaining = s.frames
	return s.seq, true
}

// Step advances animation seq by one frame. It returns settled=true on the
// frame that reaches the target; frames of a cancelled animation report
// stale=true and do nothing.
func (s *Scroller) Step(seq int) (settled, stale bool) {
	if seq != s.seq || s.remaining <= 0 {
		return false, true
	}
	s.offset += (s.target - s.offset) / float64(s.remaining)
	s.remaining--
	if s.remaining == 0 {
		s.offset = s.target
		return true, false
	}
	return false, false
}

// ScrollBy moves the viewport by delta rows, as a user scroll. It cancels
// any programmatic animation.
func (s *Scroller) ScrollBy(delta float64) {
	s.cancel()
	s.offset = s.clamp(s.offset + delta)
	s.target = s.offset
}

func (s *Scroller) cancel() {
	s.seq++
	s.remaining = 0
}

// Geometry reports the layout of the items intersecting the viewport
func (s *Scroller) Geometry() feed.Geometry {
	g := feed.Geometry{
		ScrollOffset:   s.offset,
		ViewportHeight: float64(s.viewHeight),
	}
	if !s.Ready() {
		return g
	}
	first, last := s.span()
	for i := first; i <= last; i++ {
		g.Items = append(g.Items, feed.ItemGeometry{
			Index:  i,
			Offset: float64(i * s.itemHeight),
			Height: float64(s.itemHeight),
		})
	}
	return g
}

// span returns the range of item indexes intersecting the viewport
func (s *Scroller) span() (first, last int) {
	h := float64(s.itemHeight)
	first = max(int(math.Floor(s.offset/h)), 0)
	last = min(int(math.Ceil((s.offset+float64(s.viewHeight))/h))-1, s.count-1)
	return first, last
}

// ItemAt maps a viewport row to the item rendered there
func (s *Scroller) ItemAt(row int) (int, bool) {
	if !s.Ready() || row < 0 || row >= s.viewHeight {
		return 0, false
	}
	pos := math.Floor(s.offset) + float64(row)
	if pos < 0 {
		return 0, false
	}
	i := int(pos) / s.itemHeight
	if i >= s.count {
		return 0, false
	}
	return i, true
}
