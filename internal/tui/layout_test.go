package tui

import (
	"testing"

	"github.com/mmcdole/reel/internal/feed"
)

func TestScrollerResize(t *testing.T) {
	tests := []struct {
		name       string
		viewHeight int
		fullScreen bool
		want       int
	}{
		{"normal leaves peek rows", 22, false, 18},
		{"full screen fills viewport", 22, true, 22},
		{"tiny viewport keeps minimum", 6, false, MinItemHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScroller(5, 4)
			s.Resize(tt.viewHeight, tt.fullScreen)
			if got := s.ItemHeight(); got != tt.want {
				t.Errorf("item height = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScrollerResizeSnapsToAnchor(t *testing.T) {
	s := NewScroller(5, 4)
	if _, ok := s.ScrollTo(3); ok {
		t.Fatal("unsized scroller should not animate")
	}
	s.Resize(22, false)
	if got, want := s.Offset(), s.centredOffset(3); got != want {
		t.Errorf("offset = %v, want %v", got, want)
	}
}

func TestScrollerAnimation(t *testing.T) {
	s := NewScroller(5, 4)
	s.Resize(22, false)

	seq, ok := s.ScrollTo(2)
	if !ok {
		t.Fatal("expected an animation")
	}

	frames := 0
	for {
		settled, stale := s.Step(seq)
		if stale {
			t.Fatalf("frame %d reported stale", frames)
		}
		frames++
		if settled {
			break
		}
		if !s.Animating() {
			t.Fatal("stopped animating without settling")
		}
	}
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
	if got, want := s.Offset(), s.centredOffset(2); got != want {
		t.Errorf("offset = %v, want %v", got, want)
	}

	// Already there: nothing to animate
	if _, ok := s.ScrollTo(2); ok {
		t.Error("scroll to current position should not animate")
	}
}

func TestScrollerUserScrollCancelsAnimation(t *testing.T) {
	s := NewScroller(5, 4)
	s.Resize(22, false)

	seq, _ := s.ScrollTo(4)
	s.Step(seq)
	s.ScrollBy(3)

	if _, stale := s.Step(seq); !stale {
		t.Error("frame of a cancelled animation should be stale")
	}
	if s.Animating() {
		t.Error("still animating after user scroll")
	}
}

func TestScrollerClamp(t *testing.T) {
	s := NewScroller(5, 4)
	s.Resize(22, false)

	s.ScrollBy(-1000)
	if got, want := s.Offset(), s.centredOffset(0); got != want {
		t.Errorf("top clamp = %v, want %v", got, want)
	}
	s.ScrollBy(1e6)
	if got, want := s.Offset(), s.centredOffset(4); got != want {
		t.Errorf("bottom clamp = %v, want %v", got, want)
	}
}

func TestScrollerGeometryCentresAnchor(t *testing.T) {
	for _, full := range []bool{false, true} {
		for _, tb := range []feed.TieBreak{feed.TieBreakNearest, feed.TieBreakLast} {
			s := NewScroller(6, 3)
			s.Resize(22, full)
			tracker := feed.Tracker{TieBreak: tb}

			for i := 0; i < 6; i++ {
				seq, ok := s.ScrollTo(i)
				for ok {
					settled, _ := s.Step(seq)
					ok = !settled
				}
				got, found := tracker.Sample(s.Geometry())
				if !found || got != i {
					t.Errorf("full=%v tie=%v: sample after scrolling to %d = %d (found=%v)", full, tb, i, got, found)
				}
			}
		}
	}
}

func TestScrollerGeometryOnlyRenderedItems(t *testing.T) {
	s := NewScroller(10, 3)
	s.Resize(22, false)
	s.ScrollTo(5)
	s.Resize(22, false)

	g := s.Geometry()
	if len(g.Items) == 0 || len(g.Items) > 3 {
		t.Fatalf("got %d items in geometry, want 1..3", len(g.Items))
	}
	for _, it := range g.Items {
		if it.Index < 4 || it.Index > 6 {
			t.Errorf("item %d is not near the viewport", it.Index)
		}
	}
}

func TestScrollerItemAt(t *testing.T) {
	s := NewScroller(3, 3)
	s.Resize(22, false) // item height 18, offset -2

	tests := []struct {
		row    int
		want   int
		wantOK bool
	}{
		{0, 0, false}, // blank rows above the first card
		{2, 0, true},
		{19, 0, true},
		{20, 1, true},
		{22, 0, false}, // outside viewport
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := s.ItemAt(tt.row)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ItemAt(%d) = %d, %v; want %d, %v", tt.row, got, ok, tt.want, tt.wantOK)
		}
	}
}
