package feed

import (
	"math"
	"testing"
)

func stack(heights ...float64) []ItemGeometry {
	items := make([]ItemGeometry, len(heights))
	offset := 0.0
	for i, h := range heights {
		items[i] = ItemGeometry{Index: i, Offset: offset, Height: h}
		offset += h
	}
	return items
}

func TestTrackerSample(t *testing.T) {
	tests := []struct {
		name   string
		tie    TieBreak
		count  int
		geom   Geometry
		want   int
		wantOK bool
	}{
		{
			name:   "first item centred",
			geom:   Geometry{ScrollOffset: 0, ViewportHeight: 20, Items: stack(20, 20, 20)},
			want:   0,
			wantOK: true,
		},
		{
			name:   "half way past the first item",
			geom:   Geometry{ScrollOffset: 12, ViewportHeight: 20, Items: stack(20, 20, 20)},
			want:   1,
			wantOK: true,
		},
		{
			name:   "empty viewport",
			geom:   Geometry{ScrollOffset: 0, ViewportHeight: 0, Items: stack(20, 20)},
			wantOK: false,
		},
		{
			name:   "no items laid out",
			geom:   Geometry{ScrollOffset: 0, ViewportHeight: 20, Items: stack(0, 0)},
			wantOK: false,
		},
		{
			name: "unrendered item skipped",
			geom: Geometry{ScrollOffset: 0, ViewportHeight: 20, Items: []ItemGeometry{
				{Index: 0, Offset: 0, Height: 20},
				{Index: 1, Offset: math.NaN(), Height: 20},
			}},
			want:   0,
			wantOK: true,
		},
		{
			name:  "index past the end skipped",
			count: 2,
			geom: Geometry{ScrollOffset: 0, ViewportHeight: 20, Items: []ItemGeometry{
				{Index: 5, Offset: 0, Height: 20},
			}},
			wantOK: false,
		},
		{
			name:  "index past the end does not shadow a valid item",
			count: 2,
			geom: Geometry{ScrollOffset: 20, ViewportHeight: 20, Items: []ItemGeometry{
				{Index: 1, Offset: 15, Height: 20},
				{Index: 2, Offset: 20, Height: 20},
			}},
			want:   1,
			wantOK: true,
		},
		{
			name:   "scrolled past everything",
			geom:   Geometry{ScrollOffset: 500, ViewportHeight: 20, Items: stack(20, 20)},
			wantOK: false,
		},
		{
			name:   "nearest wins among short items",
			tie:    TieBreakNearest,
			geom:   Geometry{ScrollOffset: 0, ViewportHeight: 30, Items: stack(10, 10, 10)},
			want:   1,
			wantOK: true,
		},
		{
			name:   "last wins among short items",
			tie:    TieBreakLast,
			geom:   Geometry{ScrollOffset: 0, ViewportHeight: 30, Items: stack(10, 10, 10)},
			want:   2,
			wantOK: true,
		},
		{
			name:   "exact tie goes to the later item",
			tie:    TieBreakNearest,
			geom:   Geometry{ScrollOffset: 10, ViewportHeight: 20, Items: stack(20, 20, 20)},
			want:   1,
			wantOK: true,
		},
		{
			name:   "centre on the bottom edge counts",
			tie:    TieBreakLast,
			geom:   Geometry{ScrollOffset: 0, ViewportHeight: 20, Items: stack(10, 20)},
			want:   1,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Tracker{TieBreak: tt.tie, Count: tt.count}.Sample(tt.geom)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("index = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseTieBreak(t *testing.T) {
	if ParseTieBreak("LAST") != TieBreakLast {
		t.Fatal("expected last")
	}
	if ParseTieBreak("") != TieBreakNearest || ParseTieBreak("bogus") != TieBreakNearest {
		t.Fatal("expected nearest by default")
	}
}
