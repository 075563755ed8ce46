package feed

import "time"

// PlayRequest asks the caller to run the clip's begin-playback call off the
// update loop and hand the outcome back through Feed.ResolvePlayback.
type PlayRequest struct {
	ClipID int
	Gen    uint64 // playback session; outdated sessions are discarded
}

// HideRequest asks the caller to invoke Feed.ExpireControls after Delay.
type HideRequest struct {
	ClipID int
	Gen    uint64
	Delay  time.Duration
}

// ScrollCommand asks the rendering layer to centre the item at Index (animated).
type ScrollCommand struct {
	Index int
}

// Effects is the follow-up work produced by a feed mutation.
type Effects struct {
	Plays  []PlayRequest
	Hides  []HideRequest
	Scroll *ScrollCommand
}

// Empty reports whether there is nothing to do
func (e Effects) Empty() bool {
	return len(e.Plays) == 0 && len(e.Hides) == 0 && e.Scroll == nil
}

func (e *Effects) add(o Effects) {
	e.Plays = append(e.Plays, o.Plays...)
	e.Hides = append(e.Hides, o.Hides...)
	if o.Scroll != nil {
		e.Scroll = o.Scroll
	}
}
