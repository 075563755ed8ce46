// Package feed implements the shorts feed engine: it decides which clip is
// centred in the viewport, keeps the visible index, its scroll position and
// the persisted last seen index consistent, and drives per-clip playback.
//
// The engine is synchronous. Anything that must happen later (running a
// blocking begin-playback call, firing a controls timer, animating a scroll)
// is returned as Effects for the caller to schedule, and comes back in through
// ResolvePlayback, ExpireControls or Sample.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Options tunes a Feed
type Options struct {
	ControlsHide time.Duration // quiescence window before controls auto-hide
	TieBreak     TieBreak
}

// State is a snapshot of the feed-level state
type State struct {
	VisibleIndex int
	HasPrevious  bool
	HasNext      bool
	FullScreen   bool
	Len          int
}

// ItemView is a read-only snapshot of one item for rendering
type ItemView struct {
	Index         int
	Clip          domain.Clip
	Phase         Phase
	State         PlaybackState
	Visible       bool
	ControlsShown bool
	Position      time.Duration
	Duration      time.Duration
}

// Feed composes the navigator, tracker, full screen toggle and one
// controller per clip.
type Feed struct {
	clips   []domain.Clip
	slots   map[int]*Controller // keyed by clip ID
	order   []int               // index -> clip ID
	nav     *Navigator
	tracker Tracker
	screen  FullScreen
	logger  *slog.Logger
	mounted bool
}

// New builds a feed over clips. Clip IDs must be unique.
func New(clips []domain.Clip, store domain.KVStore, opener domain.MediaOpener, opts Options, logger *slog.Logger) (*Feed, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = nopStore{}
	}
	if len(clips) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	f := &Feed{
		clips:   clips,
		slots:   make(map[int]*Controller, len(clips)),
		order:   make([]int, len(clips)),
		tracker: Tracker{TieBreak: opts.TieBreak, Count: len(clips)},
		logger:  logger,
	}

	for i, clip := range clips {
		if _, dup := f.slots[clip.ID]; dup {
			return nil, fmt.Errorf("duplicate clip id %d at index %d", clip.ID, i)
		}
		var handle domain.MediaHandle
		if opener != nil {
			handle = opener.Open(clip)
		}
		f.slots[clip.ID] = newController(clip, i, handle, store, opts.ControlsHide, logger)
		f.order[i] = clip.ID
	}

	f.nav = NewNavigator(len(clips), store, logger)
	return f, nil
}

// Mount makes the restored index visible and asks for a scroll to it
func (f *Feed) Mount() Effects {
	idx := f.nav.Index()
	fx := Effects{Scroll: &ScrollCommand{Index: idx}}
	if f.mounted {
		return fx
	}
	f.mounted = true
	f.logger.Info("feed mounted", "index", idx, "clips", len(f.clips))
	fx.add(f.slotAt(idx).show())
	return fx
}

// Unmount stops every item and invalidates all pending results and timers
func (f *Feed) Unmount() {
	for _, c := range f.slots {
		c.close()
	}
	f.mounted = false
	f.logger.Info("feed unmounted")
}

func (f *Feed) slotAt(index int) *Controller {
	return f.slots[f.order[index]]
}

// apply dispatches a transition to the controllers
func (f *Feed) apply(t Transition) Effects {
	f.logger.Debug("visible index changed", "from", t.From, "to", t.To, "cause", t.Cause)

	// Hide first so two items are never playing at once
	f.slotAt(t.From).hide()
	if t.Cause == CauseScroll {
		for _, c := range f.slots {
			c.closeInfo()
		}
	}

	var fx Effects
	if f.mounted {
		fx.add(f.slotAt(t.To).show())
	}
	fx.Scroll = &ScrollCommand{Index: t.To}
	return fx
}

// Sample runs the tracker over a geometry snapshot and reports the result
func (f *Feed) Sample(g Geometry) Effects {
	idx, ok := f.tracker.Sample(g)
	if !ok {
		return Effects{}
	}
	return f.ReportVisible(idx)
}

// ReportVisible accepts an observed index. Reporting the current index is a no-op.
func (f *Feed) ReportVisible(index int) Effects {
	t, changed := f.nav.ReportVisible(index)
	if !changed {
		return Effects{}
	}
	return f.apply(t)
}

// Previous moves to the item above, clamped at the first
func (f *Feed) Previous() Effects {
	return f.navigate(f.nav.Previous())
}

// Next moves to the item below, clamped at the last
func (f *Feed) Next() Effects {
	return f.navigate(f.nav.Next())
}

// Jump moves to index, clamped
func (f *Feed) Jump(index int) Effects {
	return f.navigate(f.nav.Jump(index))
}

func (f *Feed) navigate(t Transition, changed bool) Effects {
	var fx Effects
	if changed {
		fx = f.apply(t)
	}
	// Scroll is reissued even at a boundary so a half-scrolled view snaps back
	fx.Scroll = &ScrollCommand{Index: f.nav.Index()}
	return fx
}

// ToggleFullScreen flips full screen and returns the new mode
func (f *Feed) ToggleFullScreen() bool {
	on := f.screen.Toggle()
	f.logger.Debug("full screen toggled", "on", on)
	return on
}

// FullScreen reports the render mode
func (f *Feed) FullScreen() bool { return f.screen.Enabled() }

// TogglePlay flips play/pause on a clip. Invisible clips are left alone.
func (f *Feed) TogglePlay(clipID int) Effects {
	if c, ok := f.slots[clipID]; ok {
		return c.togglePlay()
	}
	return Effects{}
}

// TogglePlayVisible flips play/pause on whichever clip is visible
func (f *Feed) TogglePlayVisible() Effects {
	return f.slotAt(f.nav.Index()).togglePlay()
}

// ToggleMute flips mute on a clip and applies it to the handle immediately
func (f *Feed) ToggleMute(clipID int) {
	if c, ok := f.slots[clipID]; ok {
		c.toggleMute()
	}
}

// ToggleLike flips and persists the like flag on a clip
func (f *Feed) ToggleLike(clipID int) {
	if c, ok := f.slots[clipID]; ok {
		c.toggleLike()
	}
}

// ToggleInfo opens or closes a clip's info panel
func (f *Feed) ToggleInfo(clipID int) {
	if c, ok := f.slots[clipID]; ok {
		c.toggleInfo()
	}
}

// CloseInfo closes a clip's info panel
func (f *Feed) CloseInfo(clipID int) {
	if c, ok := f.slots[clipID]; ok {
		c.closeInfo()
	}
}

// PointerEnter shows a clip's controls and restarts the auto-hide window
func (f *Feed) PointerEnter(clipID int) Effects {
	if c, ok := f.slots[clipID]; ok {
		return c.pointerEnter()
	}
	return Effects{}
}

// PointerLeave hides a clip's controls
func (f *Feed) PointerLeave(clipID int) {
	if c, ok := f.slots[clipID]; ok {
		c.pointerLeave()
	}
}

// PlayFunc returns the blocking begin-playback call for a request. The
// returned func is safe to run on another goroutine.
func (f *Feed) PlayFunc(req PlayRequest) func(ctx context.Context) error {
	c, ok := f.slots[req.ClipID]
	if !ok {
		return func(context.Context) error { return domain.ErrUnsupportedSource }
	}
	return c.play
}

// ResolvePlayback applies the outcome of a begin-playback call. Results for
// clips that have since gone invisible (or been re-requested) are discarded.
func (f *Feed) ResolvePlayback(req PlayRequest, err error) Effects {
	if c, ok := f.slots[req.ClipID]; ok {
		return c.resolve(req.Gen, err)
	}
	return Effects{}
}

// ExpireControls is called when a controls timer fires. It reports whether
// the controls were hidden.
func (f *Feed) ExpireControls(req HideRequest) bool {
	if c, ok := f.slots[req.ClipID]; ok {
		return c.expireControls(req.Gen)
	}
	return false
}

// SampleProgress refreshes progress for playing clips. It reports whether
// anything changed.
func (f *Feed) SampleProgress() bool {
	changed := false
	for _, c := range f.slots {
		if c.sampleProgress() {
			changed = true
		}
	}
	return changed
}

// State returns the feed-level snapshot
func (f *Feed) State() State {
	return State{
		VisibleIndex: f.nav.Index(),
		HasPrevious:  f.nav.HasPrevious(),
		HasNext:      f.nav.HasNext(),
		FullScreen:   f.screen.Enabled(),
		Len:          len(f.clips),
	}
}

// Len returns the number of clips
func (f *Feed) Len() int { return len(f.clips) }

// Clips returns the catalog in feed order
func (f *Feed) Clips() []domain.Clip { return f.clips }

// Item returns a snapshot of the item at index
func (f *Feed) Item(index int) (ItemView, bool) {
	if index < 0 || index >= len(f.order) {
		return ItemView{}, false
	}
	c := f.slotAt(index)
	return ItemView{
		Index:         index,
		Clip:          c.clip,
		Phase:         c.phase,
		State:         c.state,
		Visible:       c.Visible(),
		ControlsShown: c.ControlsShown(),
		Position:      c.handle.Position(),
		Duration:      c.handle.Duration(),
	}, true
}

// VisibleItem returns a snapshot of the active item
func (f *Feed) VisibleItem() ItemView {
	v, _ := f.Item(f.nav.Index())
	return v
}

// LikedCount returns how many clips are liked
func (f *Feed) LikedCount() int {
	n := 0
	for _, c := range f.slots {
		if c.state.Liked {
			n++
		}
	}
	return n
}
