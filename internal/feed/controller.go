package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// DefaultControlsHide is how long controls stay up after the last interaction
// while the clip is playing.
const DefaultControlsHide = 1200 * time.Millisecond

// Phase is the playback lifecycle of one item
type Phase int

const (
	PhaseInvisible Phase = iota
	PhaseReady           // visible, begin-playback requested but not confirmed
	PhasePlaying
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "invisible"
	}
}

// PlaybackState is the per-item UI state. Liked is persisted; everything else
// resets each time the item becomes visible.
type PlaybackState struct {
	Playing         bool
	Muted           bool
	Liked           bool
	Progress        float64 // percent, 0-100
	ControlsVisible bool
	InfoOpen        bool
}

// Controller drives one clip's media handle from visibility changes and user
// actions.
type Controller struct {
	clip      domain.Clip
	index     int
	handle    domain.MediaHandle
	store     domain.KVStore
	hideAfter time.Duration
	logger    *slog.Logger

	phase   Phase
	state   PlaybackState
	started bool // playback confirmed in the current visibility session

	playGen uint64 // bumped whenever a pending begin-playback becomes stale
	hideGen uint64 // bumped whenever the controls window restarts or is cancelled
	closed  bool
}

func newController(clip domain.Clip, index int, handle domain.MediaHandle, store domain.KVStore, hideAfter time.Duration, logger *slog.Logger) *Controller {
	if handle == nil {
		handle = &nopHandle{}
	}
	if hideAfter <= 0 {
		hideAfter = DefaultControlsHide
	}
	c := &Controller{
		clip:      clip,
		index:     index,
		handle:    handle,
		store:     store,
		hideAfter: hideAfter,
		logger:    logger.With("clip", clip.ID),
		state:     PlaybackState{Muted: true},
	}
	c.state.Liked = c.loadLike()
	handle.SetMuted(true)
	return c
}

func (c *Controller) loadLike() bool {
	v, ok := c.store.Get(domain.LikeKey(c.clip.ID))
	return ok && v == "true"
}

// Clip returns the clip this controller plays
func (c *Controller) Clip() domain.Clip { return c.clip }

// Phase returns the lifecycle phase
func (c *Controller) Phase() Phase { return c.phase }

// State returns a copy of the playback state
func (c *Controller) State() PlaybackState { return c.state }

// Visible reports whether this is the active item
func (c *Controller) Visible() bool { return c.phase != PhaseInvisible }

// ControlsShown reports whether play/mute controls should be drawn. Paused
// items always show them.
func (c *Controller) ControlsShown() bool {
	return c.state.ControlsVisible || !c.state.Playing
}

// show handles the invisible -> visible transition
func (c *Controller) show() Effects {
	if c.closed || c.phase != PhaseInvisible {
		return Effects{}
	}

	c.handle.Seek(0)
	c.state = PlaybackState{Muted: true, Liked: c.state.Liked}
	c.handle.SetMuted(true)
	c.started = false
	c.hideGen++
	c.phase = PhaseReady

	return Effects{Plays: []PlayRequest{c.requestPlay()}}
}

// hide force-stops playback. It always wins over a pending begin-playback.
func (c *Controller) hide() {
	if c.phase == PhaseInvisible {
		return
	}
	c.handle.Pause()
	c.state.Playing = false
	c.state.ControlsVisible = false
	c.phase = PhaseInvisible
	c.playGen++
	c.hideGen++
}

func (c *Controller) requestPlay() PlayRequest {
	c.playGen++
	return PlayRequest{ClipID: c.clip.ID, Gen: c.playGen}
}

// play runs the begin-playback call for a request
func (c *Controller) play(ctx context.Context) error {
	return c.handle.Play(ctx)
}

// resolve applies the outcome of a begin-playback request
func (c *Controller) resolve(gen uint64, err error) Effects {
	if gen != c.playGen || c.phase != PhaseReady || c.closed {
		if err == nil && c.phase != PhaseReady && c.phase != PhasePlaying {
			// The handle did start; nobody wants it running any more
			c.handle.Pause()
		}
		c.logger.Debug("discarding stale playback result", "gen", gen, "current", c.playGen, "phase", c.phase)
		return Effects{}
	}

	if err != nil {
		c.phase = PhasePaused
		c.state.Playing = false
		c.logger.Debug("playback start rejected", "error", err)
		return Effects{}
	}

	c.phase = PhasePlaying
	c.state.Playing = true
	c.started = true
	if c.state.ControlsVisible {
		return c.armControls()
	}
	return Effects{}
}

// togglePlay flips between playing and paused for the visible item
func (c *Controller) togglePlay() Effects {
	var fx Effects
	switch c.phase {
	case PhaseInvisible:
		return fx
	case PhasePlaying, PhaseReady:
		c.handle.Pause()
		c.playGen++
		c.phase = PhasePaused
		c.state.Playing = false
	case PhasePaused:
		c.phase = PhaseReady
		fx.Plays = append(fx.Plays, c.requestPlay())
	}
	fx.add(c.touchControls())
	return fx
}

// touchControls shows the controls and restarts the quiescence window
func (c *Controller) touchControls() Effects {
	c.state.ControlsVisible = true
	c.hideGen++
	if !c.state.Playing {
		return Effects{}
	}
	return c.armControls()
}

func (c *Controller) armControls() Effects {
	c.hideGen++
	return Effects{Hides: []HideRequest{{ClipID: c.clip.ID, Gen: c.hideGen, Delay: c.hideAfter}}}
}

// expireControls hides the controls if the window that fired is still current
// and the clip is still playing.
func (c *Controller) expireControls(gen uint64) bool {
	if c.closed || gen != c.hideGen || !c.state.Playing {
		return false
	}
	c.state.ControlsVisible = false
	return true
}

func (c *Controller) pointerEnter() Effects {
	return c.touchControls()
}

func (c *Controller) pointerLeave() {
	c.state.ControlsVisible = false
	c.hideGen++
}

func (c *Controller) toggleMute() {
	c.state.Muted = !c.state.Muted
	c.handle.SetMuted(c.state.Muted)
}

func (c *Controller) toggleLike() {
	c.state.Liked = !c.state.Liked
	if err := c.store.Set(domain.LikeKey(c.clip.ID), domain.FormatBool(c.state.Liked)); err != nil {
		c.logger.Warn("failed to persist like", "liked", c.state.Liked, "error", err)
	}
}

func (c *Controller) toggleInfo() { c.state.InfoOpen = !c.state.InfoOpen }

func (c *Controller) closeInfo() { c.state.InfoOpen = false }

// sampleProgress refreshes Progress from the handle position
func (c *Controller) sampleProgress() bool {
	if !c.started || c.phase != PhasePlaying {
		return false
	}
	p := 0.0
	if d := c.handle.Duration(); d > 0 {
		p = float64(c.handle.Position()) / float64(d) * 100
	}
	p = min(max(p, 0), 100)
	if p == c.state.Progress {
		return false
	}
	c.state.Progress = p
	return true
}

// close tears the controller down; later results and timers are ignored
func (c *Controller) close() {
	c.hide()
	c.closed = true
}

// nopHandle stands in for a clip whose media could not be opened
type nopHandle struct{ muted bool }

func (*nopHandle) Play(context.Context) error { return domain.ErrUnsupportedSource }
func (*nopHandle) Pause()                     {}
func (*nopHandle) Position() time.Duration    { return 0 }
func (*nopHandle) Seek(time.Duration)         {}
func (*nopHandle) Duration() time.Duration    { return 0 }
func (h *nopHandle) Muted() bool              { return h.muted }
func (h *nopHandle) SetMuted(m bool)          { h.muted = m }
