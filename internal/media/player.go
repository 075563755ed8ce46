// Package media provides the playback backend used by the feed. Terminals
// cannot decode video, so a Player keeps a wall-clock playhead for a clip and
// behaves like a looping, autoplaying video element.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// DefaultDuration is used for clips whose catalog entry has no duration
const DefaultDuration = 30 * time.Second

// Clock returns the current time
type Clock func() time.Time

// Options configures players created by an Opener
type Options struct {
	StartDelay      time.Duration // simulated buffering before playback starts
	DefaultDuration time.Duration
	Clock           Clock
}

// Opener creates Players. It implements domain.MediaOpener.
type Opener struct {
	opts   Options
	logger *slog.Logger
}

// NewOpener creates an opener
func NewOpener(opts Options, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = DefaultDuration
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Opener{opts: opts, logger: logger}
}

// Open returns a player for clip
func (o *Opener) Open(clip domain.Clip) domain.MediaHandle {
	d := clip.Duration
	if d <= 0 {
		d = o.opts.DefaultDuration
	}
	return &Player{
		source:     clip.Source,
		duration:   d,
		startDelay: o.opts.StartDelay,
		now:        o.opts.Clock,
		logger:     o.logger.With("clip", clip.ID),
	}
}

// Player is a looping playhead. It is safe for concurrent use: Play runs on a
// command goroutine while everything else is called from the UI loop.
type Player struct {
	source     string
	duration   time.Duration
	startDelay time.Duration
	now        Clock
	logger     *slog.Logger

	mu      sync.Mutex
	playing bool
	base    time.Duration // position when playback last (re)started
	since   time.Time     // wall time when playback last (re)started
	muted   bool
	epoch   uint64 // bumped by Pause and Seek so an in-flight Play gives up
}

// Play starts playback after the simulated buffering delay. A Pause or Seek
// issued meanwhile aborts the start with context.Canceled.
func (p *Player) Play(ctx context.Context) error {
	if !Playable(p.source) {
		return domain.ErrUnsupportedSource
	}

	p.mu.Lock()
	epoch := p.epoch
	p.mu.Unlock()

	if p.startDelay > 0 {
		t := time.NewTimer(p.startDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", domain.ErrPlaybackRejected, ctx.Err())
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.epoch != epoch {
		return context.Canceled
	}
	if !p.playing {
		p.playing = true
		p.since = p.now()
	}
	p.logger.Debug("playback started", "position", p.base)
	return nil
}

// Pause freezes the playhead
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.epoch++
	if !p.playing {
		return
	}
	p.base = p.positionLocked()
	p.playing = false
}

// Position returns the playhead, wrapping at the end of the clip
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	pos := p.base
	if p.playing {
		pos += p.now().Sub(p.since)
	}
	if p.duration > 0 {
		pos %= p.duration
	}
	return pos
}

// Seek moves the playhead
func (p *Player) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.epoch++
	if pos < 0 {
		pos = 0
	}
	p.base = pos
	p.since = p.now()
}

// Duration returns the clip length
func (p *Player) Duration() time.Duration { return p.duration }

// Muted reports the mute flag
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetMuted sets the mute flag
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Playing reports whether the playhead is moving
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

var playableExts = map[string]bool{
	".mp4": true, ".webm": true, ".mkv": true, ".mov": true, ".m4v": true, ".m3u8": true,
}

// Playable reports whether source looks like something a player can open
func Playable(source string) bool {
	source = strings.TrimSpace(source)
	if source == "" {
		return false
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "rtmp", "rtsp":
		return u.Host != ""
	case "", "file":
		return playableExts[strings.ToLower(filepath.Ext(u.Path))]
	default:
		return false
	}
}
