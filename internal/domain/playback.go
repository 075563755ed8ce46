package domain

import (
	"context"
	"time"
)

// MediaHandle is a controllable playback object for a single clip.
// Play may block until playback actually starts and may fail; every other
// method returns immediately.
type MediaHandle interface {
	Play(ctx context.Context) error
	Pause()
	Position() time.Duration
	Seek(pos time.Duration)
	Duration() time.Duration
	Muted() bool
	SetMuted(muted bool)
}

// MediaOpener creates a media handle for a clip.
type MediaOpener interface {
	Open(clip Clip) MediaHandle
}
