package tui

import (
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/feed"
)

// Message types for the TUI

// PlaybackResolvedMsg carries the outcome of a begin-playback call
type PlaybackResolvedMsg struct {
	Req feed.PlayRequest
	Err error
}

// HideControlsMsg fires when a controls auto-hide window elapses
type HideControlsMsg struct {
	Req feed.HideRequest
}

// ProgressTickMsg triggers a progress sample
type ProgressTickMsg struct{}

// ScrollFrameMsg advances a programmatic scroll animation
type ScrollFrameMsg struct {
	Seq int
}

// ExternalLaunchedMsg signals that a clip was handed to an external player
type ExternalLaunchedMsg struct {
	Clip domain.Clip
	Err  error
}

// StatusMsg sets the footer status line
type StatusMsg struct {
	Text  string
	IsErr bool
}

// ClearStatusMsg clears the status line if it has not been replaced since
type ClearStatusMsg struct {
	Seq int
}
