package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/service"
)

// Command factories for async operations

const (
	scrollFrameInterval = 16 * time.Millisecond
	statusTimeout       = 3 * time.Second
)

// BeginPlaybackCmd runs a begin-playback call off the update loop
func BeginPlaybackCmd(play func(context.Context) error, req feed.PlayRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return PlaybackResolvedMsg{Req: req, Err: play(ctx)}
	}
}

// HideControlsCmd arms a controls auto-hide timer
func HideControlsCmd(req feed.HideRequest) tea.Cmd {
	return tea.Tick(req.Delay, func(time.Time) tea.Msg {
		return HideControlsMsg{Req: req}
	})
}

// ProgressTickCmd schedules the next progress sample
func ProgressTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return ProgressTickMsg{}
	})
}

// ScrollFrameCmd schedules the next frame of scroll animation seq
func ScrollFrameCmd(seq int) tea.Cmd {
	return tea.Tick(scrollFrameInterval, func(time.Time) tea.Msg {
		return ScrollFrameMsg{Seq: seq}
	})
}

// OpenExternalCmd hands a clip to the external player
func OpenExternalCmd(svc *service.PlaybackService, clip domain.Clip, offset time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ExternalLaunchedMsg{Clip: clip, Err: svc.OpenExternal(ctx, clip, offset)}
	}
}

// ClearStatusCmd clears status message seq after a delay
func ClearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
