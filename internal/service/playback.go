package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(url string, startOffset time.Duration) error
}

// PlaybackService hands clips off to an external player
type PlaybackService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		logger:   logger,
	}
}

// OpenExternal launches the clip in the configured player, starting at offset
func (s *PlaybackService) OpenExternal(ctx context.Context, clip domain.Clip, offset time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clip.Source == "" {
		return domain.ErrUnsupportedSource
	}

	s.logger.Info("launching external playback", "title", clip.Title, "clip", clip.ID, "offset", offset)

	return s.launcher.Launch(clip.Source, offset)
}
