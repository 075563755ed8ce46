package adapter

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Playback.ControlsHide != 1200*time.Millisecond {
		t.Errorf("controls hide = %v", cfg.Playback.ControlsHide)
	}
	if cfg.UI.TieBreak != "nearest" {
		t.Errorf("tie break = %q", cfg.UI.TieBreak)
	}
	if !strings.HasSuffix(cfg.Logging.File, "reel.log") {
		t.Errorf("log file = %q", cfg.Logging.File)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.TieBreak = "first"
	if err := cfg.Validate(); err == nil {
		t.Error("accepted unknown tie break")
	}

	cfg = DefaultConfig()
	cfg.Playback.ControlsHide = 0
	if err := cfg.Validate(); err == nil {
		t.Error("accepted zero controls hide")
	}

	cfg = DefaultConfig()
	cfg.UI.ScrollStep = 0
	cfg.UI.AnimationFrames = -2
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.ScrollStep != 1 || cfg.UI.AnimationFrames != 1 {
		t.Errorf("not normalized: step=%d frames=%d", cfg.UI.ScrollStep, cfg.UI.AnimationFrames)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogger(t *testing.T) {
	dir := t.TempDir()
	logger, err := SetupLogger(&LoggingConfig{File: dir + "/logs/reel.log", Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hello")
}
