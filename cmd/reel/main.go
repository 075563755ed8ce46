package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/media"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// demoNamespace keys persisted state for the built-in catalog
const demoNamespace = "demo"

type flags struct {
	catalog    string
	reset      bool
	initConfig bool
}

func main() {
	var showVersion bool
	var f flags
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&f.catalog, "catalog", "", "catalog file (overrides catalog.path)")
	flag.BoolVar(&f.reset, "reset", false, "forget the last seen clip and all likes for the catalog, then exit")
	flag.BoolVar(&f.initConfig, "init-config", false, "write the current configuration to the config file, then exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if f.catalog != "" {
		cfg.Catalog.Path = f.catalog
	}

	if f.initConfig {
		if err := adapter.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Wrote %s\n", adapter.ConfigPath())
		return nil
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	if id, err := uuid.NewV7(); err == nil {
		logger = logger.With("session", id.String())
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	clips, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	storeDir, err := adapter.ExpandHome(cfg.Store.Dir)
	if err != nil {
		return err
	}
	namespace := demoNamespace
	if cfg.Catalog.Path != "" {
		// Same file, same state, whichever directory reel runs from
		if namespace, err = filepath.Abs(cfg.Catalog.Path); err != nil {
			return fmt.Errorf("failed to resolve catalog path: %w", err)
		}
	}
	kv, err := store.OpenOrMemory(storeDir, namespace, logger)
	if err != nil {
		if f.reset {
			return fmt.Errorf("failed to open store: %w", err)
		}
		logger.Warn("store unavailable, state will not persist", "error", err)
	}
	defer kv.Close()

	if f.reset {
		if err := service.NewSessionService(kv, logger).Reset(); err != nil {
			return fmt.Errorf("failed to reset feed state: %w", err)
		}
		fmt.Println("Feed state cleared.")
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("reel needs an interactive terminal")
	}

	opener := media.NewOpener(media.Options{
		StartDelay:      cfg.Playback.StartDelay,
		DefaultDuration: cfg.Playback.DefaultDuration,
	}, logger)

	fd, err := feed.New(clips, kv, opener, feed.Options{
		ControlsHide: cfg.Playback.ControlsHide,
		TieBreak:     feed.ParseTieBreak(cfg.UI.TieBreak),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to build feed: %w", err)
	}
	defer fd.Unmount()

	launcher := adapter.NewLauncher(cfg.Player, logger)
	searchSvc := service.NewSearchService(clips, logger)
	playbackSvc := service.NewPlaybackService(launcher, logger)

	model := tui.NewModel(fd, searchSvc, playbackSvc, tui.Options{
		StartTimeout:     cfg.Playback.StartTimeout,
		ProgressInterval: cfg.Playback.ProgressInterval,
		ScrollStep:       cfg.UI.ScrollStep,
		AnimationFrames:  cfg.UI.AnimationFrames,
	}, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	logger.Info("starting TUI", "clips", len(clips), "catalog", namespace)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
