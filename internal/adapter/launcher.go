package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Launcher hands a clip source to an external player
type Launcher struct {
	command   string   // configured player command, empty to auto-detect
	args      []string // additional arguments for the player
	startFlag string   // offset flag prefix, e.g., "--start=" or "-ss "
	goos      string
	logger    *slog.Logger

	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// playerConfig describes how to resume a known player at an offset
type playerConfig struct {
	offsetFlag string
	platforms  []string // platforms the player is probed on
}

var players = map[string]playerConfig{
	"mpv":       {offsetFlag: "--start=", platforms: []string{"darwin", "linux", "windows"}},
	"vlc":       {offsetFlag: "--start-time=", platforms: []string{"darwin", "linux", "windows"}},
	"celluloid": {offsetFlag: "--mpv-start=", platforms: []string{"linux"}},
	"haruna":    {offsetFlag: "--mpv-start=", platforms: []string{"linux"}},
	"ffplay":    {offsetFlag: "-ss ", platforms: []string{"darwin", "linux", "windows"}},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"mpv", "vlc", "ffplay"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc", "ffplay"},
	"windows": {"mpv", "vlc", "ffplay"},
}

// NewLauncher creates a new Launcher with auto-detection of offset flags
func NewLauncher(cfg PlayerConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	resolvedFlag := cfg.StartFlag
	if resolvedFlag == "" && cfg.Command != "" {
		if p, ok := players[playerName(cfg.Command)]; ok {
			resolvedFlag = p.offsetFlag
			logger.Debug("auto-detected player offset flag", "command", cfg.Command, "flag", resolvedFlag)
		}
	}

	return &Launcher{
		command:   cfg.Command,
		args:      append([]string{}, cfg.Args...),
		startFlag: resolvedFlag,
		goos:      runtime.GOOS,
		logger:    logger,
		lookPath:  exec.LookPath,
		start:     func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// playerName normalizes a command path to a registry key
func playerName(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// offsetArgs renders a resume flag. Flags ending in a space take the value
// as a separate argument.
func offsetArgs(flag string, offset time.Duration) []string {
	if offset <= 0 || flag == "" {
		return nil
	}
	secs := fmt.Sprintf("%.0f", offset.Seconds())
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), secs}
	}
	return []string{flag + secs}
}

// Launch opens source in the configured player, a detected one, or the
// system default handler, in that order.
func (l *Launcher) Launch(source string, startOffset time.Duration) error {
	if l.command != "" {
		return l.launchConfigured(source, startOffset)
	}

	if name, err := l.detectAndLaunch(source, startOffset); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return nil
	}

	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(source)
}

func (l *Launcher) launchConfigured(source string, startOffset time.Duration) error {
	if startOffset > 0 && l.startFlag == "" {
		l.logger.Warn("cannot set start offset - unknown player, configure start_flag in config",
			"command", l.command, "offset", startOffset)
	}

	args := append([]string{}, l.args...)
	args = append(args, offsetArgs(l.startFlag, startOffset)...)
	args = append(args, source)

	l.logger.Info("launching player", "command", l.command, "args", args)

	if err := l.start(exec.Command(l.command, args...)); err != nil {
		return fmt.Errorf("launch %s: %w", l.command, err)
	}
	return nil
}

// detectAndLaunch tries candidate players in order. Returns the player that started.
func (l *Launcher) detectAndLaunch(source string, startOffset time.Duration) (string, error) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		p := players[name]
		if !supports(p, l.goos) {
			continue
		}
		path, err := l.lookPath(name)
		if err != nil {
			l.logger.Debug("player not in PATH", "player", name)
			continue
		}

		args := append(offsetArgs(p.offsetFlag, startOffset), source)
		if err := l.start(exec.Command(path, args...)); err != nil {
			l.logger.Debug("player failed to start", "player", name, "error", err)
			continue
		}
		return name, nil
	}

	return "", domain.ErrNoPlayer
}

func supports(p playerConfig, goos string) bool {
	for _, platform := range p.platforms {
		if platform == goos {
			return true
		}
	}
	return false
}

// launchDefault opens the source using the system default handler
func (l *Launcher) launchDefault(source string) error {
	var cmd *exec.Cmd

	switch l.goos {
	case "darwin":
		cmd = exec.Command("open", source)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", source)
	default:
		cmd = exec.Command("xdg-open", source)
	}

	l.logger.Info("launching with system default", "os", l.goos, "source", source)

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNoPlayer, err)
	}
	return nil
}
