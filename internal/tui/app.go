package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/components"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Options tunes the TUI's timing and scrolling
type Options struct {
	StartTimeout     time.Duration // deadline for a begin-playback call
	ProgressInterval time.Duration
	ScrollStep       int // rows per mouse wheel notch
	AnimationFrames  int // frames per programmatic scroll
}

func (o Options) withDefaults() Options {
	if o.StartTimeout <= 0 {
		o.StartTimeout = 5 * time.Second
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 250 * time.Millisecond
	}
	if o.ScrollStep <= 0 {
		o.ScrollStep = 3
	}
	if o.AnimationFrames <= 0 {
		o.AnimationFrames = 6
	}
	return o
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Feed        *feed.Feed
	SearchSvc   *service.SearchService
	PlaybackSvc *service.PlaybackService

	// UI Components
	Keys     KeyMap
	Help     help.Model
	Omnibar  components.Omnibar
	Progress progress.Model
	Scroller *Scroller

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	// Pointer tracking
	hovered  int // clip ID under the pointer
	hovering bool

	opts   Options
	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	f *feed.Feed,
	searchSvc *service.SearchService,
	playbackSvc *service.PlaybackService,
	opts Options,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	return Model{
		Feed:        f,
		SearchSvc:   searchSvc,
		PlaybackSvc: playbackSvc,
		Keys:        DefaultKeyMap(),
		Help:        help.New(),
		Omnibar:     components.NewOmnibar(),
		Progress: progress.New(
			progress.WithSolidFill(string(styles.ReelPink)),
			progress.WithoutPercentage(),
		),
		Scroller: NewScroller(f.Len(), opts.AnimationFrames),
		opts:     opts,
		logger:   logger,
	}
}

// Init mounts the feed and starts progress sampling
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.effectsCmd(m.Feed.Mount()),
		ProgressTickCmd(m.opts.ProgressInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.Omnibar.SetSize(msg.Width, msg.Height)
		return m, m.relayout()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case PlaybackResolvedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.logger.Debug("begin playback failed", "clip", msg.Req.ClipID, "error", msg.Err)
		}
		return m, m.effectsCmd(m.Feed.ResolvePlayback(msg.Req, msg.Err))

	case HideControlsMsg:
		m.Feed.ExpireControls(msg.Req)
		return m, nil

	case ProgressTickMsg:
		m.Feed.SampleProgress()
		return m, ProgressTickCmd(m.opts.ProgressInterval)

	case ScrollFrameMsg:
		settled, stale := m.Scroller.Step(msg.Seq)
		if stale {
			return m, nil
		}
		if !settled {
			return m, ScrollFrameCmd(msg.Seq)
		}
		// Settled: confirm the index from where the view actually landed
		return m, m.effectsCmd(m.Feed.Sample(m.Scroller.Geometry()))

	case ExternalLaunchedMsg:
		if msg.Err != nil {
			m.logger.Error("external playback failed", "clip", msg.Clip.ID, "error", msg.Err)
			cmd := m.setStatus(fmt.Sprintf("Could not open %q: %v", msg.Clip.Title, msg.Err), true)
			return m, cmd
		}
		cmd := m.setStatus("Opened "+msg.Clip.Title, false)
		return m, cmd

	case StatusMsg:
		cmd := m.setStatus(msg.Text, msg.IsErr)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blink and other input-internal messages
	if m.Omnibar.IsVisible() {
		var cmd tea.Cmd
		m.Omnibar, cmd, _ = m.Omnibar.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		switch {
		case key.Matches(msg, m.Keys.Help), key.Matches(msg, m.Keys.Escape), key.Matches(msg, m.Keys.Quit):
			m.ShowHelp = false
		}
		return m, nil
	}

	if m.Omnibar.IsVisible() {
		var cmd tea.Cmd
		var selected bool
		m.Omnibar, cmd, selected = m.Omnibar.Update(msg)

		if m.Omnibar.QueryChanged() {
			m.Omnibar.SetResults(m.SearchSvc.Search(m.Omnibar.Query()))
		}

		if selected {
			if result, ok := m.Omnibar.Selected(); ok {
				m.Omnibar.Hide()
				m.logger.Debug("jump", "index", result.Index, "title", result.Clip.Title)
				return m, m.effectsCmd(m.Feed.Jump(result.Index))
			}
		}
		return m, cmd
	}

	visibleID := m.Feed.VisibleItem().Clip.ID

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, m.Keys.Search):
		cmd := m.Omnibar.Show()
		return m, cmd

	case key.Matches(msg, m.Keys.Prev):
		return m, m.effectsCmd(m.Feed.Previous())

	case key.Matches(msg, m.Keys.Next):
		return m, m.effectsCmd(m.Feed.Next())

	case key.Matches(msg, m.Keys.Home):
		return m, m.effectsCmd(m.Feed.Jump(0))

	case key.Matches(msg, m.Keys.End):
		return m, m.effectsCmd(m.Feed.Jump(m.Feed.Len() - 1))

	case key.Matches(msg, m.Keys.Play):
		return m, m.effectsCmd(m.Feed.TogglePlayVisible())

	case key.Matches(msg, m.Keys.Mute):
		m.Feed.ToggleMute(visibleID)
		return m, nil

	case key.Matches(msg, m.Keys.Like):
		m.Feed.ToggleLike(visibleID)
		return m, nil

	case key.Matches(msg, m.Keys.Info):
		m.Feed.ToggleInfo(visibleID)
		return m, nil

	case key.Matches(msg, m.Keys.Escape):
		m.Feed.CloseInfo(visibleID)
		return m, nil

	case key.Matches(msg, m.Keys.FullScreen):
		m.Feed.ToggleFullScreen()
		return m, m.relayout()

	case key.Matches(msg, m.Keys.Open):
		cmd := m.openExternal()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp || m.Omnibar.IsVisible() {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.Scroller.ScrollBy(-float64(m.opts.ScrollStep))
		return m, m.effectsCmd(m.Feed.Sample(m.Scroller.Geometry()))

	case msg.Button == tea.MouseButtonWheelDown:
		m.Scroller.ScrollBy(float64(m.opts.ScrollStep))
		return m, m.effectsCmd(m.Feed.Sample(m.Scroller.Geometry()))

	case msg.Action == tea.MouseActionMotion:
		cmd := m.hover(msg.Y)
		return m, cmd

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		idx, ok := m.Scroller.ItemAt(msg.Y - HeaderHeight)
		if !ok {
			return m, nil
		}
		return m, m.effectsCmd(m.Feed.TogglePlay(m.Feed.Clips()[idx].ID))
	}

	return m, nil
}

// hover tracks which card the pointer is over and forwards enter/leave
func (m *Model) hover(y int) tea.Cmd {
	idx, over := m.Scroller.ItemAt(y - HeaderHeight)
	if over && m.hovering && m.Feed.Clips()[idx].ID == m.hovered {
		return nil
	}

	if m.hovering {
		m.Feed.PointerLeave(m.hovered)
		m.hovering = false
	}
	if !over {
		return nil
	}

	m.hovered = m.Feed.Clips()[idx].ID
	m.hovering = true
	return m.effectsCmd(m.Feed.PointerEnter(m.hovered))
}

// openExternal pauses the visible clip and hands it to the external player
// at the current position.
func (m *Model) openExternal() tea.Cmd {
	if m.PlaybackSvc == nil {
		return m.setStatus("No external player configured", true)
	}

	item := m.Feed.VisibleItem()
	var fx feed.Effects
	if item.Phase == feed.PhasePlaying || item.Phase == feed.PhaseReady {
		fx = m.Feed.TogglePlayVisible()
	}

	return tea.Batch(
		m.effectsCmd(fx),
		OpenExternalCmd(m.PlaybackSvc, item.Clip, item.Position),
		m.setStatus("Opening "+item.Clip.Title+"...", false),
	)
}

// relayout resizes the scroller for the window and render mode and
// re-samples visibility
func (m Model) relayout() tea.Cmd {
	if !m.Ready {
		return nil
	}
	m.Scroller.Resize(m.Height-ChromeHeight, m.Feed.FullScreen())
	return m.effectsCmd(m.Feed.Sample(m.Scroller.Geometry()))
}

// effectsCmd schedules the follow-up work returned by the feed
func (m Model) effectsCmd(fx feed.Effects) tea.Cmd {
	if fx.Empty() {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(fx.Plays)+len(fx.Hides)+1)
	for _, req := range fx.Plays {
		cmds = append(cmds, BeginPlaybackCmd(m.Feed.PlayFunc(req), req, m.opts.StartTimeout))
		// Becoming visible resets controls; a still pointer is still over the card
		if m.hovering && req.ClipID == m.hovered {
			fx.Hides = append(fx.Hides, m.Feed.PointerEnter(m.hovered).Hides...)
		}
	}
	for _, req := range fx.Hides {
		cmds = append(cmds, HideControlsCmd(req))
	}
	if fx.Scroll != nil {
		if seq, animate := m.Scroller.ScrollTo(fx.Scroll.Index); animate {
			cmds = append(cmds, ScrollFrameCmd(seq))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq)
}
