package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/feed"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}
	if m.Omnibar.IsVisible() {
		return m.Omnibar.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFeed(),
		m.renderFooter(),
	)
}

// renderHeader renders the title, position and prev/next arrows
func (m Model) renderHeader() string {
	st := m.Feed.State()

	up, down := " ", " "
	if st.HasPrevious {
		up = styles.AccentStyle.Render(styles.UpChar)
	}
	if st.HasNext {
		down = styles.AccentStyle.Render(styles.DownChar)
	}

	left := styles.TitleStyle.Render("reel") + "  " +
		up + " " + styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d", st.VisibleIndex+1, st.Len)) + " " + down

	right := styles.LikedStyle.Render(styles.LikedChar) + styles.DimStyle.Render(fmt.Sprintf(" %d", m.Feed.LikedCount()))
	if st.FullScreen {
		right = styles.HighlightStyle.Render("FULL") + " " + right
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderFeed renders the rows of the card stack that fall inside the viewport
func (m Model) renderFeed() string {
	viewH := m.Scroller.ViewHeight()
	itemH := m.Scroller.ItemHeight()
	if viewH <= 0 || itemH <= 0 {
		return ""
	}

	cards := make(map[int][]string)
	top := int(math.Floor(m.Scroller.Offset()))
	rows := make([]string, viewH)

	for row := range rows {
		pos := top + row
		if pos < 0 {
			continue
		}
		idx := pos / itemH
		if idx >= m.Feed.Len() {
			continue
		}
		lines, ok := cards[idx]
		if !ok {
			item, _ := m.Feed.Item(idx)
			lines = m.renderCard(item, m.Width, itemH)
			cards[idx] = lines
		}
		rows[row] = lines[pos%itemH]
	}

	return strings.Join(rows, "\n")
}

// renderCard renders one clip as exactly height lines
func (m Model) renderCard(item feed.ItemView, width, height int) []string {
	inner := max(width-6, 10) // border + padding

	var b strings.Builder

	title := styles.Truncate(item.Clip.Title, inner-12)
	if item.Visible {
		b.WriteString(styles.TitleStyle.Render(title))
	} else {
		b.WriteString(styles.SubtitleStyle.Render(title))
	}
	if d := item.Clip.FormattedDuration(); d != "" {
		b.WriteString(styles.DimStyle.Render("  " + d))
	}
	b.WriteString("\n")

	if tags := item.Clip.HashTags(); tags != "" {
		b.WriteString(styles.TagStyle.Render(styles.Truncate(tags, inner)))
	}
	b.WriteString("\n")

	if item.Visible {
		b.WriteString("\n")
		b.WriteString(renderPlayState(item))
		b.WriteString("\n")

		if item.State.InfoOpen {
			desc := item.Clip.Description
			if desc == "" {
				desc = "No description"
			}
			b.WriteString("\n")
			b.WriteString(styles.InfoPanelStyle.Width(inner).Render(desc))
			b.WriteString("\n")
		}

		if item.ControlsShown {
			b.WriteString("\n")
			b.WriteString(m.renderControls(item, inner))
		}
	}

	style := styles.InactiveCard
	if item.Visible {
		style = styles.ActiveCard
	}
	card := style.Width(max(width-2, 1)).Render(b.String())

	lines := strings.Split(card, "\n")
	if len(lines) > height {
		// Keep the bottom border
		lines = append(lines[:height-1], lines[len(lines)-1])
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func renderPlayState(item feed.ItemView) string {
	switch item.Phase {
	case feed.PhasePlaying:
		return styles.PlayingStyle.Render(styles.PlayingChar + " playing")
	case feed.PhasePaused:
		return styles.PausedStyle.Render(styles.PausedChar + " paused")
	default:
		return styles.DimStyle.Render(styles.LoadingChar + " starting")
	}
}

// renderControls renders the play/mute/like/info row and the progress bar
func (m Model) renderControls(item feed.ItemView, width int) string {
	st := item.State

	play := styles.PlayingChar
	if st.Playing {
		play = styles.PausedChar
	}
	sound := styles.SoundChar
	if st.Muted {
		sound = styles.MutedChar
	}
	like := styles.DimStyle.Render(styles.UnlikedChar)
	if st.Liked {
		like = styles.LikedStyle.Render(styles.LikedChar)
	}
	info := styles.DimStyle.Render(styles.InfoChar)
	if st.InfoOpen {
		info = styles.AccentStyle.Render(styles.InfoChar)
	}

	clock := styles.DimStyle.Render(fmt.Sprintf("%s / %s",
		domain.FormatClock(item.Position), domain.FormatClock(item.Duration)))
	buttons := strings.Join([]string{play, sound, like, info}, "  ")

	bar := m.Progress
	bar.Width = max(width-lipgloss.Width(buttons)-lipgloss.Width(clock)-4, 5)

	return buttons + "  " + bar.ViewAs(st.Progress/100) + "  " + clock
}

// renderFooter renders the status line and key hints
func (m Model) renderFooter() string {
	statusStyle := styles.DimStyle
	if m.StatusIsErr {
		statusStyle = styles.ErrorStyle
	}

	right := m.Help.ShortHelpView(m.Keys.ShortHelp())

	gap := m.Width - lipgloss.Width(m.StatusMsg) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - status wins
		return statusStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
	}
	return statusStyle.Render(m.StatusMsg) + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	content := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(m.Keys) + "\n\n" +
		styles.DimStyle.Render("mouse: wheel scrolls, click plays/pauses, hover shows controls") + "\n" +
		styles.DimStyle.Render("Press ? or esc to return")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
