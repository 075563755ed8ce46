package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tui/styles"
)

const maxResults = 8

// Omnibar is the jump-to-clip search modal
type Omnibar struct {
	input     textinput.Model
	results   []service.SearchResult
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string // Track query changes for real-time filtering
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Title or #tag..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{
		input: ti,
	}
}

// Show makes the omnibar visible and focuses the input
func (o *Omnibar) Show() tea.Cmd {
	o.visible = true
	o.input.SetValue("")
	o.results = nil
	o.cursor = 0
	o.prevQuery = ""
	return o.input.Focus()
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the omnibar is visible
func (o Omnibar) IsVisible() bool {
	return o.visible
}

// SetResults replaces the result list and resets the cursor
func (o *Omnibar) SetResults(results []service.SearchResult) {
	o.results = results
	o.cursor = 0
}

// SetSize updates the component dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = max(width/2, 20)
}

// Query returns the current search query
func (o Omnibar) Query() string {
	return o.input.Value()
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (o *Omnibar) QueryChanged() bool {
	current := o.input.Value()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// Selected returns the highlighted result
func (o Omnibar) Selected() (service.SearchResult, bool) {
	if o.cursor < 0 || o.cursor >= len(o.results) {
		return service.SearchResult{}, false
	}
	return o.results[o.cursor], true
}

// Update handles messages. The bool reports that a result was chosen.
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			o.Hide()
			return o, nil, false

		case "enter":
			return o, nil, len(o.results) > 0

		case "down", "ctrl+n", "tab":
			if o.cursor < min(len(o.results), maxResults)-1 {
				o.cursor++
			}
			return o, nil, false

		case "up", "ctrl+p", "shift+tab":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

// View renders the component
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	modalWidth := min(max(o.width*2/3, 40), 80)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Jump to clip"))
	b.WriteString("\n")
	b.WriteString(o.input.View())
	b.WriteString("\n\n")
	o.renderResults(&b, modalWidth)

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		o.width,
		o.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (o Omnibar) renderResults(b *strings.Builder, modalWidth int) {
	if len(o.results) == 0 {
		if o.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches"))
		}
		return
	}

	displayCount := min(len(o.results), maxResults)
	for i := 0; i < displayCount; i++ {
		result := o.results[i]
		selected := i == o.cursor

		var line strings.Builder
		line.WriteString(styles.DimStyle.Render(fmt.Sprintf("%3d ", result.Index+1)))

		title := styles.Truncate(result.Clip.Title, modalWidth-20)
		if len(result.MatchedIndexes) > 0 && title == result.Clip.Title {
			line.WriteString(styles.HighlightMatches(title, result.MatchedIndexes, selected))
		} else {
			style := styles.NormalItemStyle.UnsetPadding()
			if selected {
				style = styles.SelectedItemStyle.UnsetPadding()
			}
			line.WriteString(style.Render(title))
		}
		if result.MatchedTag != "" {
			line.WriteString(" ")
			line.WriteString(styles.TagStyle.Render("#" + result.MatchedTag))
		}

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(o.results) > maxResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-maxResults)))
	}
}
