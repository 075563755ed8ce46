package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ReelPink   = lipgloss.Color("#F43F5E")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Card borders
var (
	ActiveCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ReelPink).
			Padding(0, 2)

	InactiveCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateLight).
			Padding(0, 2)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ReelPink)

	TagStyle = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(ReelPink).
			Padding(0, 1)
)

// Playback indicators
const (
	PlayingChar = "▶"
	PausedChar  = "❚❚"
	LoadingChar = "…"
	LikedChar   = "♥"
	UnlikedChar = "♡"
	MutedChar   = "🔇"
	SoundChar   = "🔊"
	InfoChar    = "ⓘ"
	UpChar      = "▲"
	DownChar    = "▼"
)

var (
	LikedStyle   = lipgloss.NewStyle().Foreground(ReelPink)
	PlayingStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	PausedStyle  = lipgloss.NewStyle().Foreground(LightGray).Bold(true)
)

// Info panel shown under an item's title
var InfoPanelStyle = lipgloss.NewStyle().
	Foreground(LightGray).
	Background(SlateDark).
	Padding(0, 1)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ReelPink).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ReelPink)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Match highlight styles for search results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(ReelPink).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(ReelPink).
					Background(SlateLight).
					Bold(true)
)

// Truncate truncates a string to the given display width with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:1])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// HighlightMatches renders s with the runes at matched indexes emphasized
func HighlightMatches(s string, matched []int, selected bool) string {
	base := NormalItemStyle.UnsetPadding()
	hl := MatchHighlightStyle
	if selected {
		base = SelectedItemStyle.UnsetPadding()
		hl = MatchHighlightSelectedStyle
	}
	if len(matched) == 0 {
		return base.Render(s)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	// sahilm/fuzzy reports byte offsets
	for i, r := range s {
		if hit[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
