package domain

import (
	"fmt"
	"strings"
	"time"
)

// Clip is one playable entry in the feed. Clips are immutable once loaded.
type Clip struct {
	ID          int           // Stable identity, also the persistence key suffix
	Source      string        // Media URI (file path, http(s) URL)
	Title       string        // Display title
	Tags        []string      // Ordered hashtags without the leading '#'
	Description string        // Long text shown in the info panel
	Duration    time.Duration // Optional, 0 if unknown
}

// HashTags renders the tags as "#a #b #c"
func (c Clip) HashTags() string {
	if len(c.Tags) == 0 {
		return ""
	}
	parts := make([]string, len(c.Tags))
	for i, t := range c.Tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}

// FormattedDuration returns the duration as M:SS, or "" when unknown
func (c Clip) FormattedDuration() string {
	if c.Duration <= 0 {
		return ""
	}
	return FormatClock(c.Duration)
}

// FormatClock formats a duration as M:SS, or H:MM:SS past the hour
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
