package service

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/reel/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
)

// SearchResult is a clip matched by a jump query
type SearchResult struct {
	Index          int // position in the feed
	Clip           domain.Clip
	MatchedIndexes []int  // title character positions that matched (title matches only)
	MatchedTag     string // tag that matched (tag matches only)
}

// ClipIndex implements sahilm/fuzzy.Source over clip titles
type ClipIndex struct {
	clips       []domain.Clip
	lowerTitles []string
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *ClipIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of clips (implements fuzzy.Source)
func (idx *ClipIndex) Len() int { return len(idx.clips) }

// SearchService finds clips by title or tag for jump navigation
type SearchService struct {
	index  *ClipIndex
	logger *slog.Logger
}

// NewSearchService indexes clips in feed order
func NewSearchService(clips []domain.Clip, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &ClipIndex{
		clips:       clips,
		lowerTitles: make([]string, len(clips)),
	}
	for i, c := range clips {
		idx.lowerTitles[i] = strings.ToLower(c.Title)
	}
	return &SearchService{index: idx, logger: logger}
}

// Search returns title matches (best first) followed by tag-only matches.
// A query starting with '#' only searches tags.
func (s *SearchService) Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	tagsOnly := strings.HasPrefix(query, "#")
	query = strings.ToLower(strings.TrimPrefix(query, "#"))
	if query == "" {
		return nil
	}

	var results []SearchResult
	seen := make(map[int]bool)

	if !tagsOnly {
		for _, m := range sfuzzy.FindFrom(query, s.index) {
			seen[m.Index] = true
			results = append(results, SearchResult{
				Index:          m.Index,
				Clip:           s.index.clips[m.Index],
				MatchedIndexes: m.MatchedIndexes,
			})
		}
	}

	results = append(results, s.searchTags(query, seen)...)
	s.logger.Debug("jump search", "query", query, "results", len(results))
	return results
}

// searchTags ranks clips by their closest matching tag
func (s *SearchService) searchTags(query string, seen map[int]bool) []SearchResult {
	type rankedTag struct {
		result   SearchResult
		distance int
	}

	var ranked []rankedTag
	for i, c := range s.index.clips {
		if seen[i] || len(c.Tags) == 0 {
			continue
		}
		ranks := fuzzy.RankFindNormalizedFold(query, c.Tags)
		if len(ranks) == 0 {
			continue
		}
		sort.Sort(ranks)
		ranked = append(ranked, rankedTag{
			result:   SearchResult{Index: i, Clip: c, MatchedTag: ranks[0].Target},
			distance: ranks[0].Distance,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].distance < ranked[b].distance
	})

	out := make([]SearchResult, len(ranked))
	for i, r := range ranked {
		out[i] = r.result
	}
	return out
}
