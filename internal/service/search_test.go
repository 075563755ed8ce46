package service

import (
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

var searchClips = []domain.Clip{
	{ID: 0, Title: "Morning News", Tags: []string{"news", "world"}},
	{ID: 1, Title: "Cat compilation", Tags: []string{"pets", "funny"}},
	{ID: 2, Title: "Weather update", Tags: []string{"news"}},
	{ID: 3, Title: "Street food tour", Tags: []string{"travel", "food"}},
}

func TestSearch_TitleMatchesFirst(t *testing.T) {
	s := NewSearchService(searchClips, nil)

	results := s.Search("news")
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d: %+v", len(results), results)
	}
	if results[0].Index != 0 || len(results[0].MatchedIndexes) == 0 {
		t.Fatalf("title match should come first: %+v", results[0])
	}
	if results[1].Index != 2 || results[1].MatchedTag != "news" {
		t.Fatalf("tag match should follow: %+v", results[1])
	}
}

func TestSearch_TagOnly(t *testing.T) {
	s := NewSearchService(searchClips, nil)

	results := s.Search("#food")
	if len(results) != 1 || results[0].Index != 3 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].MatchedIndexes != nil {
		t.Fatal("tag-only search should not report title positions")
	}
}

func TestSearch_FuzzyTitle(t *testing.T) {
	s := NewSearchService(searchClips, nil)

	results := s.Search("ctcmp")
	if len(results) == 0 || results[0].Index != 1 {
		t.Fatalf("expected the cat compilation, got %+v", results)
	}
}

func TestSearch_Empty(t *testing.T) {
	s := NewSearchService(searchClips, nil)
	for _, q := range []string{"", "   ", "#"} {
		if r := s.Search(q); r != nil {
			t.Fatalf("Search(%q) = %+v, want nil", q, r)
		}
	}
	if r := s.Search("zzzzqqq"); len(r) != 0 {
		t.Fatalf("expected no matches, got %+v", r)
	}
}
