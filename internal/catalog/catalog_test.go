package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const sampleCatalog = `clips:
  - src: a.mp4
    title: "  First  "
    tags: ["#news", " world ", ""]
    duration: 45s
    description: Top story.
  - id: 7
    src: https://cdn.example.com/b.mp4
  - src: /abs/c.webm
`

func TestParse_OK(t *testing.T) {
	clips, err := Parse([]byte(sampleCatalog), "/data")
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 3 {
		t.Fatalf("want 3 clips, got %d", len(clips))
	}

	first := clips[0]
	if first.ID != 0 || first.Title != "First" {
		t.Fatalf("bad first clip: %+v", first)
	}
	if first.Source != filepath.Join("/data", "a.mp4") {
		t.Fatalf("relative source not resolved: %q", first.Source)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "news" || first.Tags[1] != "world" {
		t.Fatalf("bad tags: %q", first.Tags)
	}
	if first.Duration != 45*time.Second {
		t.Fatalf("bad duration: %v", first.Duration)
	}

	if clips[1].ID != 7 || clips[1].Source != "https://cdn.example.com/b.mp4" {
		t.Fatalf("bad second clip: %+v", clips[1])
	}
	if clips[1].Title != "b" {
		t.Fatalf("title should default to the file name, got %q", clips[1].Title)
	}
	if clips[2].Source != "/abs/c.webm" {
		t.Fatalf("absolute source rewritten: %q", clips[2].Source)
	}
}

func TestParse_LikeKeysFollowIDs(t *testing.T) {
	clips, err := Parse([]byte(sampleCatalog), "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"like_video_0", "like_video_7", "like_video_2"}
	for i, clip := range clips {
		if got := domain.LikeKey(clip.ID); got != want[i] {
			t.Errorf("clip %d: like key = %q, want %q", i, got, want[i])
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "clips: []"},
		{"missing src", "clips:\n  - title: x\n"},
		{"bad duration", "clips:\n  - src: a.mp4\n    duration: soon\n"},
		{"negative id", "clips:\n  - id: -1\n    src: a.mp4\n"},
		{"duplicate id", "clips:\n  - id: 1\n    src: a.mp4\n  - src: b.mp4\n"},
		{"not yaml", "clips: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml), ""); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := Parse([]byte("clips: []"), ""); !errors.Is(err, domain.ErrEmptyCatalog) {
		t.Fatalf("want ErrEmptyCatalog, got %v", err)
	}
}

func TestLoad_FileAndDemo(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "feed.yaml")
	if err := os.WriteFile(p, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	clips, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if clips[0].Source != filepath.Join(dir, "a.mp4") {
		t.Fatalf("source = %q", clips[0].Source)
	}

	demo, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(demo) == 0 {
		t.Fatal("demo catalog is empty")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
