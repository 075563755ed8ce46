// Package catalog loads the ordered clip list the feed plays.
//
// A clip's id defaults to its position in the file. Like flags are stored
// per id (like_video_<id>), so giving a clip an explicit id keeps its like
// across reordering, and changing or adding ids moves existing likes.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoCatalog []byte

// file is the on-disk catalog layout
type file struct {
	Clips []entry `yaml:"clips"`
}

type entry struct {
	ID          *int     `yaml:"id"` // stable identity; keys the stored like flag
	Src         string   `yaml:"src"`
	Title       string   `yaml:"title"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	Duration    string   `yaml:"duration"` // e.g. "45s", "1m10s"
}

// Load reads a catalog file. An empty path loads the built-in demo catalog.
func Load(path string) ([]domain.Clip, error) {
	if path == "" {
		return Parse(demoCatalog, "")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	clips, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return clips, nil
}

// Parse decodes catalog YAML. Relative file sources are resolved against baseDir.
func Parse(data []byte, baseDir string) ([]domain.Clip, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Clips) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	clips := make([]domain.Clip, 0, len(f.Clips))
	seen := make(map[int]int, len(f.Clips))
	for i, e := range f.Clips {
		clip, err := e.toClip(i, baseDir)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i, err)
		}
		if prev, dup := seen[clip.ID]; dup {
			return nil, fmt.Errorf("clip %d: id %d already used by clip %d", i, clip.ID, prev)
		}
		seen[clip.ID] = i
		clips = append(clips, clip)
	}
	return clips, nil
}

func (e entry) toClip(index int, baseDir string) (domain.Clip, error) {
	src := strings.TrimSpace(e.Src)
	if src == "" {
		return domain.Clip{}, fmt.Errorf("missing src")
	}
	if baseDir != "" && !strings.Contains(src, "://") && !filepath.IsAbs(src) {
		src = filepath.Join(baseDir, src)
	}

	id := index
	if e.ID != nil {
		if *e.ID < 0 {
			return domain.Clip{}, fmt.Errorf("negative id %d", *e.ID)
		}
		id = *e.ID
	}

	var d time.Duration
	if e.Duration != "" {
		parsed, err := time.ParseDuration(strings.TrimSpace(e.Duration))
		if err != nil {
			return domain.Clip{}, fmt.Errorf("bad duration %q: %w", e.Duration, err)
		}
		d = parsed
	}

	title := strings.TrimSpace(e.Title)
	if title == "" {
		base := filepath.Base(src)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return domain.Clip{
		ID:          id,
		Source:      src,
		Title:       title,
		Tags:        normalizeTags(e.Tags),
		Description: strings.TrimSpace(e.Description),
		Duration:    d,
	}, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
