package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

type memStore struct {
	data   map[string]string
	writes int
	failOn map[string]bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string), failOn: make(map[string]bool)}
}

func (s *memStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *memStore) Set(key, value string) error {
	if s.failOn[key] {
		return errors.New("disk full")
	}
	s.writes++
	s.data[key] = value
	return nil
}

type fakeHandle struct {
	playErr  error
	plays    int
	pauses   int
	playing  bool
	position time.Duration
	duration time.Duration
	muted    bool
}

func (h *fakeHandle) Play(context.Context) error {
	h.plays++
	if h.playErr != nil {
		return h.playErr
	}
	h.playing = true
	return nil
}

func (h *fakeHandle) Pause() {
	h.pauses++
	h.playing = false
}

func (h *fakeHandle) Position() time.Duration { return h.position }
func (h *fakeHandle) Seek(pos time.Duration)  { h.position = pos }
func (h *fakeHandle) Duration() time.Duration { return h.duration }
func (h *fakeHandle) Muted() bool             { return h.muted }
func (h *fakeHandle) SetMuted(muted bool)     { h.muted = muted }

type fakeOpener struct {
	handles map[int]*fakeHandle
}

func (o *fakeOpener) Open(clip domain.Clip) domain.MediaHandle {
	if o.handles == nil {
		o.handles = make(map[int]*fakeHandle)
	}
	h := &fakeHandle{duration: 10 * time.Second}
	o.handles[clip.ID] = h
	return h
}

func testClips(n int) []domain.Clip {
	clips := make([]domain.Clip, n)
	for i := range clips {
		clips[i] = domain.Clip{
			ID:     i,
			Source: fmt.Sprintf("file:///clips/%d.mp4", i),
			Title:  fmt.Sprintf("Clip %d", i),
			Tags:   []string{"demo"},
		}
	}
	return clips
}
