package store

import (
	"testing"
)

func TestKVStore_MemoryOnly(t *testing.T) {
	s, err := NewKVStore("", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok := s.Get("lastSeenVideoIndex"); ok {
		t.Fatal("expected miss on empty store")
	}
	if err := s.Set("lastSeenVideoIndex", "3"); err != nil {
		t.Fatal(err)
	}
	v, ok := s.Get("lastSeenVideoIndex")
	if !ok || v != "3" {
		t.Fatalf("got %q ok=%v, want \"3\"", v, ok)
	}
}

func TestKVStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewKVStore(dir, "catalog.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("like_video_2", "true"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewKVStore(dir, "catalog.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	v, ok := reopened.Get("like_video_2")
	if !ok || v != "true" {
		t.Fatalf("got %q ok=%v after reopen", v, ok)
	}
}

func TestKVStore_NamespacesAreIsolated(t *testing.T) {
	dir := t.TempDir()

	a, err := NewKVStore(dir, "a.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := NewKVStore(dir, "b.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if err := a.Set("lastSeenVideoIndex", "4"); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Get("lastSeenVideoIndex"); ok {
		t.Fatal("namespace b should not see keys from a")
	}
}

func TestKVStore_Reset(t *testing.T) {
	s, err := NewKVStore(t.TempDir(), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Set("like_video_0", "true")
	s.Set("lastSeenVideoIndex", "1")
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"like_video_0", "lastSeenVideoIndex"} {
		if _, ok := s.Get(k); ok {
			t.Fatalf("key %s survived reset", k)
		}
	}
}

func TestHashNamespace_Normalizes(t *testing.T) {
	if hashNamespace("/Clips/") != hashNamespace("/clips") {
		t.Fatal("expected case and trailing slash to be ignored")
	}
	if len(hashNamespace("x")) != 12 {
		t.Fatalf("unexpected hash length %d", len(hashNamespace("x")))
	}
}

func TestOpenOrMemory_FallsBackWhenLocked(t *testing.T) {
	dir := t.TempDir()

	held, err := NewKVStore(dir, "catalog.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer held.Close()
	if err := held.Set("lastSeenVideoIndex", "4"); err != nil {
		t.Fatal(err)
	}

	s, err := OpenOrMemory(dir, "catalog.yaml", nil)
	if err == nil {
		t.Fatal("expected open error while another store holds the lock")
	}
	if s == nil {
		t.Fatal("expected a fallback store")
	}
	defer s.Close()

	if _, ok := s.Get("lastSeenVideoIndex"); ok {
		t.Fatal("fallback store should start empty")
	}
	if err := s.Set("like_video_1", "true"); err != nil {
		t.Fatal(err)
	}
	if v, ok := s.Get("like_video_1"); !ok || v != "true" {
		t.Fatalf("got %q ok=%v, want \"true\"", v, ok)
	}
	if v, _ := held.Get("like_video_1"); v != "" {
		t.Fatal("fallback write reached the locked database")
	}
}

func TestOpenOrMemory_OpensDatabase(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenOrMemory(dir, "catalog.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("lastSeenVideoIndex", "2"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	reopened, err := NewKVStore(dir, "catalog.yaml", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if v, ok := reopened.Get("lastSeenVideoIndex"); !ok || v != "2" {
		t.Fatalf("got %q ok=%v, want \"2\"", v, ok)
	}
}
