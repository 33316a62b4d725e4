package player

import (
	"fmt"
	"testing"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/sources"
)

func makeTracks(n int) []*parsers.Track {
	tracks := make([]*parsers.Track, n)
	for i := range tracks {
		tracks[i] = parsers.NewTrack(sources.TrackInfo{
			URL:   fmt.Sprintf("https://youtu.be/video%02d", i),
			Title: fmt.Sprintf("track-%02d", i),
		}, "tester")
	}
	return tracks
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := &Queue{}
	tracks := makeTracks(5)
	q.Push(tracks...)

	for i, expected := range tracks {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() #%d failed, queue empty", i)
		}
		if got != expected {
			t.Errorf("Pop() #%d = %s, expected %s", i, got.Title, expected.Title)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on drained queue succeeded")
	}
}

func TestQueue_PushFront(t *testing.T) {
	q := &Queue{}
	tracks := makeTracks(3)
	q.Push(tracks[0], tracks[1])
	q.PushFront(tracks[2])

	got, _ := q.Pop()
	if got != tracks[2] {
		t.Errorf("head = %s, expected the front-pushed track", got.Title)
	}
}

func TestQueue_Remove(t *testing.T) {
	q := &Queue{}
	tracks := makeTracks(3)
	q.Push(tracks...)

	removed, ok := q.Remove(2)
	if !ok {
		t.Fatal("Remove(2) failed")
	}
	if removed != tracks[1] {
		t.Errorf("Remove(2) = %s, expected %s", removed.Title, tracks[1].Title)
	}

	// order of the rest is preserved
	items := q.Items()
	if len(items) != 2 || items[0] != tracks[0] || items[1] != tracks[2] {
		t.Errorf("remaining queue out of order: %v", items)
	}

	if _, ok := q.Remove(0); ok {
		t.Error("Remove(0) succeeded, positions are 1-based")
	}
	if _, ok := q.Remove(3); ok {
		t.Error("Remove past the end succeeded")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := &Queue{}
	q.Push(makeTracks(4)...)

	if n := q.Clear(); n != 4 {
		t.Errorf("Clear() = %d, expected 4", n)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after clear = %d", q.Len())
	}
	if n := q.Clear(); n != 0 {
		t.Errorf("Clear() on empty queue = %d, expected 0", n)
	}
}

func TestQueue_ShufflePreservesTracks(t *testing.T) {
	q := &Queue{}
	tracks := makeTracks(10)
	q.Push(tracks...)

	if n := q.Shuffle(); n != 10 {
		t.Errorf("Shuffle() = %d, expected 10", n)
	}

	seen := make(map[string]bool)
	for _, item := range q.Items() {
		seen[item.Title] = true
	}
	for _, track := range tracks {
		if !seen[track.Title] {
			t.Errorf("track %s lost during shuffle", track.Title)
		}
	}
}

func TestQueue_ShuffleTooFew(t *testing.T) {
	q := &Queue{}
	q.Push(makeTracks(1)...)

	if n := q.Shuffle(); n != 0 {
		t.Errorf("Shuffle() with one track = %d, expected 0", n)
	}
}
