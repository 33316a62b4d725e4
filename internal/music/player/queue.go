package player

import (
	"math/rand"
	"slices"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

// Queue is a FIFO of pending tracks. Not safe for concurrent use; the
// owning Player serializes access.
type Queue struct {
	items []*parsers.Track
}

// Push appends tracks to the tail.
func (q *Queue) Push(tracks ...*parsers.Track) {
	q.items = append(q.items, tracks...)
}

// PushFront puts a track back at the head (repeat-one).
func (q *Queue) PushFront(t *parsers.Track) {
	q.items = append([]*parsers.Track{t}, q.items...)
}

// Pop removes and returns the head track.
func (q *Queue) Pop() (*parsers.Track, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

// Remove deletes the track at a 1-based position.
func (q *Queue) Remove(pos int) (*parsers.Track, bool) {
	if pos < 1 || pos > len(q.items) {
		return nil, false
	}
	t := q.items[pos-1]
	q.items = append(q.items[:pos-1], q.items[pos:]...)
	return t, true
}

// Clear empties the queue and returns how many tracks were dropped.
func (q *Queue) Clear() int {
	n := len(q.items)
	q.items = nil
	return n
}

// Shuffle permutes the pending tracks. Returns the number of tracks
// shuffled, or 0 when there are too few to matter.
func (q *Queue) Shuffle() int {
	if len(q.items) < 2 {
		return 0
	}
	rand.Shuffle(len(q.items), func(i, j int) {
		q.items[i], q.items[j] = q.items[j], q.items[i]
	})
	return len(q.items)
}

// Len returns the number of pending tracks.
func (q *Queue) Len() int { return len(q.items) }

// Items returns a copy of the pending tracks in order.
func (q *Queue) Items() []*parsers.Track {
	return slices.Clone(q.items)
}
