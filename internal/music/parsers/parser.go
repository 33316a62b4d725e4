package parsers

import (
	"time"

	"github.com/google/uuid"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/sources"
)

// Track is a playable audio reference resolved from a user query. The
// user-facing fields (URL, Title, Requester) are set once at creation;
// Duration and CurrentParser may be refined when a stream is opened.
type Track struct {
	ID            uuid.UUID
	URL           string
	Title         string
	Artist        string
	Requester     string
	Duration      time.Duration
	CurrentParser string
	SourceInfo    sources.TrackInfo
}

// NewTrack builds a Track from resolved source info.
func NewTrack(info sources.TrackInfo, requester string) *Track {
	parser := ""
	if len(info.AvailableParsers) > 0 {
		parser = info.AvailableParsers[0]
	}
	return &Track{
		ID:            uuid.New(),
		URL:           info.URL,
		Title:         info.Title,
		Requester:     requester,
		Duration:      info.Duration,
		CurrentParser: parser,
		SourceInfo:    info,
	}
}

// DisplayTitle returns the title, falling back to the URL for tracks whose
// metadata could not be fetched at resolve time.
func (t *Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.URL
}
