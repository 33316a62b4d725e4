package sources

import "time"

const SourceYouTube = "youtube"

// TrackInfo is the immutable result of resolving a user query.
type TrackInfo struct {
	URL              string
	Title            string
	Duration         time.Duration
	SourceName       string
	AvailableParsers []string
}

// Source resolves user input into playable tracks.
type Source interface {
	// Match checks if this source can handle the given input.
	Match(input string) bool

	// Resolve turns an input into one or more playable tracks.
	Resolve(input string) ([]TrackInfo, error)

	// SourceName returns the string identifier ("youtube", etc).
	SourceName() string

	// AvailableParsers returns the parsers supported by this source,
	// in preference order.
	AvailableParsers() []string
}
