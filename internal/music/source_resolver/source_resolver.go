// Package source_resolver routes user input to the source able to play it.
package source_resolver

import (
	"errors"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/sources"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/sources/youtube"
)

// SourceResolver holds the registered sources. YouTube is the only source
// today; the registry keeps the door open for more.
type SourceResolver struct {
	Sources map[string]sources.Source
}

// New builds the resolver with the default source set.
func New(playlistMax int) *SourceResolver {
	yt := youtube.New(playlistMax)

	return &SourceResolver{
		Sources: map[string]sources.Source{
			yt.SourceName(): yt,
		},
	}
}

// Resolve turns a URL or search term into playable track info. Bare search
// terms go to YouTube; URLs go to whichever source claims them.
func (r *SourceResolver) Resolve(input string) ([]sources.TrackInfo, error) {
	if input == "" {
		return nil, errors.New("empty input")
	}

	yt, ok := r.Sources[sources.SourceYouTube]
	if !ok {
		return nil, errors.New("youtube source not available")
	}

	if !isURL(input) {
		return yt.Resolve(input)
	}

	for _, s := range r.Sources {
		if s.Match(input) {
			return s.Resolve(input)
		}
	}

	return nil, errors.New("no source can handle this URL")
}
