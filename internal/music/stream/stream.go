package stream

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers/ffmpeg"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers/kkdai"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers/ytdlp"
)

// Registry maps parser names to streamer implementations.
var Registry = map[string]parsers.Streamer{
	"kkdai-link":  &kkdai.Streamer{},
	"kkdai-pipe":  &kkdai.Streamer{},
	"ytdlp-link":  &ytdlp.Streamer{},
	"ytdlp-pipe":  &ytdlp.Streamer{},
	"ffmpeg-link": &ffmpeg.Streamer{},
}

func isPipeMode(parser string) bool {
	return strings.HasSuffix(parser, "-pipe")
}

// TrackStream is an open PCM stream bound to its track.
type TrackStream struct {
	io.ReadCloser
	track  *parsers.Track
	parser string
}

func (s *TrackStream) Track() *parsers.Track { return s.track }
func (s *TrackStream) Parser() string        { return s.parser }

// OpenStream opens a PCM stream for the track with one specific parser.
func OpenStream(track *parsers.Track, parser string, seekSec float64) (*TrackStream, func(), error) {
	streamer, ok := Registry[parser]
	if !ok {
		return nil, nil, fmt.Errorf("streamer not found for parser: %v", parser)
	}

	var (
		r       io.ReadCloser
		cleanup func()
		err     error
	)
	if isPipeMode(parser) && streamer.SupportsPipe() {
		r, cleanup, err = streamer.GetPipeStream(track, seekSec)
	} else {
		r, cleanup, err = streamer.GetLinkStream(track, seekSec)
	}
	if err != nil {
		return nil, nil, err
	}

	return &TrackStream{ReadCloser: r, track: track, parser: parser}, cleanup, nil
}

// AutoOpenStream tries the track's parsers in preference order and returns
// the first one that opens.
func AutoOpenStream(track *parsers.Track) (*TrackStream, func(), error) {
	var errs []string

	for _, parser := range track.SourceInfo.AvailableParsers {
		s, cleanup, err := OpenStream(track, parser, 0)
		if err == nil {
			track.CurrentParser = parser
			return s, cleanup, nil
		}

		errs = append(errs, fmt.Sprintf("%s: %v", parser, err))
		log.Warn().
			Str("component", "stream").
			Str("parser", parser).
			Str("track", track.DisplayTitle()).
			Err(err).
			Msg("parser failed, trying next")
	}

	return nil, nil, fmt.Errorf("all parsers failed for track %s: %s",
		track.DisplayTitle(), strings.Join(errs, "; "))
}
