// Package kkdai streams YouTube audio using the kkdai/youtube extractor,
// with ffmpeg decoding to raw PCM.
package kkdai

import (
	"io"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

type Streamer struct{}

func (s *Streamer) GetLinkStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return kkdaiLink(track, seekSec)
}

func (s *Streamer) GetPipeStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return kkdaiPipe(track, seekSec)
}

func (s *Streamer) SupportsPipe() bool { return true }
