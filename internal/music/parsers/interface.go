package parsers

import "io"

// PCM stream parameters shared by every streamer and the Discord sink.
const (
	Channels   = 2
	SampleRate = 48000
	FrameSize  = 960 // 20ms at 48kHz
)

// Streamer turns a Track into raw s16le PCM. Link mode resolves a direct
// media URL and feeds it to ffmpeg; pipe mode pipes the download through
// ffmpeg's stdin instead.
type Streamer interface {
	GetLinkStream(track *Track, seekSec float64) (io.ReadCloser, func(), error)
	GetPipeStream(track *Track, seekSec float64) (io.ReadCloser, func(), error)
	SupportsPipe() bool
}
