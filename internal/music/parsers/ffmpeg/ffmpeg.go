// Package ffmpeg streams a direct media URL with no extractor in front.
// Useful for raw audio links; last in the parser preference order.
package ffmpeg

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

type Streamer struct{}

func (s *Streamer) GetLinkStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", track.URL,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", parsers.SampleRate),
		"-ac", fmt.Sprintf("%d", parsers.Channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := ffmpeg.Start(); err != nil {
		return nil, nil, fmt.Errorf("command start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
		go ffmpeg.Wait() // reap
	}

	return reader, cleanup, nil
}

func (s *Streamer) GetPipeStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return s.GetLinkStream(track, seekSec)
}

func (s *Streamer) SupportsPipe() bool { return false }
