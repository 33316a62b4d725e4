package ytdlp

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

func ytdlpLink(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	info, err := probe(track)
	if err != nil {
		return nil, nil, err
	}

	link := strings.TrimSpace(info.URL)
	if link == "" && len(info.Formats) > 0 {
		link = strings.TrimSpace(info.Formats[0].URL)
	}
	if link == "" {
		return nil, nil, errors.New("empty media URL returned from yt-dlp")
	}

	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", link,
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
