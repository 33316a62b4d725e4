package ytdlp

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

func ytdlpPipe(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	if _, err := probe(track); err != nil {
		return nil, nil, err
	}

	ytdlp := exec.Command("yt-dlp", "-o", "-", "-f", "bestaudio", track.URL)
	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", parsers.SampleRate),
		"-ac", fmt.Sprintf("%d", parsers.Channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	download, err := ytdlp.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("yt-dlp stdout pipe error: %w", err)
	}
	ffmpeg.Stdin = download

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}

	if err := ytdlp.Start(); err != nil {
		return nil, nil, fmt.Errorf("yt-dlp start error: %w", err)
	}
	if err := ffmpeg.Start(); err != nil {
		ytdlp.Process.Kill()
		go ytdlp.Wait()
		return nil, nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
		ytdlp.Process.Kill()
		go ffmpeg.Wait() // reap
		go ytdlp.Wait()
	}

	return reader, cleanup, nil
}
