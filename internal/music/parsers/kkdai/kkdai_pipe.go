package kkdai

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/ytclient"
)

// kkdaiPipe downloads the audio through the youtube client and pipes it into
// ffmpeg's stdin. Slower to start than link mode but immune to expiring
// media URLs.
func kkdaiPipe(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	videoID, err := extractYouTubeID(track.URL)
	if err != nil {
		return nil, nil, err
	}

	client := ytclient.New()
	video, err := client.GetVideo(videoID)
	if err != nil {
		return nil, nil, fmt.Errorf("[kkdai-pipe] youtube client error: %w", err)
	}

	if track.Title == "" {
		track.Title = video.Title
	}
	track.Duration = video.Duration

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, nil, errors.New("[kkdai-pipe] no audio formats found for video")
	}

	download, _, err := client.GetStream(video, &formats[0])
	if err != nil {
		return nil, nil, fmt.Errorf("[kkdai-pipe] get stream error: %w", err)
	}

	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", parsers.SampleRate),
		"-ac", fmt.Sprintf("%d", parsers.Channels),
		"-loglevel", "warning",
		"pipe:1",
	)
	ffmpeg.Stdin = download

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		download.Close()
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}

	if err := ffmpeg.Start(); err != nil {
		download.Close()
		return nil, nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
		go ffmpeg.Wait() // reap
		download.Close()
	}

	return reader, cleanup, nil
}
