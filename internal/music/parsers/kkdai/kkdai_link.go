package kkdai

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/ytclient"
)

// kkdaiLink resolves a direct media URL and lets ffmpeg pull it over HTTP.
func kkdaiLink(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	videoID, err := extractYouTubeID(track.URL)
	if err != nil {
		return nil, nil, err
	}

	client := ytclient.New()
	video, err := client.GetVideo(videoID)
	if err != nil {
		return nil, nil, fmt.Errorf("[kkdai-link] youtube client error: %w", err)
	}

	if track.Title == "" {
		track.Title = video.Title
	}
	track.Duration = video.Duration

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, nil, errors.New("[kkdai-link] no audio formats found for video")
	}

	link, err := client.GetStreamURL(video, &formats[0])
	if err != nil {
		return nil, nil, fmt.Errorf("[kkdai-link] get stream URL error: %w", err)
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
