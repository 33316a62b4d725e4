// Package ytdlp streams audio by shelling out to yt-dlp, the fallback when
// the native extractor breaks against YouTube changes.
package ytdlp

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

type Streamer struct{}

func (s *Streamer) GetLinkStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return ytdlpLink(track, seekSec)
}

func (s *Streamer) GetPipeStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return ytdlpPipe(track, seekSec)
}

func (s *Streamer) SupportsPipe() bool { return true }

type mediaInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	URL      string  `json:"url"`
	Formats  []struct {
		URL       string `json:"url"`
		Fragments []struct {
			Duration float64 `json:"duration"`
		} `json:"fragments,omitempty"`
	} `json:"formats"`
}

// probe runs yt-dlp -j and fills in track metadata.
func probe(track *parsers.Track) (*mediaInfo, error) {
	out, err := exec.Command("yt-dlp", "-j", "-f", "bestaudio", track.URL).Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp probe error: %w", err)
	}

	var info mediaInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp json unmarshal error: %w", err)
	}

	// Some live/DASH entries only report duration on the first fragment.
	if info.Duration == 0 && len(info.Formats) > 0 && len(info.Formats[0].Fragments) > 0 {
		info.Duration = info.Formats[0].Fragments[0].Duration
	}

	if track.Title == "" {
		track.Title = info.Title
	}
	track.Duration = time.Duration(info.Duration * float64(time.Second))

	return &info, nil
}
