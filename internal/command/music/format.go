package music

import (
	"fmt"
	"strings"
	"time"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/parsers"
)

const progressBarWidth = 12

// formatDuration renders m:ss, or h:mm:ss past the hour mark.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// progressBar draws the playback position marker used in now-playing embeds.
func progressBar(elapsed, total time.Duration, width int) string {
	if width < 2 {
		width = 2
	}
	pos := 0
	if total > 0 {
		pos = int(float64(width-1) * float64(elapsed) / float64(total))
		if pos < 0 {
			pos = 0
		}
		if pos > width-1 {
			pos = width - 1
		}
	}

	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i == pos {
			sb.WriteString("🔘")
		} else {
			sb.WriteString("▬")
		}
	}
	return sb.String()
}

func truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// orDash substitutes a placeholder for empty embed field values, which
// Discord rejects.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// trackLink renders a markdown link for a track, falling back to whatever
// metadata it has.
func trackLink(t *parsers.Track) string {
	title := truncate(t.DisplayTitle(), 60)
	if t.URL == "" {
		return title
	}
	return fmt.Sprintf("[%s](%s)", title, t.URL)
}
