package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var youtubeURLPattern = regexp.MustCompile(`(?:https?:\/\/)?(?:www\.|music\.)?(youtube\.com|youtu\.be)\/\S+`)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isYouTubeURL(input string) bool {
	return youtubeURLPattern.MatchString(input)
}

func isYouTubeVideoURL(s string) bool {
	return strings.Contains(s, "youtube.com/watch?v=") ||
		strings.Contains(s, "music.youtube.com/watch?v=") ||
		strings.Contains(s, "youtu.be/")
}

func isYouTubePlaylistURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Query().Get("list") != ""
}

// CleanVideoURL strips tracking and timestamp parameters, keeping only the
// video id.
func CleanVideoURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	switch host := u.Hostname(); host {
	case "youtu.be":
		vid := strings.Trim(u.Path, "/")
		if vid == "" {
			return raw
		}
		return fmt.Sprintf("https://youtu.be/%s", vid)

	case "www.youtube.com", "youtube.com", "music.youtube.com":
		if u.Path == "/watch" {
			if vid := u.Query().Get("v"); vid != "" {
				return fmt.Sprintf("https://%s/watch?v=%s", host, vid)
			}
		}
		return raw

	default:
		return raw
	}
}
