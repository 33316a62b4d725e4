package kkdai

import (
	"errors"
	"net/url"
	"strings"
)

// extractYouTubeID pulls the 11-character video id out of a watch URL.
func extractYouTubeID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if u.Hostname() == "youtu.be" {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
		return "", errors.New("no video id in short URL")
	}

	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}

	return "", errors.New("no video id in URL: " + raw)
}
