package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/dohun0310/Discord-Music-Bot/pkg/retrylimit"
)

var (
	videoPattern    = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]{11})[^"]*`)
	watchURLPattern = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]{11})`)

	// ErrNoVideoMatch means a title search returned no results.
	ErrNoVideoMatch = errors.New("no video found for the given title")
	// ErrEmptyPlaylist means a playlist page contained no watchable videos.
	ErrEmptyPlaylist = errors.New("no video URLs found in the playlist")
)

// statusError carries the HTTP status so retrylimit can tell throttling from
// hard failures.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("youtube returned status %d for %s", e.code, e.url)
}
func (e *statusError) StatusCode() int { return e.code }

// Resolver finds videos by scraping YouTube's public result pages. All
// requests go through an adaptive rate limiter.
type Resolver struct {
	BaseURL string
	Client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

// NewResolver builds a Resolver with the given HTTP client.
func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{
		BaseURL: "https://www.youtube.com",
		Client:  client,
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

// SearchFirstVideoURL returns the watch URL of the first search result for
// the query.
func (r *Resolver) SearchFirstVideoURL(ctx context.Context, query string) (string, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", r.BaseURL, url.QueryEscape(query))

	body, err := r.fetch(ctx, searchURL)
	if err != nil {
		return "", err
	}

	matches := videoPattern.FindStringSubmatch(string(body))
	if len(matches) < 2 {
		return "", ErrNoVideoMatch
	}

	return fmt.Sprintf("%s/watch?v=%s", r.BaseURL, matches[1]), nil
}

// PlaylistVideoURLs returns up to limit watch URLs from a playlist page, in
// page order with duplicates removed.
func (r *Resolver) PlaylistVideoURLs(ctx context.Context, playlistURL string, limit int) ([]string, error) {
	body, err := r.fetch(ctx, playlistURL)
	if err != nil {
		return nil, err
	}

	matches := watchURLPattern.FindAllStringSubmatch(string(body), -1)

	seen := make(map[string]struct{}, len(matches))
	var urls []string
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		urls = append(urls, fmt.Sprintf("%s/watch?v=%s", r.BaseURL, m[1]))
		if limit > 0 && len(urls) >= limit {
			break
		}
	}

	if len(urls) == 0 {
		return nil, ErrEmptyPlaylist
	}
	return urls, nil
}

// fetch GETs the URL with retries and rate limiting.
func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	err := retrylimit.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}

		resp, err := r.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &statusError{code: resp.StatusCode, url: rawURL}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}, r.limiter)

	return body, err
}
