package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dohun0310/Discord-Music-Bot/internal/music/sources"
	"github.com/dohun0310/Discord-Music-Bot/internal/music/ytclient"
)

const resolveTimeout = 30 * time.Second

// Source resolves YouTube URLs, playlist URLs and title searches.
type Source struct {
	resolver    *Resolver
	playlistMax int
}

// New builds the YouTube source. playlistMax caps how many tracks one
// playlist URL may produce.
func New(playlistMax int) *Source {
	return &Source{
		resolver:    NewResolver(ytclient.HTTP()),
		playlistMax: playlistMax,
	}
}

func (y *Source) SourceName() string { return sources.SourceYouTube }

func (y *Source) AvailableParsers() []string {
	return []string{"kkdai-link", "kkdai-pipe", "ytdlp-link", "ytdlp-pipe"}
}

func (y *Source) Match(input string) bool {
	return isYouTubeURL(input)
}

// Resolve turns a URL or search term into track info. Playlist URLs expand
// to every listed video (capped); everything else resolves to a single track
// with metadata fetched up front.
func (y *Source) Resolve(input string) ([]sources.TrackInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	input = strings.TrimSpace(input)

	if !isURL(input) {
		videoURL, err := y.resolver.SearchFirstVideoURL(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("could not find a YouTube video for %q: %w", input, err)
		}
		info, err := y.describeVideo(ctx, videoURL)
		if err != nil {
			return nil, err
		}
		return []sources.TrackInfo{info}, nil
	}

	if !y.Match(input) {
		return nil, errors.New("input is not a YouTube URL")
	}

	if isYouTubePlaylistURL(input) {
		return y.resolvePlaylist(ctx, input)
	}

	if isYouTubeVideoURL(input) {
		info, err := y.describeVideo(ctx, CleanVideoURL(input))
		if err != nil {
			return nil, err
		}
		return []sources.TrackInfo{info}, nil
	}

	return nil, errors.New("invalid YouTube URL format")
}

func (y *Source) resolvePlaylist(ctx context.Context, playlistURL string) ([]sources.TrackInfo, error) {
	urls, err := y.resolver.PlaylistVideoURLs(ctx, playlistURL, y.playlistMax)
	if err != nil {
		return nil, fmt.Errorf("failed to expand playlist: %w", err)
	}

	// Playlist entries skip the per-video metadata fetch; titles and
	// durations are filled in when each stream is opened.
	infos := make([]sources.TrackInfo, 0, len(urls))
	for _, u := range urls {
		infos = append(infos, sources.TrackInfo{
			URL:              u,
			SourceName:       sources.SourceYouTube,
			AvailableParsers: y.AvailableParsers(),
		})
	}
	return infos, nil
}

// describeVideo fetches title and duration for a single video.
func (y *Source) describeVideo(ctx context.Context, videoURL string) (sources.TrackInfo, error) {
	video, err := ytclient.New().GetVideoContext(ctx, videoURL)
	if err != nil {
		return sources.TrackInfo{}, fmt.Errorf("failed to fetch video info: %w", err)
	}

	return sources.TrackInfo{
		URL:              videoURL,
		Title:            video.Title,
		Duration:         video.Duration,
		SourceName:       sources.SourceYouTube,
		AvailableParsers: y.AvailableParsers(),
	}, nil
}
