package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	ytlib "github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-dl/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL templates
const (
	PlaylistQueryKey        = "list"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistAPI lists playlist items through the platform's browse API
type PlaylistAPI struct {
	timeout time.Duration
}

// NewPlaylistAPI creates a playlist lister with the default timeout
func NewPlaylistAPI() *PlaylistAPI {
	return &PlaylistAPI{
		timeout: DefaultPlaylistTimeout,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistAPI) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// ListPlaylist returns every entry of the playlist
func (p *PlaylistAPI) ListPlaylist(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("empty playlist ID")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := ytlib.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, model.PlaylistEntry{
			Title: strings.TrimSpace(it.Title),
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// PlaylistID extracts the list= parameter from a playlist or watch URL.
// The scheme is optional.
func PlaylistID(rawURL string) string {
	if !strings.Contains(rawURL, PlaylistQueryKey+"=") {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(PlaylistQueryKey)
}
