package platform

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ytget/yt-dl/internal/model"
)

// Backend errors. Resolvers wrap one of these so callers can branch on the
// failure class with errors.Is.
var (
	// ErrNotAVideo means the URL was understood but does not identify a single
	// video: an unsupported pattern or a playlist page.
	ErrNotAVideo = errors.New("url does not identify a single video")

	// ErrUnreachable means the URL could not be used at all: malformed,
	// or the page could not be retrieved.
	ErrUnreachable = errors.New("video page could not be retrieved")

	// ErrUnavailable means the video exists but cannot be resolved (removed, private, ...).
	ErrUnavailable = errors.New("video unavailable")
)

// Progress is a download progress sample
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	ETASec          int
	Speed           string
}

// Resolver resolves a page URL to its progressive streams
type Resolver interface {
	Resolve(ctx context.Context, url string) (*model.Video, error)
}

// Downloader writes one stream into dir ("" is the working directory) and
// returns the written path
type Downloader interface {
	Download(ctx context.Context, stream model.Stream, dir string, progress func(Progress)) (string, error)
}

// PlaylistLister lists the entries of a playlist by its id
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)
}

// PageFetcher fetches an HTML page decoded to UTF-8
type PageFetcher interface {
	GetPage(ctx context.Context, url string) (io.Reader, error)
}

// Messages printed by yt-dlp, used to classify failures
var (
	notAVideoMarkers = []string{
		"Unsupported URL",
	}
	unreachableMarkers = []string{
		"is not a valid URL",
		"Unable to download webpage",
		"Failed to resolve",
		"Name or service not known",
		"Temporary failure in name resolution",
		"getaddrinfo failed",
		"Connection refused",
		"timed out",
		"urlopen error",
		"No such host",
	}
)

// classifyOutput maps yt-dlp error output to one of the backend errors
func classifyOutput(output string) error {
	for _, m := range notAVideoMarkers {
		if strings.Contains(output, m) {
			return ErrNotAVideo
		}
	}
	for _, m := range unreachableMarkers {
		if strings.Contains(output, m) {
			return ErrUnreachable
		}
	}
	return ErrUnavailable
}
