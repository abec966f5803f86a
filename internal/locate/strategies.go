package locate

import (
	"context"
	"errors"

	"github.com/ytget/yt-dl/internal/model"
	"github.com/ytget/yt-dl/internal/platform"
)

// Strategy names
const (
	StrategyDirect         = "direct"
	StrategyScheme         = "scheme"
	StrategyPlaylistAPI    = "playlist-api"
	StrategyPlaylistScrape = "playlist-scrape"
)

// HTTPSPrefix is prepended to URLs given without a scheme
const HTTPSPrefix = "https://"

// Scraper collects playlist entries from a page
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) ([]model.PlaylistEntry, error)
}

// Direct resolves the URL exactly as given.
type Direct struct {
	Resolver platform.Resolver
}

func (d *Direct) Name() string { return StrategyDirect }

func (d *Direct) Locate(ctx context.Context, a *Attempt) model.Location {
	return resolve(ctx, d.Resolver, a, a.Input)
}

// SchemeRetry retries a URL without scheme once with "https://" prefixed,
// but only when the previous resolve failed structurally.
type SchemeRetry struct {
	Resolver platform.Resolver
}

func (s *SchemeRetry) Name() string { return StrategyScheme }

func (s *SchemeRetry) Locate(ctx context.Context, a *Attempt) model.Location {
	if !a.Structural || hasScheme(a.Input) {
		return model.Location{}
	}
	prefixed := HTTPSPrefix + a.Input
	a.Structural = false
	loc := resolve(ctx, s.Resolver, a, prefixed)
	if a.Playlist {
		a.PageURL = prefixed
	}
	return loc
}

// resolve runs resolver on u and classifies a failure into the attempt
func resolve(ctx context.Context, resolver platform.Resolver, a *Attempt, u string) model.Location {
	video, err := resolver.Resolve(ctx, u)
	if err == nil {
		return model.Location{Kind: model.SingleVideo, Video: video}
	}

	a.record(err)
	switch {
	case errors.Is(err, platform.ErrNotAVideo):
		a.Playlist = true
	case errors.Is(err, platform.ErrUnreachable):
		a.Structural = true
	}
	return model.Location{}
}

// PlaylistAPI lists the playlist named by the list= parameter through the
// platform's browse API.
type PlaylistAPI struct {
	Lister platform.PlaylistLister
}

func (p *PlaylistAPI) Name() string { return StrategyPlaylistAPI }

func (p *PlaylistAPI) Locate(ctx context.Context, a *Attempt) model.Location {
	if !a.Playlist {
		return model.Location{}
	}
	id := platform.PlaylistID(a.PageURL)
	if id == "" {
		return model.Location{}
	}

	entries, err := p.Lister.ListPlaylist(ctx, id)
	if err != nil {
		a.record(err)
		return model.Location{}
	}
	return playlistLocation(entries)
}

// PlaylistScrape fetches the page and collects the playlist item anchors.
type PlaylistScrape struct {
	Scraper Scraper
}

func (p *PlaylistScrape) Name() string { return StrategyPlaylistScrape }

func (p *PlaylistScrape) Locate(ctx context.Context, a *Attempt) model.Location {
	if !a.Playlist {
		return model.Location{}
	}

	entries, err := p.Scraper.Scrape(ctx, a.PageURL)
	if err != nil {
		a.record(err)
		return model.Location{}
	}
	return playlistLocation(entries)
}

func playlistLocation(entries []model.PlaylistEntry) model.Location {
	if len(entries) == 0 {
		return model.Location{}
	}
	return model.Location{Kind: model.PlaylistVideos, Entries: entries}
}
