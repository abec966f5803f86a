package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ytget/yt-dl/internal/model"
)

// Playlist page defaults
const (
	DefaultPlaylistSelector = "a.pl-video-title-link.yt-uix-tile-link.yt-uix-sessionlink.spf-link"
	DefaultPlaylistBaseURL  = "https://www.youtube.com"
)

// PlaylistScraper collects playlist entries from the anchors of a playlist page
type PlaylistScraper struct {
	fetcher  PageFetcher
	selector string
	base     *url.URL
}

// NewPlaylistScraper creates a scraper. Empty selector or base URL fall back
// to the defaults.
func NewPlaylistScraper(fetcher PageFetcher, selector, baseURL string) (*PlaylistScraper, error) {
	if selector == "" {
		selector = DefaultPlaylistSelector
	}
	if baseURL == "" {
		baseURL = DefaultPlaylistBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid playlist base URL %q: %w", baseURL, err)
	}
	return &PlaylistScraper{
		fetcher:  fetcher,
		selector: selector,
		base:     base,
	}, nil
}

// Scrape fetches pageURL and returns one entry per matching anchor, in page order
func (s *PlaylistScraper) Scrape(ctx context.Context, pageURL string) ([]model.PlaylistEntry, error) {
	body, err := s.fetcher.GetPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist page: %w", err)
	}
	return s.extract(doc), nil
}

func (s *PlaylistScraper) extract(doc *goquery.Document) []model.PlaylistEntry {
	var entries []model.PlaylistEntry
	doc.Find(s.selector).Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		entries = append(entries, model.PlaylistEntry{
			Title: strings.TrimSpace(sel.Text()),
			URL:   s.base.ResolveReference(ref).String(),
		})
	})
	return entries
}
