package platform

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeFetcher struct {
	pages map[string]string
	err   error
}

func (f *fakeFetcher) GetPage(ctx context.Context, url string) (io.Reader, error) {
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, errors.New("no such page")
	}
	return strings.NewReader(page), nil
}

const playlistPage = `<html><body>
<a class="pl-video-title-link yt-uix-tile-link yt-uix-sessionlink spf-link" href="/watch?v=aaa&amp;list=PL1">
   First video
</a>
<a class="other-link" href="/watch?v=zzz">Not an item</a>
<a class="spf-link pl-video-title-link yt-uix-sessionlink yt-uix-tile-link extra" href="https://www.youtube.com/watch?v=bbb">Second video</a>
<a class="pl-video-title-link yt-uix-tile-link yt-uix-sessionlink spf-link">No href</a>
</body></html>`

func TestPlaylistScraperScrape(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://example.com/pl": playlistPage}}
	scraper, err := NewPlaylistScraper(fetcher, "", "")
	if err != nil {
		t.Fatalf("NewPlaylistScraper failed: %v", err)
	}

	entries, err := scraper.Scrape(context.Background(), "https://example.com/pl")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}

	tests := []struct {
		title string
		url   string
	}{
		{"First video", "https://www.youtube.com/watch?v=aaa&list=PL1"},
		{"Second video", "https://www.youtube.com/watch?v=bbb"},
	}
	for i, tt := range tests {
		if entries[i].Title != tt.title {
			t.Errorf("entry %d: expected title %q, got %q", i, tt.title, entries[i].Title)
		}
		if entries[i].URL != tt.url {
			t.Errorf("entry %d: expected URL %q, got %q", i, tt.url, entries[i].URL)
		}
	}
}

func TestPlaylistScraperNoAnchors(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"https://example.com/empty": "<html><body><p>nothing</p></body></html>"}}
	scraper, err := NewPlaylistScraper(fetcher, "", "")
	if err != nil {
		t.Fatalf("NewPlaylistScraper failed: %v", err)
	}

	entries, err := scraper.Scrape(context.Background(), "https://example.com/empty")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestPlaylistScraperCustomSelector(t *testing.T) {
	page := `<ul><li><a class="item" href="v/1">One</a></li><li><a class="item" href="v/2">Two</a></li></ul>`
	fetcher := &fakeFetcher{pages: map[string]string{"https://videos.example/list": page}}
	scraper, err := NewPlaylistScraper(fetcher, "a.item", "https://videos.example/")
	if err != nil {
		t.Fatalf("NewPlaylistScraper failed: %v", err)
	}

	entries, err := scraper.Scrape(context.Background(), "https://videos.example/list")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if len(entries) != 2 || entries[1].URL != "https://videos.example/v/2" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestPlaylistScraperFetchError(t *testing.T) {
	fetchErr := errors.New("connection reset")
	scraper, err := NewPlaylistScraper(&fakeFetcher{err: fetchErr}, "", "")
	if err != nil {
		t.Fatalf("NewPlaylistScraper failed: %v", err)
	}

	if _, err := scraper.Scrape(context.Background(), "https://example.com/pl"); !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error to be returned, got %v", err)
	}
}
