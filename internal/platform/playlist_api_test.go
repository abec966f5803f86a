package platform

import (
	"context"
	"testing"
	"time"
)

func TestNewPlaylistAPI(t *testing.T) {
	api := NewPlaylistAPI()
	if api.timeout != DefaultPlaylistTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultPlaylistTimeout, api.timeout)
	}

	api.SetTimeout(30 * time.Second)
	if api.timeout != 30*time.Second {
		t.Errorf("expected timeout %v, got %v", 30*time.Second, api.timeout)
	}
}

func TestPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "extract playlist ID from watch URL",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "extract playlist ID from playlist URL",
			url:      "https://www.youtube.com/playlist?list=PLAYLIST_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "extract playlist ID with additional parameters",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1&t=30",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "extract playlist ID with multiple list parameters",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&list=OTHER_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "URL without scheme",
			url:      "www.youtube.com/playlist?list=PLAYLIST_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "URL without playlist parameter",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID",
			expected: "",
		},
		{
			name:     "URL with empty playlist parameter",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=",
			expected: "",
		},
		{
			name:     "empty URL",
			url:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PlaylistID(tt.url)
			if result != tt.expected {
				t.Errorf("expected %q, got %q for URL: %s", tt.expected, result, tt.url)
			}
		})
	}
}

func TestListPlaylistEmptyID(t *testing.T) {
	_, err := NewPlaylistAPI().ListPlaylist(context.Background(), "")
	if err == nil {
		t.Error("expected error for empty playlist ID, got nil")
	}
}
