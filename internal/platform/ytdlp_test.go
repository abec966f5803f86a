package platform

import (
	"errors"
	"testing"
)

const videoJSON = `{
  "_type": "video",
  "id": "abc123",
  "title": "My: Video?",
  "webpage_url": "https://www.youtube.com/watch?v=abc123",
  "formats": [
    {"format_id": "18", "ext": "mp4", "height": 360, "fps": 30, "filesize": 1000, "vcodec": "avc1", "acodec": "mp4a"},
    {"format_id": "22", "ext": "mp4", "height": 720, "fps": 30, "filesize_approx": 5000, "vcodec": "avc1", "acodec": "mp4a"},
    {"format_id": "137", "ext": "mp4", "height": 1080, "fps": 30, "vcodec": "avc1", "acodec": "none"},
    {"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a"},
    {"format_id": "17", "ext": "3gp", "height": 144, "fps": 12, "vcodec": "mp4v", "acodec": "mp4a"}
  ]
}`

func TestParseVideoJSON(t *testing.T) {
	video, err := parseVideoJSON([]byte(videoJSON), "youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("parseVideoJSON failed: %v", err)
	}

	if video.ID != "abc123" || video.Title != "My: Video?" {
		t.Errorf("unexpected video %+v", video)
	}
	if video.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("expected webpage URL, got %s", video.URL)
	}
	if len(video.Streams) != 3 {
		t.Fatalf("expected 3 progressive streams, got %d", len(video.Streams))
	}

	first := video.Streams[0]
	if first.Resolution != "720p" || first.FormatID != "22" {
		t.Errorf("expected highest resolution first, got %+v", first)
	}
	if first.Filesize != 5000 {
		t.Errorf("expected approximate filesize fallback, got %d", first.Filesize)
	}
	if first.DefaultFilename != "My Video.mp4" {
		t.Errorf("unexpected default filename %q", first.DefaultFilename)
	}

	last := video.Streams[2]
	if last.Format != "3gpp" || last.Resolution != "144p12" {
		t.Errorf("expected 3gpp 144p12 stream, got %+v", last)
	}
}

func TestParseVideoJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"playlist", `{"_type": "playlist", "id": "PL1"}`, ErrNotAVideo},
		{"multi video", `{"_type": "multi_video", "id": "x"}`, ErrNotAVideo},
		{"adaptive only", `{"id": "x", "formats": [{"format_id": "137", "ext": "mp4", "vcodec": "avc1", "acodec": "none"}]}`, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseVideoJSON([]byte(tt.data), "https://example.com")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := parseVideoJSON([]byte("not json"), "https://example.com"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestClassifyOutput(t *testing.T) {
	tests := []struct {
		output string
		want   error
	}{
		{"ERROR: Unsupported URL: https://example.com/page", ErrNotAVideo},
		{"ERROR: 'youtube.com/watch' is not a valid URL.", ErrUnreachable},
		{"ERROR: Unable to download webpage: <urlopen error [Errno -2] Name or service not known>", ErrUnreachable},
		{"ERROR: [youtube] abc: Video unavailable", ErrUnavailable},
		{"", ErrUnavailable},
	}

	for _, tt := range tests {
		if got := classifyOutput(tt.output); got != tt.want {
			t.Errorf("classifyOutput(%q) = %v, expected %v", tt.output, got, tt.want)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Simple title", "Simple title"},
		{"AC/DC: Back in Black", "ACDC Back in Black"},
		{"  what?  ", "what"},
		{"line\nbreak", "line break"},
		{"...", DefaultFileTitle},
		{"", DefaultFileTitle},
	}

	for _, tt := range tests {
		if got := SafeFilename(tt.title); got != tt.expected {
			t.Errorf("SafeFilename(%q) = %q, expected %q", tt.title, got, tt.expected)
		}
	}
}

func TestEscapeOutputTemplate(t *testing.T) {
	if got := escapeOutputTemplate("/tmp/100% fun.mp4"); got != "/tmp/100%% fun.mp4" {
		t.Errorf("unexpected escaped path %q", got)
	}
}
