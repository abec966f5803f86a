package model

import (
	"sort"
	"strconv"
	"strings"
)

// Stream is one selectable encoding of a video
type Stream struct {
	VideoURL        string
	FormatID        string // backend specific selector, e.g. yt-dlp format id
	Format          string // container, e.g. "mp4"
	Resolution      string // e.g. "720p", "1080p60"
	Height          int
	FPS             int
	Filesize        int64 // bytes, 0 if unknown
	DefaultFilename string
	Progressive     bool // audio and video muxed together
}

// Matches reports whether the stream has exactly the given format and resolution
func (s Stream) Matches(format, resolution string) bool {
	return s.Format == format && s.Resolution == resolution
}

// Video is a single resolved video
type Video struct {
	ID      string
	Title   string
	URL     string
	Streams []Stream
}

// FindStream returns the first stream matching format and resolution
func (v *Video) FindStream(format, resolution string) (Stream, bool) {
	for _, s := range v.Streams {
		if s.Matches(format, resolution) {
			return s, true
		}
	}
	return Stream{}, false
}

// Formats returns the distinct container formats in stream order
func (v *Video) Formats() []string {
	seen := make(map[string]bool)
	var formats []string
	for _, s := range v.Streams {
		if !seen[s.Format] {
			seen[s.Format] = true
			formats = append(formats, s.Format)
		}
	}
	return formats
}

// Resolutions returns the distinct resolutions offered for format, highest first
func (v *Video) Resolutions(format string) []string {
	seen := make(map[string]bool)
	var resolutions []string
	for _, s := range v.Streams {
		if s.Format == format && !seen[s.Resolution] {
			seen[s.Resolution] = true
			resolutions = append(resolutions, s.Resolution)
		}
	}
	return resolutions
}

// SortStreams orders streams by height, then fps, highest first
func SortStreams(streams []Stream) {
	sort.SliceStable(streams, func(i, j int) bool {
		if streams[i].Height != streams[j].Height {
			return streams[i].Height > streams[j].Height
		}
		return streams[i].FPS > streams[j].FPS
	})
}

// ResolutionName renders a height/fps pair the way the UI tables name it:
// "720p", "720p60" for high frame rates, "144p15" for very low ones.
func ResolutionName(height, fps int) string {
	if height <= 0 {
		return ""
	}
	name := strconv.Itoa(height) + "p"
	switch {
	case fps > 30:
		name += strconv.Itoa(fps)
	case fps > 0 && fps <= 15:
		name += strconv.Itoa(fps)
	}
	return name
}

// PlaylistEntry is a (title, URL) pair scraped from a playlist page
type PlaylistEntry struct {
	Title string
	URL   string
}

// LocationKind tags a locate result
type LocationKind int

const (
	Unresolved LocationKind = iota
	SingleVideo
	PlaylistVideos
)

// String returns the kind name
func (k LocationKind) String() string {
	switch k {
	case SingleVideo:
		return "video"
	case PlaylistVideos:
		return "playlist"
	default:
		return "unresolved"
	}
}

// Location is what a URL resolved to: one video with its streams, or the
// entries of a playlist
type Location struct {
	Kind    LocationKind
	Video   *Video
	Entries []PlaylistEntry
	Source  string // name of the strategy that resolved it
}

// Resolved reports whether the location holds a result
func (l Location) Resolved() bool {
	return l.Kind != Unresolved
}

// BatchItem is one unit of a download batch: a resolved video, or a playlist
// entry that still has to be resolved to streams
type BatchItem struct {
	Video *Video
	Entry *PlaylistEntry
}

// URL returns the page URL of the item
func (b BatchItem) URL() string {
	if b.Video != nil {
		return b.Video.URL
	}
	if b.Entry != nil {
		return b.Entry.URL
	}
	return ""
}

// Title returns the best known title of the item
func (b BatchItem) Title() string {
	if b.Video != nil && b.Video.Title != "" {
		return b.Video.Title
	}
	if b.Entry != nil {
		return strings.TrimSpace(b.Entry.Title)
	}
	return ""
}

// Items converts a location into batch items
func (l Location) Items() []BatchItem {
	switch l.Kind {
	case SingleVideo:
		return []BatchItem{{Video: l.Video}}
	case PlaylistVideos:
		items := make([]BatchItem, len(l.Entries))
		for i := range l.Entries {
			items[i] = BatchItem{Entry: &l.Entries[i]}
		}
		return items
	}
	return nil
}
