package config

// Formats maps container formats to their display names.
var Formats = map[string]string{
	"mp4":  "MPEG-4 AVC / H.264 (.mp4)",
	"webm": "VP9 (.webm)",
	"3gpp": "MPEG-4 Visual (.3gpp)",
	"flv":  "Sorenson H.263 (.flv)",
}

// FormatOrder is the display order of Formats.
var FormatOrder = []string{"mp4", "webm", "3gpp", "flv"}

// Resolution pairs a stream resolution with its display label.
type Resolution struct {
	Value string
	Label string
}

// Resolutions lists known resolutions, lowest first.
var Resolutions = []Resolution{
	{"144p", "144p"},
	{"144p15", "144p 15 fps"},
	{"240p", "240p"},
	{"360p", "SD (360p)"},
	{"480p", "FWVGA (480p)"},
	{"720p", "HD (720p)"},
	{"720p60", "HD (720p60)"},
	{"1080p", "Full HD (1080p)"},
	{"1080p60", "Full HD (1080p60)"},
	{"1440p", "Quad HD (1440p)"},
	{"1440p60", "Quad HD (1440p60)"},
	{"2160p", "4K UHD (2160p)"},
	{"2160p60", "4K UHD (2160p60)"},
}

// StandardFormats lists the progressive (format, resolution) pairs the
// platform serves for nearly every video. Playlists cannot be inspected per
// video up front, so these are offered for them.
var StandardFormats = map[string][]string{
	"mp4":  {"360p", "720p"},
	"webm": {"360p"},
	"3gpp": {"144p", "240p"},
}

// ResolutionLabel returns the display label for a resolution.
func ResolutionLabel(value string) (string, bool) {
	for _, r := range Resolutions {
		if r.Value == value {
			return r.Label, true
		}
	}
	return "", false
}

// ResolutionValue is the inverse of ResolutionLabel.
func ResolutionValue(label string) (string, bool) {
	for _, r := range Resolutions {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

// FormatLabel returns the display label for a container format.
func FormatLabel(format string) string {
	if label, ok := Formats[format]; ok {
		return label
	}
	return format
}

// FormatValue is the inverse of FormatLabel.
func FormatValue(label string) (string, bool) {
	for value, l := range Formats {
		if l == label {
			return value, true
		}
	}
	if _, ok := Formats[label]; ok {
		return label, true
	}
	return "", false
}
