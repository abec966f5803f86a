package ui

import (
	"github.com/ytget/yt-dl/internal/config"
	"github.com/ytget/yt-dl/internal/model"
)

// formatChoices returns the container formats offered for loc in display
// order. A single video offers what it actually has; a playlist cannot be
// inspected per video up front and offers the standard table.
func formatChoices(loc model.Location) []string {
	switch loc.Kind {
	case model.SingleVideo:
		if loc.Video == nil {
			return nil
		}
		return orderFormats(loc.Video.Formats())
	case model.PlaylistVideos:
		formats := make([]string, 0, len(config.StandardFormats))
		for format := range config.StandardFormats {
			formats = append(formats, format)
		}
		return orderFormats(formats)
	}
	return nil
}

// resolutionChoices returns the resolutions offered for format, highest first.
func resolutionChoices(loc model.Location, format string) []string {
	switch loc.Kind {
	case model.SingleVideo:
		if loc.Video == nil {
			return nil
		}
		return loc.Video.Resolutions(format)
	case model.PlaylistVideos:
		standard := config.StandardFormats[format]
		out := make([]string, len(standard))
		for i, r := range standard {
			out[len(standard)-1-i] = r
		}
		return out
	}
	return nil
}

// orderFormats sorts formats by config.FormatOrder; unknown ones keep their
// relative order at the end.
func orderFormats(formats []string) []string {
	present := make(map[string]bool, len(formats))
	for _, f := range formats {
		present[f] = true
	}

	ordered := make([]string, 0, len(formats))
	for _, f := range config.FormatOrder {
		if present[f] {
			ordered = append(ordered, f)
			delete(present, f)
		}
	}
	for _, f := range formats {
		if present[f] {
			ordered = append(ordered, f)
			delete(present, f)
		}
	}
	return ordered
}

// resolutionLabel falls back to the raw value for resolutions the table
// does not name.
func resolutionLabel(value string) string {
	if label, ok := config.ResolutionLabel(value); ok {
		return label
	}
	return value
}

// resolutionValue is the inverse of resolutionLabel.
func resolutionValue(label string) string {
	if value, ok := config.ResolutionValue(label); ok {
		return value
	}
	return label
}

// labels maps values through label, keeping order.
func labels(values []string, label func(string) string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = label(v)
	}
	return out
}

// pickDefault returns preferred when it is among options, else the first option.
func pickDefault(options []string, preferred string) string {
	for _, o := range options {
		if o == preferred {
			return o
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

// conversionModeKey returns the localization key naming mode.
func conversionModeKey(mode config.ConversionMode) string {
	if mode == config.ConversionCompress {
		return KeyModeCompress
	}
	return KeyModeExtractAudio
}
