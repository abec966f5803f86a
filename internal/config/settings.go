package config

import (
	"fyne.io/fyne/v2"
	"github.com/ytget/yt-dl/internal/platform"
)

// ConversionMode selects what the conversion step does with downloaded files
type ConversionMode string

const (
	ConversionExtractAudio ConversionMode = "extract_audio"
	ConversionCompress     ConversionMode = "compress"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyFormat         = "preferred_format"
	KeyResolution     = "preferred_resolution"
	KeyConversionMode = "conversion_mode"
	KeyLanguage       = "app_language"
	KeyVerboseLog     = "verbose_log"
)

// Default values
const (
	DefaultFormat         = "mp4"
	DefaultResolution     = "720p"
	DefaultConversionMode = ConversionExtractAudio
	DefaultLanguage       = "system"
)

// Settings manages user preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			// empty means the current working directory
			return ""
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetFormat returns the preferred container format
func (s *Settings) GetFormat() string {
	return s.app.Preferences().StringWithFallback(KeyFormat, DefaultFormat)
}

// SetFormat sets the preferred container format. Unknown formats are ignored.
func (s *Settings) SetFormat(format string) {
	if _, ok := Formats[format]; !ok {
		return
	}
	s.app.Preferences().SetString(KeyFormat, format)
}

// GetResolution returns the preferred resolution
func (s *Settings) GetResolution() string {
	return s.app.Preferences().StringWithFallback(KeyResolution, DefaultResolution)
}

// SetResolution sets the preferred resolution. Unknown resolutions are ignored.
func (s *Settings) SetResolution(resolution string) {
	if _, ok := ResolutionLabel(resolution); !ok {
		return
	}
	s.app.Preferences().SetString(KeyResolution, resolution)
}

// GetConversionMode returns the configured conversion mode
func (s *Settings) GetConversionMode() ConversionMode {
	mode := s.app.Preferences().String(KeyConversionMode)
	if mode == "" {
		return DefaultConversionMode
	}
	return ConversionMode(mode)
}

// SetConversionMode sets the conversion mode
func (s *Settings) SetConversionMode(mode ConversionMode) {
	s.app.Preferences().SetString(KeyConversionMode, string(mode))
}

// GetConversionModeOptions returns available conversion modes
func (s *Settings) GetConversionModeOptions() []ConversionMode {
	return []ConversionMode{ConversionExtractAudio, ConversionCompress}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetVerboseLog returns whether debug lines go to the log
func (s *Settings) GetVerboseLog() bool {
	return s.app.Preferences().BoolWithFallback(KeyVerboseLog, false)
}

// SetVerboseLog toggles debug logging
func (s *Settings) SetVerboseLog(verbose bool) {
	s.app.Preferences().SetBool(KeyVerboseLog, verbose)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
