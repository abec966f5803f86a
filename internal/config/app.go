package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfigFileName is looked up in the application data directory.
const AppConfigFileName = "yt-dl.yaml"

// App config defaults
const (
	DefaultUpdateURL        = "https://github.com/ytget/yt-dl/archive/refs/heads/master.zip"
	DefaultUserAgent        = "yt-dl/1.0"
	DefaultRequestTimeout   = 60 * time.Second
	DefaultPerHostInterval  = 500 * time.Millisecond
	DefaultPlaylistSelector = "a.pl-video-title-link.yt-uix-tile-link.yt-uix-sessionlink.spf-link"
	DefaultPlaylistBaseURL  = "https://www.youtube.com"
	DefaultFFmpegPath       = "ffmpeg"
	DefaultFFprobePath      = "ffprobe"
	DefaultMaxWorkers       = 2
)

// ErrInvalidConfig is returned for config files that parse but make no sense.
var ErrInvalidConfig = errors.New("invalid config")

// AppConfig holds settings that are not exposed in the settings dialog.
type AppConfig struct {
	UpdateURL        string
	UserAgent        string
	RequestTimeout   time.Duration
	PerHostInterval  time.Duration
	PlaylistSelector string
	PlaylistBaseURL  string
	FFmpegPath       string
	FFprobePath      string
	MaxWorkers       int
	WorkDir          string
}

type fileConfig struct {
	UpdateURL        string `yaml:"update_url"`
	UserAgent        string `yaml:"user_agent"`
	RequestTimeout   string `yaml:"request_timeout"`
	PerHostInterval  string `yaml:"per_host_interval"`
	PlaylistSelector string `yaml:"playlist_selector"`
	PlaylistBaseURL  string `yaml:"playlist_base_url"`
	FFmpegPath       string `yaml:"ffmpeg_path"`
	FFprobePath      string `yaml:"ffprobe_path"`
	MaxWorkers       int    `yaml:"max_workers"`
	WorkDir          string `yaml:"work_dir"`
}

// DefaultAppConfig returns the built-in configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		UpdateURL:        DefaultUpdateURL,
		UserAgent:        DefaultUserAgent,
		RequestTimeout:   DefaultRequestTimeout,
		PerHostInterval:  DefaultPerHostInterval,
		PlaylistSelector: DefaultPlaylistSelector,
		PlaylistBaseURL:  DefaultPlaylistBaseURL,
		FFmpegPath:       DefaultFFmpegPath,
		FFprobePath:      DefaultFFprobePath,
		MaxWorkers:       DefaultMaxWorkers,
		WorkDir:          os.TempDir(),
	}
}

// LoadAppConfig reads path, applies defaults for missing keys and then
// environment overrides. A missing file yields the defaults.
func LoadAppConfig(path string) (*AppConfig, error) {
	c := DefaultAppConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := c.merge(data); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	c.applyEnv()
	return c, nil
}

func (c *AppConfig) merge(data []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	if f.UpdateURL != "" {
		c.UpdateURL = f.UpdateURL
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.RequestTimeout != "" {
		d, err := time.ParseDuration(f.RequestTimeout)
		if err != nil {
			return fmt.Errorf("%w: request_timeout: %v", ErrInvalidConfig, err)
		}
		c.RequestTimeout = d
	}
	if f.PerHostInterval != "" {
		d, err := time.ParseDuration(f.PerHostInterval)
		if err != nil {
			return fmt.Errorf("%w: per_host_interval: %v", ErrInvalidConfig, err)
		}
		c.PerHostInterval = d
	}
	if f.PlaylistSelector != "" {
		c.PlaylistSelector = f.PlaylistSelector
	}
	if f.PlaylistBaseURL != "" {
		c.PlaylistBaseURL = f.PlaylistBaseURL
	}
	if f.FFmpegPath != "" {
		c.FFmpegPath = f.FFmpegPath
	}
	if f.FFprobePath != "" {
		c.FFprobePath = f.FFprobePath
	}
	if f.MaxWorkers < 0 {
		return fmt.Errorf("%w: max_workers must be positive", ErrInvalidConfig)
	}
	if f.MaxWorkers > 0 {
		c.MaxWorkers = f.MaxWorkers
	}
	if f.WorkDir != "" {
		c.WorkDir = f.WorkDir
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	c.UpdateURL = GetEnv("YTDL_UPDATE_URL", c.UpdateURL)
	c.FFmpegPath = GetEnv("YTDL_FFMPEG_PATH", c.FFmpegPath)
	c.FFprobePath = GetEnv("YTDL_FFPROBE_PATH", c.FFprobePath)
	c.WorkDir = GetEnv("YTDL_WORK_DIR", c.WorkDir)
}

// GetEnv returns env var or def when empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
