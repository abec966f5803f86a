package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/config"
	"github.com/ytget/yt-dl/internal/convert"
	"github.com/ytget/yt-dl/internal/download"
	"github.com/ytget/yt-dl/internal/locate"
	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/network"
	"github.com/ytget/yt-dl/internal/platform"
	"github.com/ytget/yt-dl/internal/ui"
	"github.com/ytget/yt-dl/internal/update"
	"github.com/ytget/yt-dl/internal/worker"
)

// Set during build via -ldflags "-X main.version=X.Y.Z -X main.packaged=true"
var (
	version  = "0.0.0"
	packaged = "false"
)

const (
	AppID   = "com.ytget.yt-dl"
	AppName = "yt-dl"

	WindowWidth  = 820
	WindowHeight = 640

	InstallTimeout = 5 * time.Minute
)

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	dataDir := myApp.Storage().RootURI().Path()
	if logPath, err := logger.Default().Open(dataDir); err != nil {
		logger.Errorf("Log file not available: %v", err)
	} else {
		logger.Infof("Logging to %s", logPath)
	}
	defer logger.Default().Close()

	settings := config.NewSettings(myApp)
	logger.Default().SetVerbose(settings.GetVerboseLog())
	logger.Infof("%s v%s starting...", AppName, version)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	defer logger.Recover(logNotice)

	cfg, err := config.LoadAppConfig(filepath.Join(dataDir, config.AppConfigFileName))
	if err != nil {
		logger.Errorf("Falling back to default configuration: %v", err)
		cfg = config.DefaultAppConfig()
	}

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Errorf("failed to ensure downloads dir: %v", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), InstallTimeout)
		defer cancel()
		if err := platform.InstallYTDLP(ctx); err != nil {
			logger.Errorf("yt-dlp is not available: %v", err)
		}
	}()

	svc, err := buildServices(cfg)
	if err != nil {
		logger.Errorf("Failed to initialize: %v", err)
		return
	}
	defer svc.Pool.Close()

	root := ui.NewRootUI(myWindow, myApp, svc)
	myWindow.ShowAndRun()
	root.Shutdown()
}

// logNotice reports a notice raised after the event loop has unwound. The
// window is gone by then, so the log is the only place left.
func logNotice(n apperr.Notice) {
	logger.Errorf("%s: %s", n.Title, n.Message)
	if n.Detail != "" {
		logger.Errorf("%s", n.Detail)
	}
}

// buildServices wires the components the window drives
func buildServices(cfg *config.AppConfig) (ui.Services, error) {
	client := network.NewClient(network.Options{
		UserAgent:       cfg.UserAgent,
		Timeout:         cfg.RequestTimeout,
		PerHostInterval: cfg.PerHostInterval,
	})

	backend := platform.NewYTDLP()

	playlistAPI := platform.NewPlaylistAPI()
	playlistAPI.SetTimeout(cfg.RequestTimeout)

	scraper, err := platform.NewPlaylistScraper(client, cfg.PlaylistSelector, cfg.PlaylistBaseURL)
	if err != nil {
		return ui.Services{}, fmt.Errorf("playlist scraper: %w", err)
	}

	installDir, err := platform.InstallDir()
	if err != nil {
		return ui.Services{}, fmt.Errorf("install dir: %w", err)
	}
	isPackaged, _ := strconv.ParseBool(packaged)

	updater := update.New(client, update.Options{
		URL:            cfg.UpdateURL,
		CurrentVersion: version,
		Packaged:       isPackaged,
		InstallDir:     installDir,
		WorkDir:        cfg.WorkDir,
	})

	return ui.Services{
		Locator:   locate.New(backend, playlistAPI, scraper),
		Downloads: download.NewService(backend, backend),
		Converter: convert.NewService(cfg.FFmpegPath, cfg.FFprobePath),
		Updater:   updater,
		Pool:      worker.NewPool(cfg.MaxWorkers),
		Version:   version,
	}, nil
}
