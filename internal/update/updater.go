// Package update fetches a release archive, compares its bundled version
// with the running one and, when newer, copies the new files over the
// installation.
//
// A run moves through Fetching, Extracting, Verifying, Applying and
// CleaningUp. The temporary archive and extraction directory are removed
// whatever branch the run takes.
package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/version"
)

// ArchivePrefix names the temporary archive and extraction directory
const ArchivePrefix = "yt-dl_update_"

// TimestampLayout is appended to ArchivePrefix
const TimestampLayout = "20060102_1504"

// ArchiveFetcher downloads the release archive to a local path
type ArchiveFetcher interface {
	Download(ctx context.Context, url, dstPath string) (int64, error)
}

// Options configures an Updater
type Options struct {
	URL            string
	CurrentVersion string
	Packaged       bool   // running as a packaged executable
	InstallDir     string // where the new files are copied
	WorkDir        string // where the archive is downloaded and extracted
}

// Updater runs update checks
type Updater struct {
	fetcher  ArchiveFetcher
	opts     Options
	observer func(Progress)
	now      func() time.Time
}

// New creates an updater
func New(fetcher ArchiveFetcher, opts Options) *Updater {
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	return &Updater{
		fetcher: fetcher,
		opts:    opts,
		now:     time.Now,
	}
}

// SetObserver sets the callback receiving stage progress
func (u *Updater) SetObserver(observer func(Progress)) {
	u.observer = observer
}

// Run performs one update check. It never panics on expected failures; the
// outcome carries the notice to show.
func (u *Updater) Run(ctx context.Context) Outcome {
	name := ArchivePrefix + u.now().Format(TimestampLayout)
	archivePath := filepath.Join(u.opts.WorkDir, name+".zip")
	extractDir := filepath.Join(u.opts.WorkDir, name)

	outcome := u.run(ctx, archivePath, extractDir)

	u.emit(CleaningUp)
	u.cleanup(archivePath, extractDir)
	u.emit(Done)

	logOutcome(outcome)
	return outcome
}

// logOutcome logs expected outcomes as info and only failures as errors
func logOutcome(outcome Outcome) {
	switch {
	case outcome.Kind == Failed && !errors.Is(outcome.Err, context.Canceled):
		logger.Errorf("Update failed: %v", outcome.Err)
	case outcome.Kind == Failed:
		logger.Infof("Update cancelled: %v", outcome.Err)
	default:
		logger.Infof("Update finished: %s (%s -> %s)", outcome.Kind, outcome.OldVersion, outcome.NewVersion)
	}
}

func (u *Updater) run(ctx context.Context, archivePath, extractDir string) Outcome {
	if err := ctx.Err(); err != nil {
		return cancelledOutcome(err)
	}
	u.emit(Fetching)
	if _, err := u.fetcher.Download(ctx, u.opts.URL, archivePath); err != nil {
		if ctx.Err() != nil {
			return cancelledOutcome(ctx.Err())
		}
		if apperr.KindOf(err) == apperr.Internal {
			err = apperr.Wrap(apperr.NetworkFailure, "update", "The update could not be downloaded.", err)
		}
		return failedOutcome(err)
	}

	if err := ctx.Err(); err != nil {
		return cancelledOutcome(err)
	}
	u.emit(Extracting)
	if err := extractZip(archivePath, extractDir); err != nil {
		return failedOutcome(apperr.Wrap(apperr.InvalidInput, "update", "The downloaded update is not a valid archive.", err))
	}

	if err := ctx.Err(); err != nil {
		return cancelledOutcome(err)
	}
	u.emit(Verifying)
	files, err := listFiles(extractDir)
	if err != nil {
		return failedOutcome(apperr.Wrap(apperr.Internal, "update", "", err))
	}
	newVersion, err := readVersion(files)
	if err != nil {
		return failedOutcome(err)
	}
	oldVersion := u.opts.CurrentVersion
	newer, err := version.IsNewer(newVersion, oldVersion)
	if err != nil {
		return failedOutcome(err)
	}

	if !newer {
		return noUpdateOutcome(oldVersion, newVersion)
	}
	if u.opts.Packaged {
		return unsupportedOutcome(oldVersion, newVersion)
	}

	if err := ctx.Err(); err != nil {
		return cancelledOutcome(err)
	}
	u.emit(Applying)
	src, err := contentRoot(extractDir)
	if err != nil {
		return failedOutcome(apperr.Wrap(apperr.Internal, "update", "", err))
	}
	if err := copyTree(src, u.opts.InstallDir); err != nil {
		return failedOutcome(err)
	}
	return successOutcome(oldVersion, newVersion)
}

// cleanup removes the temporary artifacts; missing ones are ignored
func (u *Updater) cleanup(archivePath, extractDir string) {
	if err := os.RemoveAll(extractDir); err != nil {
		logger.Errorf("Failed to remove %s: %v", extractDir, err)
	}
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		logger.Errorf("Failed to remove %s: %v", archivePath, err)
	}
}

func (u *Updater) emit(s Stage) {
	logger.Debugf("Update stage: %s", strings.ReplaceAll(s.Label(), "\n", " "))
	if u.observer != nil {
		u.observer(progressFor(s))
	}
}
