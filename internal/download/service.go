package download

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/model"
	"github.com/ytget/yt-dl/internal/platform"
)

// Retry defaults for a failed transfer
const (
	DefaultMaxRetries = 1
	DefaultRetryDelay = 2 * time.Second
)

// Service downloads batches of videos
type Service struct {
	resolver   platform.Resolver
	downloader platform.Downloader

	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
	maxRetries int
	retryDelay time.Duration
	onUpdate   func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service. resolver re-resolves playlist
// entries, downloader performs the transfers.
func NewService(resolver platform.Resolver, downloader platform.Downloader) *Service {
	return &Service{
		resolver:   resolver,
		downloader: downloader,
		tasks:      make(map[string]*model.DownloadTask),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// SetRetryPolicy configures how often a failed transfer is retried
func (s *Service) SetRetryPolicy(maxRetries int, delay time.Duration) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	s.maxRetries = maxRetries
	s.retryDelay = delay
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetBatchTasks returns the tasks of one batch in batch order
func (s *Service) GetBatchTasks(batchID string) []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	var tasks []*model.DownloadTask
	for _, task := range s.tasks {
		if task.BatchID == batchID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Index < tasks[j].Index
	})
	return tasks
}

// DownloadBatch downloads the stream matching format and resolution for each
// item into destination ("" is the current working directory).
//
// Items without a matching stream are counted as Skipped. An item whose
// resolution or download fails is counted as Failed and the batch goes on.
// Cancellation is checked between items; the remaining items are left out.
func (s *Service) DownloadBatch(ctx context.Context, items []model.BatchItem, format, resolution, destination string) model.DownloadResult {
	var result model.DownloadResult
	batchID := uuid.New().String()

	if destination != "" {
		if err := platform.CreateDirectoryIfNotExists(destination); err != nil {
			logger.Errorf("Failed to create download directory %s: %v", destination, err)
		}
	}

	for i, item := range items {
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		task := s.newTask(batchID, i+1, len(items), item, format, resolution)
		result.Attempted++

		path, err := s.downloadItem(ctx, task, item, format, resolution, destination)
		switch {
		case errors.Is(err, errNoMatchingStream):
			result.Skipped++
			s.finish(task, model.TaskStatusSkipped, "")
			logger.Infof("No %s %s stream for %s, skipping", format, resolution, item.URL())
		case err != nil && ctx.Err() != nil:
			result.Cancelled = true
			s.finish(task, model.TaskStatusStopped, "")
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, model.ItemError{Index: i + 1, URL: item.URL(), Err: err.Error()})
			s.finish(task, model.TaskStatusError, err.Error())
			logger.Errorf("Download of item %d (%s) failed: %v", i+1, item.URL(), err)
		default:
			result.Succeeded++
			result.Files = append(result.Files, path)
			s.tasksMutex.Lock()
			task.OutputPath = path
			task.Progress = 1.0
			task.Percent = 100
			s.tasksMutex.Unlock()
			s.finish(task, model.TaskStatusCompleted, "")
		}

		if result.Cancelled {
			break
		}
	}

	logger.Infof("Batch %s finished: attempted=%d succeeded=%d failed=%d skipped=%d",
		batchID, result.Attempted, result.Succeeded, result.Failed, result.Skipped)
	return result
}

var errNoMatchingStream = errors.New("no matching stream")

// downloadItem resolves item if needed, picks the stream and downloads it
func (s *Service) downloadItem(ctx context.Context, task *model.DownloadTask, item model.BatchItem, format, resolution, destination string) (string, error) {
	video := item.Video
	if video == nil {
		if item.Entry == nil {
			return "", fmt.Errorf("empty batch item")
		}
		s.setStatus(task, model.TaskStatusResolving)
		v, err := s.resolver.Resolve(ctx, item.Entry.URL)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", item.Entry.URL, err)
		}
		video = v
		if video.Title != "" {
			s.tasksMutex.Lock()
			task.Title = video.Title
			s.tasksMutex.Unlock()
		}
	}

	stream, ok := video.FindStream(format, resolution)
	if !ok {
		return "", errNoMatchingStream
	}

	s.tasksMutex.Lock()
	task.FileSize = stream.Filesize
	s.tasksMutex.Unlock()
	s.setStatus(task, model.TaskStatusDownloading)

	return s.downloadWithRetry(ctx, task, stream, destination)
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, task *model.DownloadTask, stream model.Stream, destination string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}

			logger.Infof("Retrying download for task %s, attempt %d", task.ID, attempt+1)
		}

		path, err := s.downloader.Download(ctx, stream, destination, func(p platform.Progress) {
			s.updateTaskProgress(task, p)
		})
		if err == nil {
			return path, nil
		}

		lastErr = err
		logger.Debugf("Download attempt %d failed for task %s: %v", attempt+1, task.ID, err)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

// updateTaskProgress updates task progress from a backend sample
func (s *Service) updateTaskProgress(task *model.DownloadTask, p platform.Progress) {
	s.tasksMutex.Lock()
	if p.TotalBytes > 0 {
		percent := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
		task.Percent = int(percent)
		task.Progress = percent / 100.0
		task.FileSize = p.TotalBytes
	}
	if p.Speed != "" {
		task.Speed = p.Speed
	}
	if p.ETASec > 0 {
		task.ETASec = p.ETASec
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

func (s *Service) newTask(batchID string, index, total int, item model.BatchItem, format, resolution string) *model.DownloadTask {
	task := &model.DownloadTask{
		ID:         generateTaskID(),
		BatchID:    batchID,
		Index:      index,
		Total:      total,
		URL:        item.URL(),
		Title:      item.Title(),
		Format:     format,
		Resolution: resolution,
		Status:     model.TaskStatusPending,
		ETASec:     -1,
		StartedAt:  time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return task
}

func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

func (s *Service) finish(task *model.DownloadTask, status model.TaskStatus, lastError string) {
	s.tasksMutex.Lock()
	task.Status = status
	task.LastError = lastError
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// notifyUpdate hands a snapshot of task to the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate == nil {
		return
	}
	s.tasksMutex.RLock()
	snapshot := *task
	s.tasksMutex.RUnlock()
	s.onUpdate(&snapshot)
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "task-" + uuid.New().String()
}
