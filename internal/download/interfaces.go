package download

import (
	"context"
	"time"

	"github.com/ytget/yt-dl/internal/model"
)

// BatchDownloader defines the interface for the download service.
type BatchDownloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	DownloadBatch(ctx context.Context, items []model.BatchItem, format, resolution, destination string) model.DownloadResult
	GetTask(id string) (*model.DownloadTask, bool)
	GetBatchTasks(batchID string) []*model.DownloadTask

	// SetRetryPolicy configures how often a failed transfer is retried
	SetRetryPolicy(maxRetries int, delay time.Duration)
}
