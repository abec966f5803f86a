package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask tracks one item of a download batch
type DownloadTask struct {
	ID         string
	BatchID    string
	Index      int // 1-based position within the batch
	Total      int // batch size
	URL        string
	Title      string
	Format     string
	Resolution string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	FileSize   int64     // file size in bytes
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// ConversionTask represents a single ffmpeg run over a downloaded file
type ConversionTask struct {
	ID         string
	Mode       string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return dt.URL
}

// GetPositionString renders "Downloading 2 of 5" style positions
func (dt *DownloadTask) GetPositionString() string {
	if dt.Total <= 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d", dt.Index, dt.Total)
}
