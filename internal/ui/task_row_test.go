package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/yt-dl/internal/model"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		if got := formatFileSize(tt.bytes); got != tt.expected {
			t.Errorf("formatFileSize(%d) = %s; expected %s", tt.bytes, got, tt.expected)
		}
	}
}

func TestEffectivePercent(t *testing.T) {
	tests := []struct {
		name     string
		task     model.DownloadTask
		expected int
	}{
		{"completed", model.DownloadTask{Status: model.TaskStatusCompleted}, 100},
		{"from percent", model.DownloadTask{Status: model.TaskStatusDownloading, Percent: 42}, 42},
		{"from progress", model.DownloadTask{Status: model.TaskStatusDownloading, Progress: 0.256}, 26},
		{"tiny progress", model.DownloadTask{Status: model.TaskStatusDownloading, Progress: 0.001}, 1},
		{"clamped", model.DownloadTask{Status: model.TaskStatusDownloading, Percent: 140}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effectivePercent(&tt.task); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestSpeedETAText(t *testing.T) {
	tests := []struct {
		name     string
		task     model.DownloadTask
		expected string
	}{
		{"speed and eta", model.DownloadTask{Status: model.TaskStatusDownloading, Speed: "1.2MB/s", ETASec: 75}, "1.2MB/s · 01:15"},
		{"nothing known", model.DownloadTask{Status: model.TaskStatusDownloading}, DashPlaceholder},
		{"skipped shows reason", model.DownloadTask{Status: model.TaskStatusSkipped, LastError: "no matching stream"}, "no matching stream"},
		{"completed shows size", model.DownloadTask{Status: model.TaskStatusCompleted, FileSize: 2048}, "2.0 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := speedETAText(&tt.task); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTaskRowButtons(t *testing.T) {
	test.NewApp()

	task := &model.DownloadTask{
		ID:     "task-1",
		Index:  2,
		Total:  5,
		Title:  "Clip",
		Status: model.TaskStatusDownloading,
	}
	row := NewTaskRow(task, NewLocalization())

	if !row.revealBtn.Disabled() {
		t.Error("reveal should be disabled while downloading")
	}
	if row.positionLabel.Text != "2 of 5" {
		t.Errorf("unexpected position %q", row.positionLabel.Text)
	}

	var revealed string
	row.SetCallbacks(func(p string) { revealed = p }, nil, nil)

	done := *task
	done.Status = model.TaskStatusCompleted
	done.OutputPath = "/tmp/videos/Clip.mp4"
	row.UpdateTask(&done)

	if row.revealBtn.Disabled() {
		t.Error("reveal should be enabled once the file exists")
	}
	test.Tap(row.revealBtn)
	if revealed != "/tmp/videos/Clip.mp4" {
		t.Errorf("expected reveal of output path, got %q", revealed)
	}
}
