package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ytget/yt-dl/internal/model"
)

var _ Converter = (*Service)(nil)

type fakeRunner struct {
	duration string
	probeErr error
	lines    []string
	runErr   error
	block    bool

	mu    sync.Mutex
	calls [][]string
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.record(name, args)
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return []byte(f.duration + "\n"), nil
}

func (f *fakeRunner) Stream(ctx context.Context, name string, args []string, onLine func(string)) error {
	f.record(name, args)
	for _, l := range f.lines {
		onLine(l)
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.runErr != nil {
		return f.runErr
	}
	// ffmpeg writes the output file last
	return os.WriteFile(args[len(args)-1], []byte("converted"), 0644)
}

func (f *fakeRunner) record(name string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{name}, args...))
}

func tempVideo(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}

func TestNewService(t *testing.T) {
	service := NewService("", "/opt/ffprobe")

	if service.ffmpegPath != DefaultFFmpegCommand {
		t.Errorf("Expected default ffmpeg path, got %s", service.ffmpegPath)
	}
	if service.ffprobePath != "/opt/ffprobe" {
		t.Errorf("Expected configured ffprobe path, got %s", service.ffprobePath)
	}
	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		mode     Mode
		expected string
	}{
		{"/path/to/video.mp4", ModeCompress, "/path/to/video-compressed.mp4"},
		{"/path/to/video.mkv", ModeCompress, "/path/to/video-compressed.mp4"},
		{"video.avi", ModeCompress, "video-compressed.mp4"},
		{"/no/ext/file", ModeCompress, "/no/ext/file-compressed.mp4"},
		{"/path/to/video.mp4", ModeExtractAudio, "/path/to/video.mp3"},
		{"/path/to/song.webm", ModeExtractAudio, "/path/to/song.mp3"},
	}

	for _, test := range tests {
		result := OutputPath(test.input, test.mode)
		if result != test.expected {
			t.Errorf("OutputPath(%s, %s) = %s, expected %s", test.input, test.mode, result, test.expected)
		}
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected []string
	}{
		{
			mode: ModeCompress,
			expected: []string{
				"-y",
				"-i", "/input.mp4",
				"-c:v", VideoCodec,
				"-preset", VideoPreset,
				"-crf", VideoCRF,
				"-c:a", AudioCodec,
				"-b:a", AudioBitrate,
				"-movflags", FastStartFlag,
				"-progress", "pipe:2",
				"-nostats",
				"/output",
			},
		},
		{
			mode: ModeExtractAudio,
			expected: []string{
				"-y",
				"-i", "/input.mp4",
				"-vn",
				"-c:a", MP3Codec,
				"-q:a", MP3Quality,
				"-progress", "pipe:2",
				"-nostats",
				"/output",
			},
		},
	}

	for _, tt := range tests {
		args := BuildFFmpegArgs(tt.mode, "/input.mp4", "/output")
		if strings.Join(args, " ") != strings.Join(tt.expected, " ") {
			t.Errorf("%s: expected %v, got %v", tt.mode, tt.expected, args)
		}
	}
}

func TestStartConversion_Errors(t *testing.T) {
	service := NewServiceWithRunner(&fakeRunner{duration: "10"}, "", "")

	_, err := service.StartConversion("/path/to/nonexistent/file.mp4", ModeCompress)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}

	_, err = service.StartConversion(tempVideo(t, "a.mp4"), Mode("gif"))
	if err == nil {
		t.Error("Expected error for unknown mode")
	}

	_, err = service.StartConversion(tempVideo(t, "song.mp3"), ModeExtractAudio)
	if err == nil || !strings.Contains(err.Error(), "already converted") {
		t.Errorf("Expected 'already converted' error, got: %v", err)
	}
}

func TestStartConversion_Completes(t *testing.T) {
	runner := &fakeRunner{
		duration: "10.0",
		lines:    []string{"frame=1", ProgressTimePrefix + "5000000", ProgressTimePrefix + "bad", ProgressTimePrefix + "20000000"},
	}
	service := NewServiceWithRunner(runner, "/bin/ffmpeg", "/bin/ffprobe")

	var mu sync.Mutex
	var percents []int
	service.SetUpdateCallback(func(task *model.ConversionTask) {
		mu.Lock()
		percents = append(percents, task.Percent)
		mu.Unlock()
	})

	input := tempVideo(t, "clip.mp4")
	task, err := service.StartConversion(input, ModeExtractAudio)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	service.Wait()

	got, exists := service.GetTask(task.ID)
	if !exists {
		t.Fatal("Task should exist in service")
	}
	if got.Status != model.TaskStatusCompleted || got.Percent != 100 {
		t.Errorf("Expected completed task, got %s %d%% (%s)", got.Status, got.Percent, got.LastError)
	}
	if _, err := os.Stat(got.OutputPath); err != nil {
		t.Errorf("Expected output file %s: %v", got.OutputPath, err)
	}

	foundHalf := false
	for _, p := range percents {
		if p == 50 {
			foundHalf = true
		}
		if p > 100 {
			t.Errorf("Progress exceeded 100%%: %d", p)
		}
	}
	if !foundHalf {
		t.Errorf("Expected a 50%% progress update, got %v", percents)
	}

	if runner.calls[0][0] != "/bin/ffprobe" || runner.calls[1][0] != "/bin/ffmpeg" {
		t.Errorf("Expected configured tool paths, got %v", runner.calls)
	}
}

func TestStartConversion_FailureRemovesOutput(t *testing.T) {
	runner := &fakeRunner{probeErr: errors.New("ffprobe missing"), runErr: errors.New("exit status 1")}
	service := NewServiceWithRunner(runner, "", "")

	input := tempVideo(t, "clip.mp4")
	task, err := service.StartConversion(input, ModeCompress)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	service.Wait()

	got, _ := service.GetTask(task.ID)
	if got.Status != model.TaskStatusError || got.LastError == "" {
		t.Errorf("Expected error status, got %s", got.Status)
	}
	if _, err := os.Stat(got.OutputPath); !os.IsNotExist(err) {
		t.Error("Partial output should be removed")
	}
}

func TestStopConversion(t *testing.T) {
	runner := &fakeRunner{duration: "10", block: true}
	service := NewServiceWithRunner(runner, "", "")

	started := make(chan struct{}, 1)
	service.SetUpdateCallback(func(task *model.ConversionTask) {
		if task.Status == model.TaskStatusDownloading {
			select {
			case started <- struct{}{}:
			default:
			}
		}
	})

	task, err := service.StartConversion(tempVideo(t, "clip.mp4"), ModeCompress)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	<-started

	// Second conversion of the same file is rejected while the first runs
	if _, err := service.StartConversion(task.InputPath, ModeCompress); err == nil || !strings.Contains(err.Error(), "already in progress") {
		t.Errorf("Expected 'already in progress' error, got: %v", err)
	}

	if err := service.StopConversion(task.ID); err != nil {
		t.Fatalf("StopConversion failed: %v", err)
	}
	service.Wait()

	got, _ := service.GetTask(task.ID)
	if got.Status != model.TaskStatusStopped {
		t.Errorf("Expected stopped task, got %s", got.Status)
	}
	if err := service.StopConversion(task.ID); err == nil {
		t.Error("Expected error when stopping a finished task")
	}
	if err := service.StopConversion("missing"); err == nil {
		t.Error("Expected error for unknown task")
	}
}

func TestConvertAll(t *testing.T) {
	service := NewServiceWithRunner(&fakeRunner{duration: "1"}, "", "")

	files := []string{tempVideo(t, "a.mp4"), "/missing.mp4", tempVideo(t, "b.webm")}
	tasks, errs := service.ConvertAll(files, ModeExtractAudio)
	service.Wait()

	if len(tasks) != 2 {
		t.Errorf("Expected 2 tasks, got %d", len(tasks))
	}
	if len(errs) != 1 {
		t.Errorf("Expected 1 error, got %v", errs)
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}
	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got: %s", TaskIDPrefix, id1)
	}
}
