// Package convert runs ffmpeg over downloaded files: audio extraction to mp3
// or H.264 re-compression. Progress is derived from the ffprobe duration and
// ffmpeg's out_time_us progress lines.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/model"
)

// Mode selects what a conversion produces
type Mode string

const (
	// ModeExtractAudio drops the video track and encodes the audio to mp3
	ModeExtractAudio Mode = "extract_audio"
	// ModeCompress re-encodes to H.264/AAC in an mp4 container
	ModeCompress Mode = "compress"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeExtractAudio || m == ModeCompress
}

// FFmpeg constants for compression settings
const (
	// Video codec settings
	VideoCodec  = "libx264"
	VideoPreset = "medium"
	VideoCRF    = "23"

	// Audio codec settings
	AudioCodec   = "aac"
	AudioBitrate = "128k"

	// Audio extraction settings
	MP3Codec   = "libmp3lame"
	MP3Quality = "2"

	// Container flags
	FastStartFlag = "+faststart"

	// Output naming
	CompressedSuffix   = "-compressed"
	OutputExtensionMP4 = ".mp4"
	OutputExtensionMP3 = ".mp3"

	// Executable and I/O constants
	DefaultFFmpegCommand  = "ffmpeg"
	DefaultFFprobeCommand = "ffprobe"
	FFprobeLogLevel       = "error"
	FFprobeShowEntries    = "format=duration"
	FFprobeOutputFormat   = "csv=p=0"
	ProgressPipeTarget    = "pipe:2"
	ProgressTimePrefix    = "out_time_us="
	TaskIDPrefix          = "convert-"
)

// Service handles conversion operations
type Service struct {
	runner      Runner
	ffmpegPath  string
	ffprobePath string

	tasks      map[string]*model.ConversionTask
	cancels    map[string]context.CancelFunc
	tasksMutex sync.RWMutex
	wg         sync.WaitGroup
	onUpdate   func(*model.ConversionTask) // callback for UI updates
}

// NewService creates a conversion service running the given tools. Empty
// paths fall back to looking up ffmpeg and ffprobe on PATH.
func NewService(ffmpegPath, ffprobePath string) *Service {
	return NewServiceWithRunner(NewCommandRunner(), ffmpegPath, ffprobePath)
}

// NewServiceWithRunner creates a conversion service on top of runner
func NewServiceWithRunner(runner Runner, ffmpegPath, ffprobePath string) *Service {
	if ffmpegPath == "" {
		ffmpegPath = DefaultFFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobeCommand
	}
	return &Service{
		runner:      runner,
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		tasks:       make(map[string]*model.ConversionTask),
		cancels:     make(map[string]context.CancelFunc),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// StartConversion starts converting inputPath in the background
func (s *Service) StartConversion(inputPath string, mode Mode) (*model.ConversionTask, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown conversion mode: %s", mode)
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	// Check if a conversion is already in progress for this file
	for _, task := range s.tasks {
		if task.InputPath == inputPath && !task.Status.IsFinished() {
			return nil, fmt.Errorf("conversion already in progress for file: %s", inputPath)
		}
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	outputPath := OutputPath(inputPath, mode)
	if outputPath == inputPath {
		return nil, fmt.Errorf("file is already converted: %s", inputPath)
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		Mode:       string(mode),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.tasks[task.ID] = task
	s.cancels[task.ID] = cancel

	s.wg.Add(1)
	go s.convert(ctx, task, mode)

	return task, nil
}

// ConvertAll starts one conversion per file. Files that cannot be started
// are reported in the error slice; the others keep running.
func (s *Service) ConvertAll(files []string, mode Mode) ([]*model.ConversionTask, []error) {
	var tasks []*model.ConversionTask
	var errs []error
	for _, f := range files {
		task, err := s.StartConversion(f, mode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, errs
}

// StopConversion stops a running conversion task
func (s *Service) StopConversion(taskID string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[taskID]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task not found: %s", taskID)
	}
	if task.Status.IsFinished() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion task is not active: %s", task.Status)
	}
	task.Status = model.TaskStatusStopping
	cancel := s.cancels[taskID]
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	cancel()
	return nil
}

// GetTask returns a conversion task by ID
func (s *Service) GetTask(taskID string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// Wait blocks until every started conversion has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// convert performs the actual conversion
func (s *Service) convert(ctx context.Context, task *model.ConversionTask, mode Mode) {
	defer s.wg.Done()
	defer func() {
		s.tasksMutex.Lock()
		if cancel, ok := s.cancels[task.ID]; ok {
			cancel()
			delete(s.cancels, task.ID)
		}
		s.tasksMutex.Unlock()
	}()

	// Duration is only needed for progress; run without it when ffprobe fails
	duration, err := s.getDuration(ctx, task.InputPath)
	if err != nil {
		logger.Errorf("Failed to get duration of %s: %v", task.InputPath, err)
	}

	s.tasksMutex.Lock()
	if task.Status == model.TaskStatusPending {
		task.Status = model.TaskStatusDownloading
	}
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	args := BuildFFmpegArgs(mode, task.InputPath, task.OutputPath)
	err = s.runner.Stream(ctx, s.ffmpegPath, args, func(line string) {
		s.parseProgress(task, line, duration)
	})

	s.tasksMutex.Lock()
	switch {
	case ctx.Err() != nil:
		task.Status = model.TaskStatusStopped
		os.Remove(task.OutputPath)
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		os.Remove(task.OutputPath)
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	if err != nil && ctx.Err() == nil {
		logger.Errorf("Conversion of %s failed: %v", task.InputPath, err)
	}
	s.notifyUpdate(task)
}

// BuildFFmpegArgs builds the ffmpeg command arguments for mode
func BuildFFmpegArgs(mode Mode, inputPath, outputPath string) []string {
	args := []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
	}
	switch mode {
	case ModeExtractAudio:
		args = append(args,
			"-vn", // Drop video
			"-c:a", MP3Codec,
			"-q:a", MP3Quality,
		)
	default:
		args = append(args,
			"-c:v", VideoCodec, // Video codec
			"-preset", VideoPreset, // Encoding preset
			"-crf", VideoCRF, // Constant rate factor
			"-c:a", AudioCodec, // Audio codec
			"-b:a", AudioBitrate, // Audio bitrate
			"-movflags", FastStartFlag, // MP4 optimization
		)
	}
	return append(args,
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	)
}

// getDuration gets the duration of a media file in seconds using ffprobe
func (s *Service) getDuration(ctx context.Context, filePath string) (float64, error) {
	output, err := s.runner.Output(ctx, s.ffprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// parseProgress handles one ffmpeg progress line: out_time_us=123456
func (s *Service) parseProgress(task *model.ConversionTask, line string, totalDuration float64) {
	if totalDuration <= 0 || !strings.HasPrefix(line, ProgressTimePrefix) {
		return
	}
	timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return
	}

	progress := float64(timeMicroseconds) / 1000000.0 / totalDuration
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0 {
		progress = 0
	}

	s.tasksMutex.Lock()
	task.Progress = progress
	task.Percent = int(progress * 100)
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate hands a snapshot of task to the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate == nil {
		return
	}
	s.tasksMutex.RLock()
	snapshot := *task
	s.tasksMutex.RUnlock()
	s.onUpdate(&snapshot)
}

// OutputPath returns where a conversion of inputPath in mode is written
func OutputPath(inputPath string, mode Mode) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	if mode == ModeExtractAudio {
		return baseName + OutputExtensionMP3
	}
	return baseName + CompressedSuffix + OutputExtensionMP4
}

// generateTaskID generates a unique, time ordered task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
