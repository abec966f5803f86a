// Package logger provides leveled logging on top of the standard log package
// and the append-only crash log the application keeps next to its settings.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/ytget/yt-dl/internal/apperr"
)

// LogFileName is the name of the log file inside the log directory.
const LogFileName = apperr.CrashLogName

// Logger writes [ERROR], [INFO] and [DEBUG] lines to stderr and, once Open
// has been called, to the log file as well.
type Logger struct {
	mu          sync.Mutex
	verbose     bool
	file        *os.File
	errorLogger *log.Logger
	infoLogger  *log.Logger
	debugLogger *log.Logger
}

var std = New(os.Stderr, false)

// New creates a logger writing to w.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{
		verbose:     verbose,
		errorLogger: log.New(w, "[ERROR] ", log.LstdFlags|log.Lmsgprefix),
		infoLogger:  log.New(w, "[INFO]  ", log.LstdFlags|log.Lmsgprefix),
		debugLogger: log.New(w, "[DEBUG] ", log.LstdFlags|log.Lmsgprefix),
	}
}

// Default returns the package level logger.
func Default() *Logger {
	return std
}

// Open starts a fresh log file in dir and tees all output to it. Any previous
// log is removed, matching the behaviour of earlier releases.
func (l *Logger) Open(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, LogFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to remove old log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	w := io.MultiWriter(os.Stderr, f)
	l.errorLogger.SetOutput(w)
	l.infoLogger.SetOutput(w)
	l.debugLogger.SetOutput(w)
	return path, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.errorLogger.SetOutput(os.Stderr)
	l.infoLogger.SetOutput(os.Stderr)
	l.debugLogger.SetOutput(os.Stderr)
	return err
}

// SetVerbose toggles debug output.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, v ...any) {
	l.errorLogger.Output(2, fmt.Sprintf(format, v...))
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, v ...any) {
	l.infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Debugf logs only in verbose mode.
func (l *Logger) Debugf(format string, v ...any) {
	l.mu.Lock()
	verbose := l.verbose
	l.mu.Unlock()
	if verbose {
		l.debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Errorf logs an error on the default logger.
func Errorf(format string, v ...any) {
	std.errorLogger.Output(2, fmt.Sprintf(format, v...))
}

// Infof logs an informational message on the default logger.
func Infof(format string, v ...any) {
	std.infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Debugf logs a debug message on the default logger.
func Debugf(format string, v ...any) {
	std.mu.Lock()
	verbose := std.verbose
	std.mu.Unlock()
	if verbose {
		std.debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}
