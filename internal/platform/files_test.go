package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestInstallDir(t *testing.T) {
	dir, err := InstallDir()
	if err != nil {
		t.Fatalf("Failed to get install directory: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("Expected absolute install directory, got %s", dir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileCommands(t *testing.T) {
	if runtime.GOOS != OSLinux && runtime.GOOS != OSDarwin && runtime.GOOS != OSWindows {
		t.Skip("unsupported operating system")
	}

	file := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(file, []byte("data"), DefaultFilePermissions); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	var calls []string
	orig := commandRunner
	commandRunner = func(name string, args ...string) error {
		calls = append(calls, name+" "+strings.Join(args, " "))
		return nil
	}
	defer func() { commandRunner = orig }()

	if err := OpenFileWithDefaultApp(file); err != nil {
		t.Fatalf("OpenFileWithDefaultApp failed: %v", err)
	}
	if err := OpenFileInManager(file); err != nil {
		t.Fatalf("OpenFileInManager failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("Expected 2 commands, got %d: %v", len(calls), calls)
	}
	if !strings.Contains(calls[0], file) {
		t.Errorf("Default app command should receive the file, got %s", calls[0])
	}
	if runtime.GOOS == OSLinux && !strings.HasSuffix(calls[1], filepath.Dir(file)) {
		t.Errorf("Linux file manager should open the parent directory, got %s", calls[1])
	}
}

func TestIsPermissionError(t *testing.T) {
	if !IsPermissionError(fmt.Errorf("copy: %w", os.ErrPermission)) {
		t.Error("Expected wrapped os.ErrPermission to be a permission error")
	}
	if IsPermissionError(os.ErrNotExist) {
		t.Error("os.ErrNotExist is not a permission error")
	}
	if IsPermissionError(nil) {
		t.Error("nil is not a permission error")
	}
}
