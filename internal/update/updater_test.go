package update

import (
	"archive/zip"
	"bytes"
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/logger"
	"github.com/ytget/yt-dl/internal/network"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func serveZip(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func releaseZip(t *testing.T, ver string) []byte {
	return buildZip(t, map[string]string{
		"yt-dl-master/version.yaml":       "version: \"" + ver + "\"\n",
		"yt-dl-master/README.md":          "# yt-dl\n",
		"yt-dl-master/internal/ui/app.go": "package ui\n",
	})
}

type testRun struct {
	workDir    string
	installDir string
	stages     []Stage
	labels     []string
}

func newTestUpdater(t *testing.T, url, current string, packaged bool) (*Updater, *testRun) {
	t.Helper()
	run := &testRun{workDir: t.TempDir(), installDir: t.TempDir()}
	client := network.NewClient(network.Options{Timeout: 5 * time.Second, PerHostInterval: time.Millisecond})
	u := New(client, Options{
		URL:            url,
		CurrentVersion: current,
		Packaged:       packaged,
		InstallDir:     run.installDir,
		WorkDir:        run.workDir,
	})
	u.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC) }
	u.SetObserver(func(p Progress) {
		run.stages = append(run.stages, p.Stage)
		run.labels = append(run.labels, p.Label)
	})
	return u, run
}

func assertCleanedUp(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read work dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ArchivePrefix) {
			t.Errorf("temporary artifact left behind: %s", e.Name())
		}
	}
}

func assertStages(t *testing.T, got []Stage, want ...Stage) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRunNoUpdate(t *testing.T) {
	server := serveZip(t, releaseZip(t, "1.2.0"))
	u, run := newTestUpdater(t, server.URL, "1.2", false)

	outcome := u.Run(context.Background())

	if outcome.Kind != NoUpdate {
		t.Fatalf("expected NoUpdate, got %v (%v)", outcome.Kind, outcome.Err)
	}
	if outcome.Notice.Message != MsgNoUpdate || outcome.Notice.Severity != apperr.SeverityInfo {
		t.Errorf("unexpected notice %+v", outcome.Notice)
	}
	if outcome.RestartRequired() {
		t.Error("no restart expected")
	}
	assertStages(t, run.stages, Fetching, Extracting, Verifying, CleaningUp, Done)
	assertCleanedUp(t, run.workDir)

	if _, err := os.Stat(filepath.Join(run.installDir, "README.md")); !os.IsNotExist(err) {
		t.Error("no files should be copied without an update")
	}
}

func TestRunSuccess(t *testing.T) {
	server := serveZip(t, releaseZip(t, "1.10.0"))
	u, run := newTestUpdater(t, server.URL, "1.2.0", false)

	outcome := u.Run(context.Background())

	if outcome.Kind != Success {
		t.Fatalf("expected Success, got %v (%v)", outcome.Kind, outcome.Err)
	}
	want := "Updated successfully! (1.2.0 -> 1.10.0)\nThe application will restart now for the update to take effect."
	if outcome.Notice.Message != want {
		t.Errorf("unexpected message %q", outcome.Notice.Message)
	}
	if !outcome.RestartRequired() {
		t.Error("restart expected after a successful update")
	}
	assertStages(t, run.stages, Fetching, Extracting, Verifying, Applying, CleaningUp, Done)
	assertCleanedUp(t, run.workDir)

	data, err := os.ReadFile(filepath.Join(run.installDir, "internal", "ui", "app.go"))
	if err != nil {
		t.Fatalf("expected nested file to be copied with the top directory stripped: %v", err)
	}
	if string(data) != "package ui\n" {
		t.Errorf("unexpected content %q", data)
	}
	if _, err := os.Stat(filepath.Join(run.installDir, "yt-dl-master")); !os.IsNotExist(err) {
		t.Error("top level archive directory should not be recreated")
	}
}

func TestRunPackaged(t *testing.T) {
	server := serveZip(t, releaseZip(t, "2.0.0"))
	u, run := newTestUpdater(t, server.URL, "1.0.0", true)

	outcome := u.Run(context.Background())

	if outcome.Kind != Unsupported {
		t.Fatalf("expected Unsupported, got %v (%v)", outcome.Kind, outcome.Err)
	}
	if outcome.Notice.Message != MsgUnsupported || !apperr.IsKind(outcome.Err, apperr.UnsupportedPlatform) {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	assertStages(t, run.stages, Fetching, Extracting, Verifying, CleaningUp, Done)
	assertCleanedUp(t, run.workDir)
}

func TestRunLogsExpectedOutcomesAsInfo(t *testing.T) {
	logDir := t.TempDir()
	if _, err := logger.Default().Open(logDir); err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer logger.Default().Close()

	packaged := serveZip(t, releaseZip(t, "2.0.0"))
	u, _ := newTestUpdater(t, packaged.URL, "1.0.0", true)
	if outcome := u.Run(context.Background()); outcome.Kind != Unsupported {
		t.Fatalf("expected Unsupported, got %v", outcome.Kind)
	}

	current := serveZip(t, releaseZip(t, "1.0.0"))
	u, _ = newTestUpdater(t, current.URL, "1.0.0", false)
	if outcome := u.Run(context.Background()); outcome.Kind != NoUpdate {
		t.Fatalf("expected NoUpdate, got %v", outcome.Kind)
	}

	logger.Default().Close()
	data, err := os.ReadFile(filepath.Join(logDir, logger.LogFileName))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "[ERROR]") {
		t.Errorf("expected outcomes must not be logged as errors, got %q", content)
	}
	if !strings.Contains(content, "[INFO]  Update finished: unsupported") || !strings.Contains(content, "[INFO]  Update finished: no update") {
		t.Errorf("expected info lines for both outcomes, got %q", content)
	}
}

func TestRunPermissionDenied(t *testing.T) {
	orig := copyFileFunc
	copyFileFunc = func(src, dst string) error {
		return &fs.PathError{Op: "open", Path: dst, Err: fs.ErrPermission}
	}
	defer func() { copyFileFunc = orig }()

	server := serveZip(t, releaseZip(t, "1.1.0"))
	u, run := newTestUpdater(t, server.URL, "1.0.0", false)

	outcome := u.Run(context.Background())

	if outcome.Kind != Failed {
		t.Fatalf("expected Failed, got %v", outcome.Kind)
	}
	if !apperr.IsKind(outcome.Err, apperr.PermissionDenied) {
		t.Errorf("expected PermissionDenied, got %v", outcome.Err)
	}
	want := "Apparently you don't have write permissions for \"" + run.installDir + "\"."
	if outcome.Notice.Message != want {
		t.Errorf("expected message %q, got %q", want, outcome.Notice.Message)
	}
	assertStages(t, run.stages, Fetching, Extracting, Verifying, Applying, CleaningUp, Done)
	assertCleanedUp(t, run.workDir)
}

func TestRunReadOnlyInstallDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	server := serveZip(t, releaseZip(t, "1.1.0"))
	u, run := newTestUpdater(t, server.URL, "1.0.0", false)
	if err := os.Chmod(run.installDir, 0555); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	defer os.Chmod(run.installDir, 0755)

	outcome := u.Run(context.Background())

	if !apperr.IsKind(outcome.Err, apperr.PermissionDenied) {
		t.Errorf("expected PermissionDenied, got %v", outcome.Err)
	}
	assertCleanedUp(t, run.workDir)
}

func TestRunFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	u, run := newTestUpdater(t, server.URL, "1.0.0", false)

	outcome := u.Run(context.Background())

	if outcome.Kind != Failed || !apperr.IsKind(outcome.Err, apperr.NetworkFailure) {
		t.Errorf("expected network failure, got %v (%v)", outcome.Kind, outcome.Err)
	}
	assertStages(t, run.stages, Fetching, CleaningUp, Done)
	assertCleanedUp(t, run.workDir)
}

func TestRunInvalidArchive(t *testing.T) {
	server := serveZip(t, []byte("this is not a zip"))
	u, run := newTestUpdater(t, server.URL, "1.0.0", false)

	outcome := u.Run(context.Background())

	if outcome.Kind != Failed {
		t.Errorf("expected Failed, got %v", outcome.Kind)
	}
	assertCleanedUp(t, run.workDir)
}

func TestRunVersionProblems(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		kind  apperr.Kind
	}{
		{"missing metadata", map[string]string{"repo/README.md": "x"}, apperr.NotFound},
		{"invalid version", map[string]string{"repo/version.yaml": "version: 1.x.0\n"}, apperr.InvalidVersionFormat},
		{"empty version", map[string]string{"repo/version.yaml": "name: yt-dl\n"}, apperr.InvalidVersionFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serveZip(t, buildZip(t, tt.files))
			u, run := newTestUpdater(t, server.URL, "1.0.0", false)

			outcome := u.Run(context.Background())

			if outcome.Kind != Failed || !apperr.IsKind(outcome.Err, tt.kind) {
				t.Errorf("expected %v failure, got %v (%v)", tt.kind, outcome.Kind, outcome.Err)
			}
			assertCleanedUp(t, run.workDir)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	server := serveZip(t, releaseZip(t, "9.0.0"))
	u, run := newTestUpdater(t, server.URL, "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	u.SetObserver(func(p Progress) {
		run.stages = append(run.stages, p.Stage)
		if p.Stage == Extracting {
			cancel()
		}
	})

	outcome := u.Run(ctx)

	if outcome.Kind != Failed || outcome.Notice.Message != MsgCancelled {
		t.Errorf("expected cancelled outcome, got %+v", outcome)
	}
	assertStages(t, run.stages, Fetching, Extracting, CleaningUp, Done)
	assertCleanedUp(t, run.workDir)
	if _, err := os.Stat(filepath.Join(run.installDir, "README.md")); !os.IsNotExist(err) {
		t.Error("cancelled update must not copy files")
	}
}

func TestExtractZipRejectsSlip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	data := buildZip(t, map[string]string{"../evil.txt": "pwned"})
	if err := os.WriteFile(archive, data, 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	dst := filepath.Join(dir, "out")
	if err := extractZip(archive, dst); err == nil {
		t.Fatal("expected zip slip entry to be rejected")
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(err) {
		t.Error("file escaped the extraction directory")
	}
}

func TestContentRoot(t *testing.T) {
	single := t.TempDir()
	os.MkdirAll(filepath.Join(single, "repo-main"), 0755)
	if got, _ := contentRoot(single); got != filepath.Join(single, "repo-main") {
		t.Errorf("expected single top directory to be stripped, got %s", got)
	}

	flat := t.TempDir()
	os.WriteFile(filepath.Join(flat, "version.yaml"), []byte("version: 1.0\n"), 0644)
	os.MkdirAll(filepath.Join(flat, "bin"), 0755)
	if got, _ := contentRoot(flat); got != flat {
		t.Errorf("expected root to be kept, got %s", got)
	}
}

func TestStageLabels(t *testing.T) {
	tests := []struct {
		stage Stage
		label string
	}{
		{Fetching, "1 / 5\nFetching the latest version from Github..."},
		{Extracting, "2 / 5\nExtracting ZIP archive..."},
		{Verifying, "3 / 5\nVerifying files..."},
		{Applying, "4 / 5\nCopying new files..."},
		{CleaningUp, "5 / 5\nCleaning up..."},
	}
	for _, tt := range tests {
		if got := tt.stage.Label(); got != tt.label {
			t.Errorf("%v: expected %q, got %q", tt.stage, tt.label, got)
		}
	}
}
