package update

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/yt-dl/internal/apperr"
	"github.com/ytget/yt-dl/internal/platform"
)

// MetadataFile is the file inside the archive carrying the release version
const MetadataFile = "version.yaml"

type metadata struct {
	Version string `yaml:"version"`
}

// extractZip unpacks archivePath into dst. Entries that would land outside
// dst are rejected.
func extractZip(archivePath, dst string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	root, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dst, err)
	}
	if err := os.MkdirAll(root, platform.DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create %s: %w", root, err)
	}

	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path in archive: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, platform.DefaultDirPermissions); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), platform.DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = platform.DefaultFilePermissions
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return out.Close()
}

// listFiles returns every regular file under root
func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// readVersion finds the metadata file among files and returns its version
func readVersion(files []string) (string, error) {
	for _, f := range files {
		if filepath.Base(f) != MetadataFile {
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", MetadataFile, err)
		}
		var m metadata
		if err := yaml.Unmarshal(data, &m); err != nil {
			return "", apperr.Wrap(apperr.InvalidVersionFormat, "update", "the update carries an unreadable version file", err)
		}
		if strings.TrimSpace(m.Version) == "" {
			return "", apperr.New(apperr.InvalidVersionFormat, "update", "the update carries no version")
		}
		return strings.TrimSpace(m.Version), nil
	}
	return "", apperr.New(apperr.NotFound, "update", "The downloaded update does not contain "+MetadataFile+".")
}

// contentRoot returns the directory whose contents mirror the install
// directory: the single top-level directory of a source zipball, or root.
func contentRoot(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", root, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(root, entries[0].Name()), nil
	}
	return root, nil
}

// copyTree copies every file under src into dst keeping relative paths.
// A permission failure aborts with apperr.PermissionDenied.
func copyTree(src, dst string) error {
	files, err := listFiles(src)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", src, err)
	}

	for _, f := range files {
		rel, err := filepath.Rel(src, f)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", f, err)
		}
		if err := copyFileFunc(f, filepath.Join(dst, rel)); err != nil {
			if platform.IsPermissionError(err) {
				return apperr.Wrap(apperr.PermissionDenied, "update",
					"Apparently you don't have write permissions for \""+dst+"\".", err)
			}
			return apperr.Wrap(apperr.Internal, "update", "Copying the new files failed.", err)
		}
	}
	return nil
}

// copyFileFunc is replaced in tests
var copyFileFunc = copyFile

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), platform.DefaultDirPermissions); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
