// Package export materialises a stored project outside the database: as a
// directory tree on disk or as a zip archive.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"sitegen_server/internal/types"
)

// WriteProject writes every file under dir and returns how many were written.
// Filenames that would land outside dir are rejected before anything is written.
func WriteProject(dir string, files []types.FileRecord) (int, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("resolving output dir: %w", err)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		p, err := safeJoin(root, f.Filename)
		if err != nil {
			return 0, err
		}
		paths[i] = p
	}

	written := 0
	for i, f := range files {
		if err := os.MkdirAll(filepath.Dir(paths[i]), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", f.Filename, err)
		}
		if err := os.WriteFile(paths[i], fileBytes(f), 0o644); err != nil {
			return written, fmt.Errorf("failed to write file %s: %w", f.Filename, err)
		}
		written++
	}
	log.Printf("Wrote %d files to %s", written, root)
	return written, nil
}

// CheckNames reports the first filename that cannot be archived or written
// inside the project root.
func CheckNames(files []types.FileRecord) error {
	for _, f := range files {
		if f.Filename == "" || !filepath.IsLocal(f.Filename) {
			return fmt.Errorf("refusing to archive %q: path escapes project", f.Filename)
		}
	}
	return nil
}

// WriteZip streams every file into a zip archive on w. Names are checked
// before the first byte is written.
func WriteZip(w io.Writer, files []types.FileRecord) error {
	if err := CheckNames(files); err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	for _, f := range files {
		name := filepath.ToSlash(filepath.Clean(f.Filename))
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("adding %s to archive: %w", f.Filename, err)
		}
		if _, err := entry.Write(fileBytes(f)); err != nil {
			return fmt.Errorf("writing %s to archive: %w", f.Filename, err)
		}
	}
	return zw.Close()
}

func safeJoin(root, name string) (string, error) {
	if name == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("refusing to write %q: path escapes output dir", name)
	}
	p := filepath.Join(root, name)
	if !strings.HasPrefix(p, root+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing to write %q: path escapes output dir", name)
	}
	return p, nil
}

func fileBytes(f types.FileRecord) []byte {
	if f.IsBinary() {
		return f.ContentBinary
	}
	return []byte(f.Content)
}
