package cbz

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ImSakushi/Spreadify/format"
)

// Pack walks sourceDir recursively and writes every image file found into a
// new archive at archivePath, using slash-separated paths relative to
// sourceDir as entry names, with deflate compression. Non-image files are
// skipped. An empty source directory produces a valid empty archive.
func Pack(sourceDir, archivePath string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !format.IsPage(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, filepath.ToSlash(rel))
	})

	if closeErr := zw.Close(); walkErr == nil {
		walkErr = closeErr
	}
	if closeErr := out.Close(); walkErr == nil {
		walkErr = closeErr
	}

	if walkErr != nil {
		// Leave no partial archive behind.
		os.Remove(archivePath)
		return fmt.Errorf("pack archive: %w", walkErr)
	}
	return nil
}

// addFile writes one file into the archive under the given entry name.
func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// zip.Writer.Create uses deflate compression.
	w, err := zw.Create(name)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
