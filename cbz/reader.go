package cbz

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/ImSakushi/Spreadify/format"
)

// Reader-related errors.
var (
	ErrInvalidArchive = errors.New("cbz: invalid or corrupted archive")
	ErrUnsafePath     = errors.New("cbz: archive entry escapes the destination directory")
)

// entry is one page image inside the archive. name is the decoded entry
// name used for ordering and extraction.
type entry struct {
	file *zip.File
	name string
}

// Reader provides ordered access to the page images of a comic archive.
type Reader struct {
	zr       *zip.ReadCloser
	zrReader *zip.Reader // For when opened from io.ReaderAt
	pages    []entry
}

// Open opens a comic archive from a path.
func Open(filePath string) (*Reader, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	r := &Reader{zr: zr}
	r.init(&zr.Reader)
	return r, nil
}

// OpenReader opens a comic archive from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	r := &Reader{zrReader: zr}
	r.init(zr)
	return r, nil
}

// init collects the archive's page images in reading order: every image
// entry, sorted lexicographically by decoded name. Non-image entries
// (ComicInfo.xml, thumbnail databases, directories) are ignored. An archive
// with no images is valid and yields an empty page list.
func (r *Reader) init(zr *zip.Reader) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := decodeEntryName(f)
		if !format.IsPage(name) {
			continue
		}
		r.pages = append(r.pages, entry{file: f, name: name})
	}

	sort.Slice(r.pages, func(i, j int) bool {
		return r.pages[i].name < r.pages[j].name
	})
}

// decodeEntryName returns the entry name in UTF-8. Entries flagged as
// non-UTF-8 are decoded from Shift-JIS, the encoding used by most manga
// archives produced on Windows; names that fail to decode pass through
// unchanged.
func decodeEntryName(f *zip.File) string {
	if !f.NonUTF8 {
		return f.Name
	}

	decoded, _, err := transform.String(japanese.ShiftJIS.NewDecoder(), f.Name)
	if err != nil {
		return f.Name
	}
	return decoded
}

// PageCount returns the number of page images in the archive.
func (r *Reader) PageCount() int {
	return len(r.pages)
}

// Pages returns the decoded page entry names in reading order.
func (r *Reader) Pages() []string {
	names := make([]string, 0, len(r.pages))
	for _, p := range r.pages {
		names = append(names, p.name)
	}
	return names
}

// ExtractTo writes every page image into destDir, preserving entry-relative
// paths, and returns the ordered list of extracted file paths. Entry names
// that would escape destDir are rejected.
func (r *Reader) ExtractTo(destDir string) ([]string, error) {
	paths := make([]string, 0, len(r.pages))

	for _, p := range r.pages {
		rel := filepath.FromSlash(p.name)
		if !filepath.IsLocal(rel) {
			return nil, fmt.Errorf("%w: %s", ErrUnsafePath, p.name)
		}

		dst := filepath.Join(destDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, fmt.Errorf("create extraction directory: %w", err)
		}

		if err := extractFile(p.file, dst); err != nil {
			return nil, fmt.Errorf("extract %s: %w", p.name, err)
		}
		paths = append(paths, dst)
	}

	return paths, nil
}

// extractFile copies one archive entry to dst.
func extractFile(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(out, rc)
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	return copyErr
}

// Metadata parses the archive's ComicInfo.xml entry if present. An archive
// without one yields a zero ComicInfo and no error.
func (r *Reader) Metadata() (ComicInfo, error) {
	zr := r.getZipReader()
	for _, f := range zr.File {
		if strings.EqualFold(filepath.Base(f.Name), "ComicInfo.xml") {
			rc, err := f.Open()
			if err != nil {
				return ComicInfo{}, fmt.Errorf("open ComicInfo.xml: %w", err)
			}
			defer rc.Close()
			return parseComicInfo(rc)
		}
	}
	return ComicInfo{}, nil
}

// Close closes the reader and releases resources.
func (r *Reader) Close() error {
	if r.zr != nil {
		return r.zr.Close()
	}
	return nil
}

// getZipReader returns the appropriate zip.Reader.
func (r *Reader) getZipReader() *zip.Reader {
	if r.zr != nil {
		return &r.zr.Reader
	}
	return r.zrReader
}
