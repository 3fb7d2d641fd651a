// Package spreadify detects and merges double-page spreads in comic book
// archives. It reads the ordered page images of a CBZ file, decides which
// adjacent pairs together form a single artwork split across two files,
// stitches each such pair into one wide image, and repackages the result
// into a sibling archive preserving page order.
//
// Basic usage:
//
//	result, err := spreadify.Process("volume01.cbz")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Printf("%d spreads merged into %s\n", result.MergeCount(), result.Output)
//
// With options:
//
//	result, err := spreadify.Open("volume01.cbz").
//	    BorderSize(8).
//	    BlackBorderRatio(0.5).
//	    Process()
//
// For advanced use cases, the lower-level cbz, detect, compose, and
// sequence packages are also available.
package spreadify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ImSakushi/Spreadify/cbz"
	"github.com/ImSakushi/Spreadify/model"
	"github.com/ImSakushi/Spreadify/sequence"
)

// OutputSuffix is appended to the archive basename of processed output.
const OutputSuffix = "_fused"

// Result describes the outcome of processing one archive.
type Result struct {
	Archive  string               // Input archive path
	Output   string               // Output archive path (sibling, _fused suffix)
	Sequence model.OutputSequence // Output slots in order
}

// MergeCount returns the number of spreads merged.
func (r *Result) MergeCount() int {
	return r.Sequence.MergeCount()
}

// PageCount returns the number of source pages consumed.
func (r *Result) PageCount() int {
	return r.Sequence.SourceCount()
}

// Process processes archivePath with default options. The output archive is
// written next to the input as <name>_fused.<ext>.
func Process(archivePath string) (*Result, error) {
	return ProcessWithOptions(archivePath, defaultOptions())
}

// ProcessWithOptions processes one archive: extract the ordered page
// images into a work area, merge detected spreads, and pack the fused
// sequence into a sibling archive. The final archive appears only after
// the whole pipeline succeeded; a failed run leaves no partial output.
func ProcessWithOptions(archivePath string, opts ProcessOptions) (*Result, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "spreadify-")
		if err != nil {
			return nil, fmt.Errorf("create work directory: %w", err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}

	ext := filepath.Ext(archivePath)
	base := strings.TrimSuffix(filepath.Base(archivePath), ext)

	extractDir := filepath.Join(workDir, base+"_extract")
	fusedDir := filepath.Join(workDir, base+OutputSuffix+"_images")
	for _, dir := range []string{extractDir, fusedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create work directory: %w", err)
		}
	}

	r, err := cbz.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", filepath.Base(archivePath), err)
	}
	pages, err := r.ExtractTo(extractDir)
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("extract archive %s: %w", filepath.Base(archivePath), err)
	}

	seq := sequence.New(opts.Detect).
		WithObserver(opts.Observer).
		WithJPEGQuality(opts.JPEGQuality)

	slots, err := seq.Process(pages, fusedDir)
	if err != nil {
		return nil, err
	}

	// Pack into the destination directory under a partial name, then
	// rename, so a crash mid-pack cannot leave a final-looking archive.
	output := filepath.Join(filepath.Dir(archivePath), base+OutputSuffix+ext)
	partial := output + ".partial"
	if err := cbz.Pack(fusedDir, partial); err != nil {
		return nil, err
	}
	if err := os.Rename(partial, output); err != nil {
		os.Remove(partial)
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return &Result{
		Archive:  archivePath,
		Output:   output,
		Sequence: slots,
	}, nil
}

// Failure pairs an archive path with the error that stopped it.
type Failure struct {
	Archive string
	Err     error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(f.Archive), f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error {
	return f.Err
}

// ProcessAll processes archives strictly in order. A failing archive is
// recorded and the batch continues with the next one; it does not abort
// the whole run.
func ProcessAll(archivePaths []string, opts ProcessOptions) ([]*Result, []Failure) {
	var results []*Result
	var failures []Failure

	for _, path := range archivePaths {
		result, err := ProcessWithOptions(path, opts.clone())
		if err != nil {
			failures = append(failures, Failure{Archive: path, Err: err})
			continue
		}
		results = append(results, result)
	}

	return results, failures
}
