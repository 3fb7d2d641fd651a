// Command spreadify merges double-page spreads in comic book archives.
//
// Usage:
//
//	spreadify [flags] <archive.cbz | directory>
//
// Given a single archive, it writes <name>_fused.cbz next to it. Given a
// directory, it processes every archive found in it (non-recursive). A
// failing archive is reported and the batch continues.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	spreadify "github.com/ImSakushi/Spreadify"
	"github.com/ImSakushi/Spreadify/format"
)

// cliFlags holds the values parsed from the command line.
type cliFlags struct {
	BorderSize       int
	WhiteThreshold   int
	BlackThreshold   int
	BlackBorderRatio float64
	JPEGQuality      int
	Verbose          bool
	Version          bool
}

// version is set at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("spreadify", flag.ContinueOnError)
	fs.IntVar(&flags.BorderSize, "border", 5, "width in pixels of the sampled edge strip")
	fs.IntVar(&flags.WhiteThreshold, "white", 250, "intensity below which a pixel counts as non-white (0-255)")
	fs.IntVar(&flags.BlackThreshold, "black", 20, "intensity at or below which a pixel counts as black (0-255)")
	fs.Float64Var(&flags.BlackBorderRatio, "ratio", 0.45, "black-pixel ratio above which an edge vetoes the page")
	fs.IntVar(&flags.JPEGQuality, "quality", 90, "JPEG quality for merged output (1-100)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log every page as it is processed")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: spreadify [flags] <archive.cbz | directory>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one archive or directory path")
	}

	log := newLogger(flags.Verbose)

	archives, err := collectArchives(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		log.Info().Msg("no archives found")
		return nil
	}

	opts := buildOptions(flags, log)

	results, failures := spreadify.ProcessAll(archives, opts)
	for _, result := range results {
		log.Info().
			Str("archive", filepath.Base(result.Archive)).
			Str("output", filepath.Base(result.Output)).
			Int("pages", result.PageCount()).
			Int("spreads", result.MergeCount()).
			Msg("archive processed")
	}
	for _, failure := range failures {
		log.Error().
			Str("archive", filepath.Base(failure.Archive)).
			Err(failure.Err).
			Msg("archive failed")
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d archives failed", len(failures), len(archives))
	}
	return nil
}

// collectArchives resolves the positional argument to an ordered list of
// archive paths: the file itself, or every archive directly inside a
// directory.
func collectArchives(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s is neither a valid archive nor a directory", path)
	}

	if !info.IsDir() {
		if !format.IsArchive(path) {
			return nil, fmt.Errorf("%s is neither a valid archive nor a directory", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() || !format.IsArchive(entry.Name()) {
			continue
		}
		archives = append(archives, filepath.Join(path, entry.Name()))
	}
	sort.Strings(archives)
	return archives, nil
}

// buildOptions maps CLI flags onto processing options.
func buildOptions(flags cliFlags, log zerolog.Logger) spreadify.ProcessOptions {
	opts := spreadify.ProcessOptions{}
	opts.Detect.BorderSize = flags.BorderSize
	opts.Detect.WhiteThreshold = clampByte(flags.WhiteThreshold)
	opts.Detect.BlackThreshold = clampByte(flags.BlackThreshold)
	opts.Detect.BlackBorderRatio = flags.BlackBorderRatio
	opts.JPEGQuality = flags.JPEGQuality
	opts.Observer = &logObserver{log: log}
	return opts
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// newLogger builds a console logger. Verbose mode enables per-page output.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// logObserver forwards sequencer progress to the logger.
type logObserver struct {
	log zerolog.Logger
}

func (o *logObserver) PageStart(index int, name string) {
	o.log.Debug().Int("index", index).Str("page", name).Msg("processing page")
}

func (o *logObserver) SpreadMerged(currentName, nextName, outputName string) {
	o.log.Info().
		Str("right", currentName).
		Str("left", nextName).
		Str("output", outputName).
		Msg("spread detected, pages merged")
}

func (o *logObserver) PagePassedThrough(name string) {
	o.log.Debug().Str("page", name).Msg("page passed through")
}
