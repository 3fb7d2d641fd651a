package spreadify

import (
	"github.com/ImSakushi/Spreadify/detect"
	"github.com/ImSakushi/Spreadify/imaging"
	"github.com/ImSakushi/Spreadify/sequence"
)

// ProcessOptions holds configuration for processing one archive.
type ProcessOptions struct {
	// Classifier thresholds (border size, white/black thresholds, black
	// border ratio veto)
	Detect detect.Config

	// Quality for lossy output encoding (merged spreads and JPEG
	// passthroughs), 1-100
	JPEGQuality int

	// Progress observer; nil means no notifications
	Observer sequence.Observer

	// Work directory for extraction and staging; empty means a fresh
	// temporary directory, removed when processing finishes
	WorkDir string
}

// defaultOptions returns the default processing options.
func defaultOptions() ProcessOptions {
	return ProcessOptions{
		Detect:      detect.DefaultConfig(),
		JPEGQuality: imaging.DefaultJPEGQuality,
		Observer:    nil,
		WorkDir:     "",
	}
}

// clone creates a copy of ProcessOptions.
func (o ProcessOptions) clone() ProcessOptions {
	return ProcessOptions{
		Detect:      o.Detect,
		JPEGQuality: o.JPEGQuality,
		Observer:    o.Observer,
		WorkDir:     o.WorkDir,
	}
}
