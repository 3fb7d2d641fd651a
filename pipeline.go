package spreadify

import (
	"github.com/ImSakushi/Spreadify/sequence"
)

// Pipeline provides a fluent interface for configuring and running archive
// processing. Each configuration method returns a new Pipeline instance,
// making it safe to share a partially configured pipeline across archives.
type Pipeline struct {
	archive string
	options ProcessOptions
}

// Open prepares a pipeline for the given archive with default options.
//
// Example:
//
//	result, err := spreadify.Open("volume01.cbz").Process()
func Open(archivePath string) *Pipeline {
	return &Pipeline{
		archive: archivePath,
		options: defaultOptions(),
	}
}

// clone returns a copy of the pipeline with copied options.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		archive: p.archive,
		options: p.options.clone(),
	}
}

// BorderSize sets the width in pixels of the sampled edge strip.
func (p *Pipeline) BorderSize(px int) *Pipeline {
	q := p.clone()
	q.options.Detect.BorderSize = px
	return q
}

// WhiteThreshold sets the intensity below which a pixel counts as non-white.
func (p *Pipeline) WhiteThreshold(v uint8) *Pipeline {
	q := p.clone()
	q.options.Detect.WhiteThreshold = v
	return q
}

// BlackThreshold sets the intensity at or below which a pixel counts as black.
func (p *Pipeline) BlackThreshold(v uint8) *Pipeline {
	q := p.clone()
	q.options.Detect.BlackThreshold = v
	return q
}

// BlackBorderRatio sets the black-pixel ratio above which an edge vetoes
// the page from spread consideration.
func (p *Pipeline) BlackBorderRatio(ratio float64) *Pipeline {
	q := p.clone()
	q.options.Detect.BlackBorderRatio = ratio
	return q
}

// JPEGQuality sets the quality for lossy output encoding.
func (p *Pipeline) JPEGQuality(quality int) *Pipeline {
	q := p.clone()
	q.options.JPEGQuality = quality
	return q
}

// Observer installs a progress observer.
func (p *Pipeline) Observer(obs sequence.Observer) *Pipeline {
	q := p.clone()
	q.options.Observer = obs
	return q
}

// WorkDir sets the work directory for extraction and staging. When unset,
// a fresh temporary directory is used and removed afterwards.
func (p *Pipeline) WorkDir(dir string) *Pipeline {
	q := p.clone()
	q.options.WorkDir = dir
	return q
}

// Process runs the pipeline and returns the result.
func (p *Pipeline) Process() (*Result, error) {
	return ProcessWithOptions(p.archive, p.options)
}
