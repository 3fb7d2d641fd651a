// Package detect decides whether a page image is one half of a double-page
// spread, based on pixel statistics sampled along its left and right edges.
package detect

import (
	"image"
)

// Config holds classifier parameters.
type Config struct {
	// Width of the sampled edge strip, in pixels
	BorderSize int

	// Pixels with average intensity below this count as non-white
	WhiteThreshold uint8

	// Pixels with average intensity at or below this count as black
	BlackThreshold uint8

	// An edge whose black-pixel ratio exceeds this is treated as a solid
	// black border (stylistic gutter, flashback panel) and vetoes the page
	BlackBorderRatio float64
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		BorderSize:       5,
		WhiteThreshold:   250,
		BlackThreshold:   20,
		BlackBorderRatio: 0.45,
	}
}

// Classifier classifies page images as spread candidates.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Config returns the classifier's configuration.
func (c *Classifier) Config() Config {
	return c.config
}

// IsSpreadCandidate reports whether the image's edges indicate it is one
// half of a double-page spread. The verdict derives from this image alone;
// a pair of pages is a spread only if both members classify true
// independently.
//
// Decision rule:
//  1. An edge that is mostly solid black disqualifies the page, even if
//     the opposite edge looks spread-like.
//  2. Otherwise the page is a candidate only if both edges contain at
//     least one non-white pixel.
func (c *Classifier) IsSpreadCandidate(img image.Image) bool {
	left, right := SampleBorders(img, c.config.BorderSize, c.config.WhiteThreshold, c.config.BlackThreshold)

	if left.BlackRatio > c.config.BlackBorderRatio || right.BlackRatio > c.config.BlackBorderRatio {
		return false
	}

	return left.HasNonWhite && right.HasNonWhite
}

// IsSpreadCandidate classifies img with the default configuration.
func IsSpreadCandidate(img image.Image) bool {
	return NewClassifier(DefaultConfig()).IsSpreadCandidate(img)
}
