// Package compose merges two page images into a single double-page spread.
package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ImSakushi/Spreadify/imaging"
)

// MergeHorizontal composites two pages side by side. The next page in
// sequence is placed on the left and the current page on the right,
// matching the right-to-left reading order of the source material.
//
// The taller page sets the canvas height; the other page is resized
// proportionally to match. The canvas is white, width equal to the sum of
// the (resized) page widths. No cropping or rotation is performed.
func MergeHorizontal(current, next *image.RGBA) *image.RGBA {
	height := current.Bounds().Dy()
	if h := next.Bounds().Dy(); h > height {
		height = h
	}

	current = imaging.ResizeToHeight(current, height)
	next = imaging.ResizeToHeight(next, height)

	currentWidth := current.Bounds().Dx()
	nextWidth := next.Bounds().Dx()

	canvas := image.NewRGBA(image.Rect(0, 0, nextWidth+currentWidth, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	draw.Draw(canvas, image.Rect(0, 0, nextWidth, height), next, next.Bounds().Min, draw.Src)
	draw.Draw(canvas, image.Rect(nextWidth, 0, nextWidth+currentWidth, height), current, current.Bounds().Min, draw.Src)

	return canvas
}

// MergeFiles decodes the current and next page files, merges them, and
// encodes the spread to dstPath. Merged output is always written in the
// lossy format, so dstPath should carry a .jpg extension.
func MergeFiles(currentPath, nextPath, dstPath string, quality int) error {
	current, err := imaging.Decode(currentPath)
	if err != nil {
		return err
	}

	next, err := imaging.Decode(nextPath)
	if err != nil {
		return err
	}

	return imaging.Encode(MergeHorizontal(current, next), dstPath, quality)
}
