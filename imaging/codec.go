// Package imaging provides the image codec used by the Spreadify pipeline:
// decoding page images to an RGB raster, proportional high-quality resizing,
// and encoding output pages by destination extension.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	// Registers the WebP decoder with image.Decode; JPEG and PNG register
	// through the encoder imports above.
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is the quality used for lossy output encoding.
const DefaultJPEGQuality = 90

// Decode reads and decodes the image at path into an RGB raster.
// Transparency is composited against a white background; the pipeline
// treats all input as opaque RGB.
func Decode(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}

	return toRGB(src), nil
}

// toRGB normalizes any decoded image to an opaque RGBA raster anchored at
// the origin.
func toRGB(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}

// Encode writes img to path, inferring the format from the destination
// extension: .jpg/.jpeg produce JPEG at the given quality, .png produces
// PNG. Other extensions are rejected.
func Encode(img image.Image, path string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	var encErr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case ".png":
		encErr = png.Encode(f, img)
	default:
		encErr = fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
	}

	if closeErr := f.Close(); encErr == nil {
		encErr = closeErr
	}
	if encErr != nil {
		return fmt.Errorf("encode image %s: %w", filepath.Base(path), encErr)
	}
	return nil
}

// ResizeToHeight scales img to the target height, preserving aspect ratio
// (width scaled by height/originalHeight, truncated). Catmull-Rom
// interpolation is used for quality. An image already at the target height
// is returned unchanged.
func ResizeToHeight(img *image.RGBA, height int) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Dy() == height {
		return img
	}

	width := bounds.Dx() * height / bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// Reencode decodes the image at src and writes it to dst, preserving pixel
// dimensions. Used for passthrough pages, which are re-encoded rather than
// byte-copied so the output archive contains uniformly decodable files.
func Reencode(src, dst string, quality int) error {
	img, err := Decode(src)
	if err != nil {
		return err
	}
	return Encode(img, dst, quality)
}
