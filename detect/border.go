package detect

import (
	"image"
)

// BorderStats aggregates pixel intensities over one vertical edge strip.
type BorderStats struct {
	// HasNonWhite is true if any sampled pixel falls below the white
	// threshold. A spread is assumed to bleed artwork to the page edge,
	// so an entirely white edge rules the page out.
	HasNonWhite bool

	// BlackRatio is the fraction of sampled pixels at or below the black
	// threshold, in [0,1].
	BlackRatio float64
}

// SampleBorders samples the leftmost and rightmost width columns of img at
// full height and returns per-edge statistics. Pixel intensity is the plain
// channel average (r+g+b)/3 on the 8-bit scale. Pure function of the image
// and thresholds; nothing is cached.
//
// Images narrower than twice the strip width sample overlapping columns on
// both sides. The strips are clamped to the image bounds.
func SampleBorders(img image.Image, width int, whiteThreshold, blackThreshold uint8) (left, right BorderStats) {
	bounds := img.Bounds()

	leftEnd := bounds.Min.X + width
	if leftEnd > bounds.Max.X {
		leftEnd = bounds.Max.X
	}
	left = sampleStrip(img, bounds.Min.X, leftEnd, whiteThreshold, blackThreshold)

	rightStart := bounds.Max.X - width
	if rightStart < bounds.Min.X {
		rightStart = bounds.Min.X
	}
	right = sampleStrip(img, rightStart, bounds.Max.X, whiteThreshold, blackThreshold)

	return left, right
}

// sampleStrip scans the columns [x0, x1) at full image height.
func sampleStrip(img image.Image, x0, x1 int, whiteThreshold, blackThreshold uint8) BorderStats {
	var stats BorderStats
	bounds := img.Bounds()

	var sampled, black int
	for x := x0; x < x1; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			avg := intensityAt(img, x, y)
			if avg < uint32(whiteThreshold) {
				stats.HasNonWhite = true
			}
			if avg <= uint32(blackThreshold) {
				black++
			}
			sampled++
		}
	}

	if sampled > 0 {
		stats.BlackRatio = float64(black) / float64(sampled)
	}
	return stats
}

// intensityAt returns the 8-bit channel average at (x, y).
func intensityAt(img image.Image, x, y int) uint32 {
	if rgba, ok := img.(*image.RGBA); ok {
		i := rgba.PixOffset(x, y)
		r := uint32(rgba.Pix[i])
		g := uint32(rgba.Pix[i+1])
		b := uint32(rgba.Pix[i+2])
		return (r + g + b) / 3
	}

	r, g, b, _ := img.At(x, y).RGBA()
	// RGBA() returns 16-bit channels; scale back to 8-bit.
	return (r>>8 + g>>8 + b>>8) / 3
}
