// Package format provides file format detection for the Spreadify library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CBZ indicates a comic book archive (ZIP container).
	CBZ
	// PNG indicates a PNG page image.
	PNG
	// JPEG indicates a JPEG page image.
	JPEG
	// WEBP indicates a WebP page image.
	WEBP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case CBZ:
		return "CBZ"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case WEBP:
		return "WEBP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case CBZ:
		return ".cbz"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case WEBP:
		return ".webp"
	default:
		return ""
	}
}

// IsImage reports whether the format is a page image format.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, WEBP:
		return true
	default:
		return false
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".cbz", ".zip":
		return CBZ
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".webp":
		return WEBP
	default:
		return Unknown
	}
}

// IsPage reports whether the filename looks like a page image.
// The archive adapter uses this to filter non-image entries
// (ComicInfo.xml, thumbnail databases, and so on).
func IsPage(filename string) bool {
	return Detect(filename).IsImage()
}

// IsArchive reports whether the filename looks like a comic archive.
func IsArchive(filename string) bool {
	return Detect(filename) == CBZ
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic (CBZ is a ZIP archive): PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return CBZ
	}

	// PNG magic: \x89PNG
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return PNG
	}

	// JPEG magic: \xFF\xD8\xFF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return JPEG
	}

	// WebP magic: RIFF....WEBP
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return WEBP
	}

	return Unknown
}
