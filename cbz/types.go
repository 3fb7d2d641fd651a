// Package cbz provides comic book archive (CBZ) reading and writing.
package cbz

// ComicInfo holds the metadata carried by a ComicInfo.xml entry, as written
// by most comic library managers. All fields are optional; an archive
// without the entry yields the zero value.
type ComicInfo struct {
	Title     string
	Series    string
	Number    string
	Volume    int
	Writer    string
	Penciller string
	Publisher string
	Summary   string
	Year      int
	Month     int
	PageCount int
	Language  string
	Manga     string // "Yes" / "YesAndRightToLeft" / "No"
}

// RightToLeft reports whether the metadata marks the book as read
// right-to-left.
func (ci ComicInfo) RightToLeft() bool {
	return ci.Manga == "YesAndRightToLeft"
}
