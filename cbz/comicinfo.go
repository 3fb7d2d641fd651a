package cbz

import (
	"encoding/xml"
	"fmt"
	"io"
)

// comicInfoXML mirrors the ComicInfo.xml document structure.
type comicInfoXML struct {
	XMLName   xml.Name `xml:"ComicInfo"`
	Title     string   `xml:"Title"`
	Series    string   `xml:"Series"`
	Number    string   `xml:"Number"`
	Volume    int      `xml:"Volume"`
	Writer    string   `xml:"Writer"`
	Penciller string   `xml:"Penciller"`
	Publisher string   `xml:"Publisher"`
	Summary   string   `xml:"Summary"`
	Year      int      `xml:"Year"`
	Month     int      `xml:"Month"`
	PageCount int      `xml:"PageCount"`
	Language  string   `xml:"LanguageISO"`
	Manga     string   `xml:"Manga"`
}

// parseComicInfo parses a ComicInfo.xml document.
func parseComicInfo(r io.Reader) (ComicInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ComicInfo{}, fmt.Errorf("read ComicInfo.xml: %w", err)
	}

	var doc comicInfoXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return ComicInfo{}, fmt.Errorf("parse ComicInfo.xml: %w", err)
	}

	return ComicInfo{
		Title:     doc.Title,
		Series:    doc.Series,
		Number:    doc.Number,
		Volume:    doc.Volume,
		Writer:    doc.Writer,
		Penciller: doc.Penciller,
		Publisher: doc.Publisher,
		Summary:   doc.Summary,
		Year:      doc.Year,
		Month:     doc.Month,
		PageCount: doc.PageCount,
		Language:  doc.Language,
		Manga:     doc.Manga,
	}, nil
}
