package model

import (
	"path/filepath"
	"strings"
)

// Page represents a single source page image in an archive.
type Page struct {
	Index int    // 0-indexed position in the extracted sequence
	Name  string // Original basename (e.g. "012.jpg")
	Path  string // Absolute path of the extracted file
}

// NewPage creates a page from its sequence position and extracted path.
func NewPage(index int, path string) Page {
	return Page{
		Index: index,
		Name:  filepath.Base(path),
		Path:  path,
	}
}

// Stem returns the page's basename without its extension.
// Merged output files are named after the stem of the earlier page.
func (p Page) Stem() string {
	return strings.TrimSuffix(p.Name, filepath.Ext(p.Name))
}

// SlotKind describes how an output slot was produced.
type SlotKind int

const (
	// Passthrough indicates a page copied to the output unchanged.
	Passthrough SlotKind = iota
	// Merged indicates two source pages composited into one spread.
	Merged
)

// String returns the string representation of the slot kind.
func (k SlotKind) String() string {
	switch k {
	case Passthrough:
		return "passthrough"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// Slot is one entry of the output sequence. A Passthrough slot holds a
// single source page; a Merged slot holds the pair that formed the spread,
// in sequence order (Pages[0] is the earlier page).
type Slot struct {
	Kind   SlotKind
	Output string // Path of the written output file
	Pages  []Page // One source page, or two for a merge
}

// PassthroughSlot creates a slot for an unmerged page.
func PassthroughSlot(page Page, output string) Slot {
	return Slot{
		Kind:   Passthrough,
		Output: output,
		Pages:  []Page{page},
	}
}

// MergedSlot creates a slot for a merged spread pair.
func MergedSlot(current, next Page, output string) Slot {
	return Slot{
		Kind:   Merged,
		Output: output,
		Pages:  []Page{current, next},
	}
}

// OutputSequence is the ordered list of output slots for one archive.
type OutputSequence []Slot

// Paths returns the output file paths in slot order.
func (s OutputSequence) Paths() []string {
	paths := make([]string, 0, len(s))
	for _, slot := range s {
		paths = append(paths, slot.Output)
	}
	return paths
}

// MergeCount returns the number of merged slots.
func (s OutputSequence) MergeCount() int {
	var n int
	for _, slot := range s {
		if slot.Kind == Merged {
			n++
		}
	}
	return n
}

// SourceCount returns the total number of source pages consumed.
func (s OutputSequence) SourceCount() int {
	var n int
	for _, slot := range s {
		n += len(slot.Pages)
	}
	return n
}
