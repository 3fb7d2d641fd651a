// Package model provides the data model shared by the Spreadify pipeline.
//
// A [Page] identifies one source page image: its position in the archive's
// reading order, its original basename, and the path it was extracted to.
// The page sequencer consumes pages and produces an [OutputSequence] of
// [Slot] values, one per output archive entry. A slot is either a
// passthrough of a single page or a merge of two consecutive pages that
// classified as halves of a double-page spread.
//
// The model enforces the pipeline's accounting invariant through its
// constructors: every source page lands in exactly one slot, and slot order
// follows source order.
package model
