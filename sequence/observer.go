package sequence

// Observer receives progress notifications from the sequencer. It exists
// for observability only; implementations must not influence sequencing
// decisions. The zero-value sequencer uses NopObserver.
type Observer interface {
	// PageStart is called once per loop iteration, before the page at
	// index is classified or written.
	PageStart(index int, name string)

	// SpreadMerged is called after two pages were composited into one
	// spread and written to the output.
	SpreadMerged(currentName, nextName, outputName string)

	// PagePassedThrough is called after a page was written to the output
	// unchanged.
	PagePassedThrough(name string)
}

// NopObserver is an Observer that ignores all notifications.
type NopObserver struct{}

// PageStart implements Observer.
func (NopObserver) PageStart(int, string) {}

// SpreadMerged implements Observer.
func (NopObserver) SpreadMerged(string, string, string) {}

// PagePassedThrough implements Observer.
func (NopObserver) PagePassedThrough(string) {}
