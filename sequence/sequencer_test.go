package sequence

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ImSakushi/Spreadify/detect"
	"github.com/ImSakushi/Spreadify/imaging"
	"github.com/ImSakushi/Spreadify/model"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	gray  = color.RGBA{128, 128, 128, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// writePage writes a width x height page filled with fill. If edge is not
// nil, the 5-pixel strips at both edges are painted with it.
func writePage(t *testing.T, dir, name string, width, height int, fill color.RGBA, edge *color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	if edge != nil {
		for y := 0; y < height; y++ {
			for x := 0; x < 5; x++ {
				img.SetRGBA(x, y, *edge)
				img.SetRGBA(width-1-x, y, *edge)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := imaging.Encode(img, path, 90); err != nil {
		t.Fatalf("write page %s: %v", name, err)
	}
	return path
}

// spreadPage writes a page whose edges classify as spread-like.
func spreadPage(t *testing.T, dir, name string, fill color.RGBA) string {
	t.Helper()
	return writePage(t, dir, name, 100, 100, fill, &gray)
}

// plainPage writes a page with pure white edges.
func plainPage(t *testing.T, dir, name string) string {
	t.Helper()
	return writePage(t, dir, name, 100, 100, white, nil)
}

// recordingObserver captures sequencer notifications in order.
type recordingObserver struct {
	started []string
	merged  []string
	passed  []string
}

func (r *recordingObserver) PageStart(_ int, name string) { r.started = append(r.started, name) }
func (r *recordingObserver) SpreadMerged(cur, next, out string) {
	r.merged = append(r.merged, cur+"+"+next+"->"+out)
}
func (r *recordingObserver) PagePassedThrough(name string) { r.passed = append(r.passed, name) }

func newDirs(t *testing.T) (src, out string) {
	t.Helper()
	src = t.TempDir()
	out = t.TempDir()
	return src, out
}

func TestProcess_EndToEndScenario(t *testing.T) {
	src, out := newDirs(t)

	red := color.RGBA{200, 40, 40, 255}
	blue := color.RGBA{40, 40, 200, 255}

	a := spreadPage(t, src, "001.png", red)
	b := spreadPage(t, src, "002.png", blue)
	c := plainPage(t, src, "003.png")

	obs := &recordingObserver{}
	seq, err := New(detect.DefaultConfig()).WithObserver(obs).Process([]string{a, b, c}, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(seq) != 2 {
		t.Fatalf("got %d output slots, want 2", len(seq))
	}

	if seq[0].Kind != model.Merged {
		t.Errorf("slot 0 kind = %v, want merged", seq[0].Kind)
	}
	if filepath.Base(seq[0].Output) != "001.jpg" {
		t.Errorf("merged output = %q, want 001.jpg", filepath.Base(seq[0].Output))
	}
	if seq[1].Kind != model.Passthrough {
		t.Errorf("slot 1 kind = %v, want passthrough", seq[1].Kind)
	}
	if filepath.Base(seq[1].Output) != "003.png" {
		t.Errorf("passthrough output = %q, want 003.png", filepath.Base(seq[1].Output))
	}

	// B is placed left of A in the spread.
	merged, err := imaging.Decode(seq[0].Output)
	if err != nil {
		t.Fatalf("decode merged output: %v", err)
	}
	if merged.Bounds().Dx() != 200 || merged.Bounds().Dy() != 100 {
		t.Fatalf("merged bounds = %v, want 200x100", merged.Bounds())
	}
	r, _, bl, _ := merged.At(50, 50).RGBA()
	if bl>>8 < 150 || r>>8 > 100 {
		t.Error("left half of the spread should hold page B (blue)")
	}
	r, _, bl, _ = merged.At(150, 50).RGBA()
	if r>>8 < 150 || bl>>8 > 100 {
		t.Error("right half of the spread should hold page A (red)")
	}

	if len(obs.merged) != 1 || obs.merged[0] != "001.png+002.png->001.jpg" {
		t.Errorf("merge notifications = %v", obs.merged)
	}
	if len(obs.passed) != 1 || obs.passed[0] != "003.png" {
		t.Errorf("passthrough notifications = %v", obs.passed)
	}
}

func TestProcess_OrderPreservedWithoutMerges(t *testing.T) {
	src, out := newDirs(t)

	pages := []string{
		plainPage(t, src, "001.png"),
		plainPage(t, src, "002.png"),
		plainPage(t, src, "003.png"),
	}

	seq, err := New(detect.DefaultConfig()).Process(pages, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(seq) != 3 {
		t.Fatalf("got %d slots, want 3", len(seq))
	}
	for i, want := range []string{"001.png", "002.png", "003.png"} {
		if seq[i].Kind != model.Passthrough {
			t.Errorf("slot %d kind = %v, want passthrough", i, seq[i].Kind)
		}
		if filepath.Base(seq[i].Output) != want {
			t.Errorf("slot %d output = %q, want %q", i, filepath.Base(seq[i].Output), want)
		}
	}
}

func TestProcess_ConsumptionInvariant(t *testing.T) {
	src, out := newDirs(t)

	fill := color.RGBA{200, 40, 40, 255}
	pages := []string{
		spreadPage(t, src, "001.png", fill),
		spreadPage(t, src, "002.png", fill),
		spreadPage(t, src, "003.png", fill),
		spreadPage(t, src, "004.png", fill),
	}

	seq, err := New(detect.DefaultConfig()).Process(pages, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 002 is consumed by the first merge and never paired with 003;
	// 003 pairs with 004 instead.
	if len(seq) != 2 {
		t.Fatalf("got %d slots, want 2", len(seq))
	}
	if filepath.Base(seq[0].Output) != "001.jpg" || filepath.Base(seq[1].Output) != "003.jpg" {
		t.Errorf("outputs = %q, %q; want 001.jpg, 003.jpg",
			filepath.Base(seq[0].Output), filepath.Base(seq[1].Output))
	}
	if seq.SourceCount() != 4 {
		t.Errorf("SourceCount() = %d, want 4", seq.SourceCount())
	}
}

func TestProcess_TrailingCandidateIsPassedThrough(t *testing.T) {
	src, out := newDirs(t)

	fill := color.RGBA{200, 40, 40, 255}
	pages := []string{
		spreadPage(t, src, "001.png", fill),
		spreadPage(t, src, "002.png", fill),
		spreadPage(t, src, "003.png", fill),
	}

	seq, err := New(detect.DefaultConfig()).Process(pages, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(seq) != 2 {
		t.Fatalf("got %d slots, want 2", len(seq))
	}
	if seq[1].Kind != model.Passthrough || filepath.Base(seq[1].Output) != "003.png" {
		t.Errorf("last slot = %v %q, want passthrough 003.png", seq[1].Kind, filepath.Base(seq[1].Output))
	}
}

func TestProcess_SinglePagePassthrough(t *testing.T) {
	src, out := newDirs(t)

	// A single page is always passed through, even with spread-like edges.
	page := spreadPage(t, src, "001.png", color.RGBA{200, 40, 40, 255})

	seq, err := New(detect.DefaultConfig()).Process([]string{page}, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(seq) != 1 || seq[0].Kind != model.Passthrough {
		t.Fatalf("single page should yield one passthrough slot, got %v", seq)
	}
}

func TestProcess_BlackBorderVetoesMerge(t *testing.T) {
	src, out := newDirs(t)

	a := writePage(t, src, "001.png", 100, 100, color.RGBA{200, 40, 40, 255}, &black)
	b := spreadPage(t, src, "002.png", color.RGBA{40, 40, 200, 255})

	seq, err := New(detect.DefaultConfig()).Process([]string{a, b}, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("got %d slots, want 2 (no merge)", len(seq))
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	_, out := newDirs(t)

	seq, err := New(detect.DefaultConfig()).Process(nil, out)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(seq) != 0 {
		t.Errorf("got %d slots, want 0", len(seq))
	}
}

func TestProcess_DecodeFailure(t *testing.T) {
	src, out := newDirs(t)

	corrupt := filepath.Join(src, "001.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	good := plainPage(t, src, "002.png")

	if _, err := New(detect.DefaultConfig()).Process([]string{corrupt, good}, out); err == nil {
		t.Error("Process() with a corrupt page should fail")
	}
}

func TestProcess_ObserverSeesEveryIteration(t *testing.T) {
	src, out := newDirs(t)

	fill := color.RGBA{200, 40, 40, 255}
	pages := []string{
		spreadPage(t, src, "001.png", fill),
		spreadPage(t, src, "002.png", fill),
		plainPage(t, src, "003.png"),
	}

	obs := &recordingObserver{}
	if _, err := New(detect.DefaultConfig()).WithObserver(obs).Process(pages, out); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 002 is consumed by the merge, so iterations start at 001 and 003.
	want := []string{"001.png", "003.png"}
	if len(obs.started) != len(want) {
		t.Fatalf("started = %v, want %v", obs.started, want)
	}
	for i := range want {
		if obs.started[i] != want[i] {
			t.Errorf("started[%d] = %q, want %q", i, obs.started[i], want[i])
		}
	}
}
