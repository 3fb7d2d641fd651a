// Package sequence walks an ordered page list, merges consecutive pages
// that classify as halves of a double-page spread, and passes the rest
// through, producing the final ordered output sequence.
package sequence

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ImSakushi/Spreadify/compose"
	"github.com/ImSakushi/Spreadify/detect"
	"github.com/ImSakushi/Spreadify/imaging"
	"github.com/ImSakushi/Spreadify/model"
)

// Sequencer produces the output page sequence for one archive.
type Sequencer struct {
	classifier  *detect.Classifier
	observer    Observer
	jpegQuality int
}

// New creates a sequencer with the given classifier configuration.
func New(config detect.Config) *Sequencer {
	return &Sequencer{
		classifier:  detect.NewClassifier(config),
		observer:    NopObserver{},
		jpegQuality: imaging.DefaultJPEGQuality,
	}
}

// WithObserver installs a progress observer and returns the sequencer.
func (s *Sequencer) WithObserver(obs Observer) *Sequencer {
	if obs != nil {
		s.observer = obs
	}
	return s
}

// WithJPEGQuality sets the quality for lossy output encoding and returns
// the sequencer.
func (s *Sequencer) WithJPEGQuality(quality int) *Sequencer {
	s.jpegQuality = quality
	return s
}

// Process walks pages in order, writing one output file per slot into
// outputDir. Consecutive pages that both classify as spread candidates are
// merged into a single spread named after the earlier page; all other pages
// are passed through under their original basename. The last page is always
// a passthrough. A page consumed as a merge partner is never re-examined.
//
// The returned sequence preserves input order. An empty page list yields an
// empty sequence and no error. Decode and write failures abort the run.
func (s *Sequencer) Process(pages []string, outputDir string) (model.OutputSequence, error) {
	out := make(model.OutputSequence, 0, len(pages))

	// Verdicts are memoized per index so a declined partner is not
	// re-sampled when it becomes the current page. The decision sequence
	// is identical to reclassifying it.
	verdicts := make(map[int]bool, len(pages))

	for i := 0; i < len(pages); {
		page := model.NewPage(i, pages[i])
		s.observer.PageStart(i, page.Name)

		if i == len(pages)-1 {
			slot, err := s.passThrough(page, outputDir)
			if err != nil {
				return nil, err
			}
			out = append(out, slot)
			i++
			continue
		}

		next := model.NewPage(i+1, pages[i+1])

		currentIsSpread, err := s.classify(verdicts, page)
		if err != nil {
			return nil, err
		}
		nextIsSpread, err := s.classify(verdicts, next)
		if err != nil {
			return nil, err
		}

		if currentIsSpread && nextIsSpread {
			slot, err := s.merge(page, next, outputDir)
			if err != nil {
				return nil, err
			}
			out = append(out, slot)
			i += 2
			continue
		}

		slot, err := s.passThrough(page, outputDir)
		if err != nil {
			return nil, err
		}
		out = append(out, slot)
		i++
	}

	return out, nil
}

// classify returns the memoized spread verdict for the page, sampling its
// borders on first use.
func (s *Sequencer) classify(verdicts map[int]bool, page model.Page) (bool, error) {
	if verdict, ok := verdicts[page.Index]; ok {
		return verdict, nil
	}

	img, err := imaging.Decode(page.Path)
	if err != nil {
		return false, fmt.Errorf("classify page %s: %w", page.Name, err)
	}

	verdict := s.classifier.IsSpreadCandidate(img)
	verdicts[page.Index] = verdict
	return verdict, nil
}

// merge composites next to the left of current and writes the spread,
// named after the current page with the extension normalized to the lossy
// format.
func (s *Sequencer) merge(current, next model.Page, outputDir string) (model.Slot, error) {
	dst := filepath.Join(outputDir, current.Stem()+".jpg")

	if err := compose.MergeFiles(current.Path, next.Path, dst, s.jpegQuality); err != nil {
		return model.Slot{}, fmt.Errorf("merge pages %s + %s: %w", current.Name, next.Name, err)
	}

	s.observer.SpreadMerged(current.Name, next.Name, filepath.Base(dst))
	return model.MergedSlot(current, next, dst), nil
}

// passThrough re-encodes the page into outputDir under its original
// basename. Pages in a format without an encoder (WebP) are written in the
// lossy format instead.
func (s *Sequencer) passThrough(page model.Page, outputDir string) (model.Slot, error) {
	name := page.Name
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
	default:
		name = page.Stem() + ".jpg"
	}
	dst := filepath.Join(outputDir, name)

	if err := imaging.Reencode(page.Path, dst, s.jpegQuality); err != nil {
		return model.Slot{}, fmt.Errorf("pass through page %s: %w", page.Name, err)
	}

	s.observer.PagePassedThrough(page.Name)
	return model.PassthroughSlot(page, dst), nil
}
