package folder

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/item-title-ocr/internal/extract"
	"github.com/ironsheep/item-title-ocr/internal/imaging"
	"github.com/ironsheep/item-title-ocr/internal/textnorm"
)

var (
	// ErrUnreadable marks a file whose image data could not be decoded.
	ErrUnreadable = errors.New("unreadable image")

	// ErrNoTitle marks an image in which no title could be read.
	ErrNoTitle = errors.New("no title OCR")
)

// Extractor reads title and body text from a decoded image.
type Extractor interface {
	Extract(img image.Image, name string) (*extract.Result, error)
}

// Processor renames item screenshots in a folder after their titles and
// writes a sibling text file for each.
type Processor struct {
	extractor Extractor
	log       logrus.FieldLogger
	out       io.Writer
	workers   int
	dryRun    bool
	decode    func(path string) (image.Image, error)
}

// Option customizes a Processor.
type Option func(*Processor)

// WithWorkers sets how many images are decoded and recognized at once.
// Writes and renames always happen one file at a time in name order.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithDryRun reports the planned names without touching the folder.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) { p.dryRun = dryRun }
}

// WithOutput sets where per-file status lines are printed.
func WithOutput(w io.Writer) Option {
	return func(p *Processor) { p.out = w }
}

// New returns a Processor. Status lines go to stdout unless WithOutput is
// given; diagnostics go to log.
func New(extractor Extractor, log logrus.FieldLogger, opts ...Option) *Processor {
	p := &Processor{
		extractor: extractor,
		log:       log,
		out:       os.Stdout,
		workers:   1,
		decode:    imaging.Load,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// extraction is the outcome of decoding and recognizing one file.
type extraction struct {
	name   string
	result *extract.Result
	err    error
}

// Run processes every supported image directly inside dir, in name order.
//
// Unreadable images, images without a title and per-file write or rename
// failures are reported and do not stop the run. A recognition engine error
// stops the run and is returned, as is cancellation of ctx, which is checked
// before each batch of files. Files already handled stay handled.
func (p *Processor) Run(ctx context.Context, dir string) (*Summary, error) {
	names, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"dir":     dir,
		"images":  len(names),
		"workers": p.workers,
		"dry_run": p.dryRun,
	}).Debug("starting folder run")

	summary := &Summary{}
	plan := newPlanner(dir, p.dryRun)

	for start := 0; start < len(names); start += p.workers {
		if err := ctx.Err(); err != nil {
			p.finish(summary)
			return summary, err
		}

		end := start + p.workers
		if end > len(names) {
			end = len(names)
		}
		batch, err := p.extractBatch(dir, names[start:end])
		if err != nil {
			p.finish(summary)
			return summary, err
		}
		for _, ex := range batch {
			summary.add(p.apply(plan, ex))
		}
	}

	p.finish(summary)
	return summary, nil
}

// extractBatch decodes and recognizes a batch of files concurrently and
// returns the results in input order.
func (p *Processor) extractBatch(dir string, names []string) ([]extraction, error) {
	results := make([]extraction, len(names))
	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			ex, err := p.extractOne(filepath.Join(dir, name), name)
			if err != nil {
				return err
			}
			results[i] = ex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// extractOne returns a non-nil error only for recognition failures.
func (p *Processor) extractOne(path, name string) (extraction, error) {
	img, err := p.decode(path)
	if err != nil {
		p.log.WithError(err).WithField("file", name).Debug("decode failed")
		return extraction{name: name, err: fmt.Errorf("%w: %v", ErrUnreadable, err)}, nil
	}

	res, err := p.extractor.Extract(img, name)
	if err != nil {
		return extraction{}, fmt.Errorf("failed to process %s: %w", name, err)
	}
	if res.Title == "" {
		return extraction{name: name, err: ErrNoTitle}, nil
	}
	return extraction{name: name, result: res}, nil
}

// apply writes the text file and renames the image for one extraction.
func (p *Processor) apply(plan *planner, ex extraction) FileResult {
	fr := FileResult{Name: ex.name}

	switch {
	case errors.Is(ex.err, ErrUnreadable):
		fr.Outcome, fr.Err = OutcomeSkipped, ex.err
		fmt.Fprintf(p.out, "SKIP (unreadable): %s\n", ex.name)
		return fr
	case errors.Is(ex.err, ErrNoTitle):
		fr.Outcome, fr.Err = OutcomeSkipped, ex.err
		fmt.Fprintf(p.out, "SKIP (no title OCR): %s\n", ex.name)
		return fr
	}

	title := strings.TrimSpace(ex.result.Title)
	stem := textnorm.Sanitize(title)
	fr.Title = title

	src := plan.path(ex.name)
	txtPath := plan.unique(stem, ".txt", "")
	imgPath := plan.unique(stem, strings.ToLower(filepath.Ext(ex.name)), src)
	fr.Text = filepath.Base(txtPath)
	fr.Image = filepath.Base(imgPath)

	if p.dryRun {
		plan.reserve(txtPath)
		plan.reserve(imgPath)
		fr.Outcome = OutcomeDryRun
		fmt.Fprintf(p.out, "DRY: %s -> %s + %s\n", ex.name, fr.Image, fr.Text)
		return fr
	}

	if err := os.WriteFile(txtPath, []byte(Compose(title, ex.result.Body)), 0644); err != nil {
		return p.fail(fr, "write", err)
	}
	if imgPath != src {
		if err := os.Rename(src, imgPath); err != nil {
			return p.fail(fr, "rename", err)
		}
	}

	fr.Outcome = OutcomeOK
	fmt.Fprintf(p.out, "OK: %s -> %s + %s\n", ex.name, fr.Image, fr.Text)
	p.log.WithFields(logrus.Fields{
		"file":  ex.name,
		"title": title,
		"image": fr.Image,
		"text":  fr.Text,
	}).Debug("processed")
	return fr
}

func (p *Processor) fail(fr FileResult, stage string, err error) FileResult {
	fr.Outcome, fr.Stage, fr.Err = OutcomeFailed, stage, err
	fmt.Fprintf(p.out, "FAIL (%s): %s: %v\n", stage, fr.Name, err)
	p.log.WithError(err).WithFields(logrus.Fields{"file": fr.Name, "stage": stage}).Warn("file failed")
	return fr
}

func (p *Processor) finish(s *Summary) {
	p.log.WithFields(logrus.Fields{
		"ok":      s.OK,
		"skipped": s.Skipped,
		"failed":  s.Failed,
		"planned": s.Planned,
	}).Info("run complete")
}

// Compose builds the text file content: the title line, then the body if
// there is one, ending with a newline.
func Compose(title, body string) string {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if body == "" {
		return title + "\n"
	}
	return title + "\n" + body + "\n"
}

// ListImages returns the names of regular files directly inside dir that
// have a supported image extension, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !imaging.IsSupported(e.Name()) {
			continue
		}
		if !e.Type().IsRegular() {
			// Follow symlinks to regular files.
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	return names, nil
}
