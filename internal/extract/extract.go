package extract

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/item-title-ocr/internal/detection"
	"github.com/ironsheep/item-title-ocr/internal/imaging"
	"github.com/ironsheep/item-title-ocr/internal/ocr"
	"github.com/ironsheep/item-title-ocr/internal/textnorm"
)

// Title sources reported in Result.TitleSource.
const (
	SourceTokens = "tokens"
	SourceLine   = "line"
)

// Result is the text recovered from one screenshot.
type Result struct {
	// Title is the uppercase item title, or "" when none was found.
	Title string `json:"title"`

	// Body is the normalized description text. It is only read when a title
	// was found.
	Body string `json:"body"`

	// TitleSource tells which banner pass produced Title.
	TitleSource string `json:"title_source,omitempty"`
}

// Extractor runs the per-image pipeline: crop, condition, recognize, then
// select and clean the text.
//
// An Extractor holds no per-image state and may be used from several
// goroutines if its Recognizer allows that.
type Extractor struct {
	layout   imaging.Layout
	cond     *imaging.Conditioner
	engine   ocr.Recognizer
	log      logrus.FieldLogger
	debugDir string
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithDebugDir saves the conditioned banner and body of every image as PNG
// files in dir.
func WithDebugDir(dir string) Option {
	return func(e *Extractor) { e.debugDir = dir }
}

// New returns an Extractor for the given screen layout. fill is the light
// color used for banner padding and the body icon blank.
func New(engine ocr.Recognizer, layout imaging.Layout, fill color.Color, log logrus.FieldLogger, opts ...Option) *Extractor {
	e := &Extractor{
		layout: layout,
		cond:   imaging.NewConditioner(fill, layout.IconBlankWidth),
		engine: engine,
		log:    log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the title and body from a decoded screenshot. name is the
// source file name and is only used for logging and debug output.
//
// Errors come from the recognition engine only. An image without a readable
// title yields a Result with an empty Title.
func (e *Extractor) Extract(img image.Image, name string) (*Result, error) {
	log := e.log.WithField("file", name)

	banner := e.cond.Banner(imaging.Crop(img, e.layout.Banner))
	e.dump(banner, name, "banner", log)

	title, source, err := e.title(banner, log)
	if err != nil {
		return nil, err
	}
	if title == "" {
		log.Debug("no title found, skipping body")
		return &Result{}, nil
	}

	body := e.cond.Body(imaging.Crop(img, e.layout.Body))
	e.dump(body, name, "body", log)

	raw, err := e.engine.Text(body, ocr.BodyBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize body: %w", err)
	}

	return &Result{
		Title:       title,
		Body:        textnorm.Normalize(raw),
		TitleSource: source,
	}, nil
}

// title runs the token pass and falls back to the single-line pass when no
// line qualifies.
func (e *Extractor) title(banner *image.Gray, log logrus.FieldLogger) (string, string, error) {
	tokens, err := e.engine.Tokens(banner, ocr.BannerTokens)
	if err != nil {
		return "", "", fmt.Errorf("failed to recognize banner tokens: %w", err)
	}

	lines := detection.Candidates(tokens, banner.Bounds().Dy())
	for _, line := range lines {
		words := make([]string, len(line.Tokens))
		for i, tok := range line.Tokens {
			words[i] = tok.Text
		}
		log.WithFields(logrus.Fields{
			"line":     fmt.Sprintf("%d.%d.%d", line.Key.Block, line.Key.Par, line.Key.Line),
			"tokens":   strings.Join(words, "|"),
			"rejected": line.Rejected,
			"score":    fmt.Sprintf("%.2f", line.Score),
		}).Debug("banner line")
	}

	if title := detection.Best(lines); title != "" {
		return title, SourceTokens, nil
	}

	raw, err := e.engine.Text(banner, ocr.BannerLine)
	if err != nil {
		return "", "", fmt.Errorf("failed to recognize banner line: %w", err)
	}
	if title := detection.CleanLine(raw); title != "" {
		log.WithField("raw", strings.TrimSpace(raw)).Debug("title from single-line fallback")
		return title, SourceLine, nil
	}
	return "", "", nil
}

// dump saves a conditioned image when a debug directory is set. Failures
// are logged and otherwise ignored.
func (e *Extractor) dump(img *image.Gray, name, part string, log logrus.FieldLogger) {
	if e.debugDir == "" || img.Bounds().Empty() {
		return
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	path := filepath.Join(e.debugDir, stem+"."+part+".png")
	if err := imaging.SavePNG(img, path); err != nil {
		log.WithError(err).Warn("failed to save debug image")
	}
}
