package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs recognition through the Tesseract engine via gosseract.
//
// A new engine client is created for every call, so a Tesseract value may be
// shared between goroutines.
type Tesseract struct {
	language       string
	tessdataPrefix string
}

// NewTesseract returns an engine for the given language code (for example
// "eng"). tessdataPrefix may be empty to use the system's trained data.
func NewTesseract(language, tessdataPrefix string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language, tessdataPrefix: tessdataPrefix}
}

// Text returns the engine's plain-text output for img.
//
// An empty image is not sent to the engine and yields "".
func (t *Tesseract) Text(img *image.Gray, preset Preset) (string, error) {
	if img.Bounds().Empty() {
		return "", nil
	}

	client, err := t.newClient(img, preset)
	if err != nil {
		return "", err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// Tokens returns word-level results with the engine's block, paragraph and
// line numbering.
//
// An empty image is not sent to the engine and yields no tokens.
func (t *Tesseract) Tokens(img *image.Gray, preset Preset) ([]Token, error) {
	if img.Bounds().Empty() {
		return []Token{}, nil
	}

	client, err := t.newClient(img, preset)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("failed to get bounding boxes: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		tokens = append(tokens, Token{
			Text:       box.Word,
			Confidence: box.Confidence,
			Left:       box.Box.Min.X,
			Top:        box.Box.Min.Y,
			Key: LineKey{
				Block: box.BlockNum,
				Par:   box.ParNum,
				Line:  box.LineNum,
			},
		})
	}
	return tokens, nil
}

// Version returns the linked Tesseract version.
func (t *Tesseract) Version() string {
	return gosseract.Version()
}

func (t *Tesseract) newClient(img *image.Gray, preset Preset) (*gosseract.Client, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(t.language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(preset.Mode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if preset.Whitelist != "" {
		if err := client.SetWhitelist(preset.Whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	for k, v := range preset.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set variable %s: %w", k, err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	return client, nil
}
