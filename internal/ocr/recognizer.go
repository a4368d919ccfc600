package ocr

import (
	"image"
)

// PageSegMode mirrors Tesseract's page segmentation modes used by this tool.
type PageSegMode int

const (
	// SingleBlock assumes a single uniform block of text.
	SingleBlock PageSegMode = 6
	// SingleLine treats the image as a single text line.
	SingleLine PageSegMode = 7
)

// Preset is a named recognition configuration.
type Preset struct {
	// Name identifies the preset in logs and snapshot keys.
	Name string `json:"name"`

	// Mode is the page segmentation assumption.
	Mode PageSegMode `json:"mode"`

	// Whitelist restricts recognizable characters. Empty means unrestricted.
	Whitelist string `json:"whitelist,omitempty"`

	// Variables are extra engine parameters set verbatim.
	Variables map[string]string `json:"variables,omitempty"`
}

// TitleAlphabet is the character set allowed in the structured banner pass.
const TitleAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ "

var (
	// BodyBlock reads the description body as one uniform block of text.
	BodyBlock = Preset{Name: "body-block", Mode: SingleBlock}

	// BannerLine reads the banner as a single line with variable word
	// spacing. It is only a fallback signal for the title.
	BannerLine = Preset{
		Name: "banner-line",
		Mode: SingleLine,
		Variables: map[string]string{
			"textord_space_size_is_variable": "1",
		},
	}

	// BannerTokens reads the banner word by word, restricted to uppercase
	// letters, and is the primary source for the title.
	BannerTokens = Preset{Name: "banner-tokens", Mode: SingleBlock, Whitelist: TitleAlphabet}
)

// LineKey identifies the visual line a token was segmented into by the engine.
// Keys are compared for equality only; the numbers carry no geometry.
type LineKey struct {
	Block int `json:"block"`
	Par   int `json:"par"`
	Line  int `json:"line"`
}

// Token is one recognized word with its position and confidence.
type Token struct {
	// Text is the recognized word as reported by the engine.
	Text string `json:"text"`

	// Confidence is the engine's score in [0, 100]. Negative values mean the
	// engine had no estimate for this token.
	Confidence float64 `json:"confidence"`

	// Left and Top are the pixel coordinates of the word's bounding box.
	Left int `json:"left"`
	Top  int `json:"top"`

	Key LineKey `json:"key"`
}

// Recognizer is the recognition engine as seen by the extraction pipeline.
//
// Both calls are synchronous. Finding nothing is not an error: Text returns
// "" and Tokens returns an empty slice. Errors mean the engine itself failed.
type Recognizer interface {
	Text(img *image.Gray, preset Preset) (string, error)
	Tokens(img *image.Gray, preset Preset) ([]Token, error)
}
