// Package ocr adapts the Tesseract engine to the item-title pipeline.
//
// The pipeline only depends on the Recognizer interface, which has two call
// shapes:
//
//   - Text: plain-text recognition of a conditioned image
//   - Tokens: word-level recognition with confidence, position and the
//     engine's (block, paragraph, line) segmentation ids
//
// # Presets
//
// Three fixed presets cover every call the pipeline makes:
//
//   - BodyBlock: description body, single uniform text block
//   - BannerTokens: title banner word by word, restricted to A-Z and space
//   - BannerLine: title banner as one line with variable word spacing
//
// # Engines
//
// Tesseract runs the real engine through gosseract/v2. A fresh engine client
// is created per call, so one Tesseract value can serve several workers.
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Recorder and Replayer store and serve results keyed by a SHA-256 of the
// preset, call kind and pixels. A recorded run can be replayed later without
// Tesseract, which makes golden-file tests independent of engine versions.
//
// # Degenerate Input
//
// Empty images are never handed to the engine. Text returns "" and Tokens
// returns an empty slice for them.
package ocr
