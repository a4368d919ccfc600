package ocr

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
)

// ErrSnapshotMiss is returned by a Replayer when no stored result matches
// the requested image and preset.
var ErrSnapshotMiss = errors.New("no snapshot for input")

// snapshot is the on-disk record of one recognition call.
type snapshot struct {
	Preset string  `json:"preset"`
	Kind   string  `json:"kind"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Text   string  `json:"text,omitempty"`
	Tokens []Token `json:"tokens,omitempty"`
}

const (
	kindText   = "text"
	kindTokens = "tokens"
)

// SnapshotKey derives the storage key for a recognition call from the preset
// name, the call kind and the image pixels.
func SnapshotKey(img *image.Gray, preset Preset, kind string) string {
	h := sha256.New()
	h.Write([]byte(preset.Name))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})

	b := img.Bounds()
	var dims [8]byte
	binary.BigEndian.PutUint32(dims[0:4], uint32(b.Dx()))
	binary.BigEndian.PutUint32(dims[4:8], uint32(b.Dy()))
	h.Write(dims[:])

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		h.Write(img.Pix[off : off+b.Dx()])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Recorder passes calls through to an engine and stores every result in a
// directory as JSON, one file per distinct input.
type Recorder struct {
	engine Recognizer
	dir    string
	mu     sync.Mutex
}

// NewRecorder wraps engine, storing snapshots under dir.
func NewRecorder(engine Recognizer, dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Recorder{engine: engine, dir: dir}, nil
}

// Text runs the wrapped engine and stores its result.
func (r *Recorder) Text(img *image.Gray, preset Preset) (string, error) {
	text, err := r.engine.Text(img, preset)
	if err != nil {
		return "", err
	}
	s := snapshot{Preset: preset.Name, Kind: kindText, Width: img.Bounds().Dx(), Height: img.Bounds().Dy(), Text: text}
	if err := r.store(SnapshotKey(img, preset, kindText), s); err != nil {
		return "", err
	}
	return text, nil
}

// Tokens runs the wrapped engine and stores its tokens.
func (r *Recorder) Tokens(img *image.Gray, preset Preset) ([]Token, error) {
	tokens, err := r.engine.Tokens(img, preset)
	if err != nil {
		return nil, err
	}
	s := snapshot{Preset: preset.Name, Kind: kindTokens, Width: img.Bounds().Dx(), Height: img.Bounds().Dy(), Tokens: tokens}
	if err := r.store(SnapshotKey(img, preset, kindTokens), s); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *Recorder) store(key string, s snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.WriteFile(filepath.Join(r.dir, key+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Replayer serves recognition results previously stored by a Recorder.
// It never runs an engine.
type Replayer struct {
	dir string
}

// NewReplayer reads snapshots from dir.
func NewReplayer(dir string) (*Replayer, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot path is not a directory: %s", dir)
	}
	return &Replayer{dir: dir}, nil
}

// Text returns the stored text for img, or an error wrapping ErrSnapshotMiss.
func (r *Replayer) Text(img *image.Gray, preset Preset) (string, error) {
	s, err := r.load(SnapshotKey(img, preset, kindText), preset)
	if err != nil {
		return "", err
	}
	return s.Text, nil
}

// Tokens returns the stored tokens for img, or an error wrapping ErrSnapshotMiss.
func (r *Replayer) Tokens(img *image.Gray, preset Preset) ([]Token, error) {
	s, err := r.load(SnapshotKey(img, preset, kindTokens), preset)
	if err != nil {
		return nil, err
	}
	if s.Tokens == nil {
		return []Token{}, nil
	}
	return s.Tokens, nil
}

func (r *Replayer) load(key string, preset Preset) (*snapshot, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, key+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w (preset %s, key %s)", ErrSnapshotMiss, preset.Name, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return &s, nil
}
