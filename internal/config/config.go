package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/item-title-ocr/internal/imaging"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// MinFillLevel is the darkest gray level accepted for ITEMOCR_FILL_COLOR.
const MinFillLevel = 128

// Snapshot modes.
const (
	SnapshotOff    = "off"
	SnapshotRecord = "record"
	SnapshotReplay = "replay"
)

// Config holds all run configuration.
type Config struct {
	OCR      OCRConfig
	Run      RunConfig
	Snapshot SnapshotConfig

	// LogLevel is a logrus level name.
	LogLevel string

	// FillColor is the hex color used for banner padding and the body icon
	// blank.
	FillColor string

	// Layout holds the fixed screenshot regions. It is not read from the
	// environment.
	Layout imaging.Layout
}

// OCRConfig holds recognition engine settings.
type OCRConfig struct {
	Language    string
	TessdataDir string
}

// RunConfig holds folder processing settings.
type RunConfig struct {
	Workers  int
	DryRun   bool
	DebugDir string
}

// SnapshotConfig selects recording or replaying of engine results.
type SnapshotConfig struct {
	Mode string
	Dir  string
}

// LoadEnvFile loads variables from path into the process environment without
// overriding ones already set. A missing file is not an error; the returned
// bool reports whether the file was read.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

// FromEnv builds a Config from ITEMOCR_* environment variables, applying
// defaults for anything unset or unparsable.
func FromEnv() *Config {
	return &Config{
		OCR: OCRConfig{
			Language:    getEnv("ITEMOCR_LANG", "eng"),
			TessdataDir: getEnv("ITEMOCR_TESSDATA", ""),
		},
		Run: RunConfig{
			Workers:  getEnvAsInt("ITEMOCR_WORKERS", 1),
			DryRun:   getEnvAsBool("ITEMOCR_DRY_RUN", false),
			DebugDir: getEnv("ITEMOCR_DEBUG_DIR", ""),
		},
		Snapshot: SnapshotConfig{
			Mode: strings.ToLower(getEnv("ITEMOCR_SNAPSHOT_MODE", SnapshotOff)),
			Dir:  getEnv("ITEMOCR_SNAPSHOT_DIR", ""),
		},
		LogLevel:  strings.ToLower(getEnv("ITEMOCR_LOG_LEVEL", "info")),
		FillColor: getEnv("ITEMOCR_FILL_COLOR", "#FFFFFF"),
		Layout:    imaging.DefaultLayout(),
	}
}

// Load reads envFile (if it exists) and then the environment.
func Load(envFile string) (*Config, error) {
	if _, err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if c.OCR.Language == "" {
		return errors.New("ITEMOCR_LANG must not be empty")
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("ITEMOCR_WORKERS must be at least 1, got %d", c.Run.Workers)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid ITEMOCR_LOG_LEVEL: %w", err)
	}
	if _, err := c.Fill(); err != nil {
		return err
	}
	switch c.Snapshot.Mode {
	case SnapshotOff:
	case SnapshotRecord, SnapshotReplay:
		if c.Snapshot.Dir == "" {
			return fmt.Errorf("ITEMOCR_SNAPSHOT_DIR is required for snapshot mode %q", c.Snapshot.Mode)
		}
	default:
		return fmt.Errorf("invalid ITEMOCR_SNAPSHOT_MODE %q (want off, record or replay)", c.Snapshot.Mode)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	return nil
}

// Fill returns the parsed fill color. The banner conditioner pads with it
// and relies on the pad reading as paper, so fills darker than
// MinFillLevel are rejected.
func (c *Config) Fill() (color.Color, error) {
	fill, err := colorful.Hex(c.FillColor)
	if err != nil {
		return nil, fmt.Errorf("invalid ITEMOCR_FILL_COLOR %q: %w", c.FillColor, err)
	}
	r, g, b := fill.RGB255()
	rgba := color.RGBA{R: r, G: g, B: b, A: 255}
	if level := color.GrayModel.Convert(rgba).(color.Gray).Y; level < MinFillLevel {
		return nil, fmt.Errorf("ITEMOCR_FILL_COLOR %q is too dark (gray level %d, need at least %d)", c.FillColor, level, MinFillLevel)
	}
	return rgba, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
