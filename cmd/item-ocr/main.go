package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/item-title-ocr/internal/config"
	"github.com/ironsheep/item-title-ocr/internal/extract"
	"github.com/ironsheep/item-title-ocr/internal/folder"
	"github.com/ironsheep/item-title-ocr/internal/logging"
	"github.com/ironsheep/item-title-ocr/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 1 {
		switch args[1] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "item-ocr %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return exitOK
		case "--help", "-h", "help":
			printHelp(stdout)
			return exitOK
		}
	}

	if len(args) != 2 {
		fmt.Fprintln(stderr, "Usage: item-ocr /path/to/folder")
		return exitUsage
	}

	dir, err := resolveFolder(args[1])
	if err != nil {
		fmt.Fprintf(stderr, "Not a folder: %s\n", args[1])
		return exitUsage
	}

	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitError
	}

	log, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitError
	}
	log.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
	}).Debug("item-ocr starting")

	engine, err := newRecognizer(cfg)
	if err != nil {
		log.WithError(err).Error("failed to set up recognition")
		return exitError
	}

	fill, err := cfg.Fill()
	if err != nil {
		log.WithError(err).Error("invalid fill color")
		return exitError
	}

	var opts []extract.Option
	if cfg.Run.DebugDir != "" {
		opts = append(opts, extract.WithDebugDir(cfg.Run.DebugDir))
	}
	ex := extract.New(engine, cfg.Layout, fill, log, opts...)

	proc := folder.New(ex, log,
		folder.WithOutput(stdout),
		folder.WithWorkers(cfg.Run.Workers),
		folder.WithDryRun(cfg.Run.DryRun),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := proc.Run(ctx, dir)
	if errors.Is(err, context.Canceled) {
		log.Warn("interrupted; remaining files left untouched")
		return exitError
	}
	if err != nil {
		log.WithError(err).Error("run aborted")
		return exitError
	}
	if summary.HasFailures() {
		return exitError
	}
	return exitOK
}

// newRecognizer builds the Tesseract engine, wrapped for snapshot recording
// or replaced by a replayer when configured.
func newRecognizer(cfg *config.Config) (ocr.Recognizer, error) {
	switch cfg.Snapshot.Mode {
	case config.SnapshotReplay:
		return ocr.NewReplayer(cfg.Snapshot.Dir)
	case config.SnapshotRecord:
		return ocr.NewRecorder(ocr.NewTesseract(cfg.OCR.Language, cfg.OCR.TessdataDir), cfg.Snapshot.Dir)
	default:
		return ocr.NewTesseract(cfg.OCR.Language, cfg.OCR.TessdataDir), nil
	}
}

// resolveFolder expands a leading ~, makes the path absolute and checks
// that it is an existing directory.
func resolveFolder(arg string) (string, error) {
	path := arg
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "item-ocr - name item screenshots after their titles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: item-ocr /path/to/folder")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every .png .jpg .jpeg .webp .bmp .tif .tiff file in the folder is read,")
	fmt.Fprintln(w, "renamed to its TITLE and paired with a TITLE.txt holding the title and")
	fmt.Fprintln(w, "description text.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from ./.env):")
	fmt.Fprintln(w, "  ITEMOCR_LANG=eng              Tesseract language")
	fmt.Fprintln(w, "  ITEMOCR_TESSDATA=<dir>        Tesseract data directory")
	fmt.Fprintln(w, "  ITEMOCR_WORKERS=1             Images recognized in parallel")
	fmt.Fprintln(w, "  ITEMOCR_DRY_RUN=true          Report names without changing files")
	fmt.Fprintln(w, "  ITEMOCR_LOG_LEVEL=debug       Log banner lines and scores")
	fmt.Fprintln(w, "  ITEMOCR_FILL_COLOR=#FFFFFF    Light padding and icon blank color")
	fmt.Fprintln(w, "  ITEMOCR_DEBUG_DIR=<dir>       Save conditioned images")
	fmt.Fprintln(w, "  ITEMOCR_SNAPSHOT_MODE=record  Record (or replay) engine results")
	fmt.Fprintln(w, "  ITEMOCR_SNAPSHOT_DIR=<dir>    Snapshot directory")
}
