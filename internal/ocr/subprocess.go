package ocr

import (
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Sarthak-Sidhant/s1r/internal/imgutil"
)

// SubprocessEngine issues one independent tesseract invocation per
// recognition call. Each call gets its own temp artifacts and a bounded
// timeout, so a crashed or hung invocation affects only its region.
//
// Safe for concurrent use; pair it with the pooled scheduler.
type SubprocessEngine struct {
	cfg    SubprocessConfig
	runner Runner
	logger *slog.Logger
}

// SubprocessConfig configures the per-call tesseract invocation.
type SubprocessConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	OEM         int           // 1 = LSTM; 0 to use the engine default
	CallTimeout time.Duration // per-call bound; if zero -> 10s
	ScratchDir  string        // temp artifact directory; "" -> os.TempDir
}

// NewSubprocessEngine builds the isolated-process engine.
func NewSubprocessEngine(cfg SubprocessConfig, logger *slog.Logger) *SubprocessEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.OEM == 0 {
		cfg.OEM = 1
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	return &SubprocessEngine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Recognize writes the sub-image to a temp PNG, runs tesseract against
// it and reads back the recognized text. Every failure mode (encode,
// spawn, timeout, unreadable output) degrades to an empty result.
func (e *SubprocessEngine) Recognize(ctx context.Context, img image.Image, profile Profile) Result {
	data, err := imgutil.EncodePNG(img)
	if err != nil {
		e.logger.Warn("ocr.region.encode_failed", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}

	dir, err := os.MkdirTemp(e.cfg.ScratchDir, "s1r-ocr-*")
	if err != nil {
		e.logger.Warn("ocr.region.scratch_failed", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "region.png")
	outBase := filepath.Join(dir, "region")
	if err := os.WriteFile(inPath, data, 0o644); err != nil {
		e.logger.Warn("ocr.region.write_failed", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
	defer cancel()

	if _, _, err := e.runner.Run(callCtx, e.cfg.Tesseract, e.args(inPath, outBase, profile)...); err != nil {
		// Timeouts land here too; both degrade identically.
		return failed(profile.Kind)
	}

	out, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		e.logger.Warn("ocr.region.output_missing", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}
	return Result{Kind: profile.Kind, Text: strings.TrimSpace(string(out)), Succeeded: true}
}

func (e *SubprocessEngine) args(inPath, outBase string, p Profile) []string {
	args := []string{
		inPath, outBase,
		"-l", strings.Join(p.Languages, "+"),
		"--oem", strconv.Itoa(e.cfg.OEM),
		"--psm", strconv.Itoa(p.PSM),
	}
	if p.Whitelist != "" {
		args = append(args, "-c", "tessedit_char_whitelist="+p.Whitelist)
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	return append(args, "quiet")
}

// Close is a no-op: subprocess calls hold no persistent resources.
func (e *SubprocessEngine) Close() error { return nil }

var _ Engine = (*SubprocessEngine)(nil)
var _ Engine = (*PersistentEngine)(nil)
