package ocr

import (
	"context"
	"image"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Sarthak-Sidhant/s1r/internal/common"
	"github.com/Sarthak-Sidhant/s1r/internal/entity"
	"github.com/Sarthak-Sidhant/s1r/internal/imgutil"
)

// PersistentEngine keeps one long-lived gosseract client per profile,
// so engine initialization is paid once per page scope instead of once
// per region. Clients hold mutually exclusive whitelist state and are
// never shared across profiles.
//
// Not safe for concurrent use; pair it with the sequential scheduler.
type PersistentEngine struct {
	clients map[entity.RegionKind]*gosseract.Client
	logger  *slog.Logger
}

// PersistentConfig configures the in-process engine.
type PersistentConfig struct {
	TessdataDir string
}

// NewPersistentEngine initializes one client per fixed profile. Any
// initialization failure is fatal to page processing and reported as
// common.ErrEngineUnavailable.
func NewPersistentEngine(cfg PersistentConfig, logger *slog.Logger) (*PersistentEngine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &PersistentEngine{
		clients: make(map[entity.RegionKind]*gosseract.Client, 3),
		logger:  logger,
	}
	for _, p := range []Profile{SerialProfile, EpicProfile, TextProfile} {
		client, err := newClient(cfg, p)
		if err != nil {
			e.Close()
			return nil, common.NewAppError("ENGINE_INIT",
				"initialize tesseract context for "+string(p.Kind), common.ErrEngineUnavailable)
		}
		e.clients[p.Kind] = client
	}
	logger.Info("ocr.engine.ready", "strategy", "persistent", "contexts", len(e.clients))
	return e, nil
}

func newClient(cfg PersistentConfig, p Profile) (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataDir); err != nil {
			client.Close()
			return nil, err
		}
	}
	if err := client.SetLanguage(p.Languages...); err != nil {
		client.Close()
		return nil, err
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(p.PSM)); err != nil {
		client.Close()
		return nil, err
	}
	if p.Whitelist != "" {
		if err := client.SetVariable("tessedit_char_whitelist", p.Whitelist); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}

// Recognize runs one sub-image through the profile's dedicated client.
func (e *PersistentEngine) Recognize(ctx context.Context, img image.Image, profile Profile) Result {
	if err := ctx.Err(); err != nil {
		return failed(profile.Kind)
	}
	client, ok := e.clients[profile.Kind]
	if !ok {
		return failed(profile.Kind)
	}

	data, err := imgutil.EncodePNG(img)
	if err != nil {
		e.logger.Warn("ocr.region.encode_failed", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		e.logger.Warn("ocr.region.set_image_failed", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}
	text, err := client.Text()
	if err != nil {
		e.logger.Warn("ocr.region.recognize_failed", "kind", profile.Kind, "error", err)
		return failed(profile.Kind)
	}
	return Result{Kind: profile.Kind, Text: strings.TrimSpace(text), Succeeded: true}
}

// Close releases every recognition context. Safe to call more than once.
func (e *PersistentEngine) Close() error {
	var first error
	for kind, client := range e.clients {
		if err := client.Close(); err != nil && first == nil {
			first = err
		}
		delete(e.clients, kind)
	}
	return first
}
