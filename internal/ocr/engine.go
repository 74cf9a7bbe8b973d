// Package ocr dispatches sub-images to the Tesseract recognition
// engine through two interchangeable strategies: a long-lived in-process
// engine (gosseract) and an isolated subprocess per call.
package ocr

import (
	"context"
	"image"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

// Result is the outcome of one recognition call. Per-region failures
// degrade to an empty, unsuccessful result; they are never fatal to the
// page.
type Result struct {
	Kind      entity.RegionKind
	Text      string
	Succeeded bool
}

// Engine recognizes a single sub-image under a profile. Implementations
// must apply the profile's whitelist, languages and segmentation mode
// exactly and must not leak configuration between profiles.
//
// Recognize never returns an error: the engine-level failure mode is a
// Result with Succeeded=false. Construction is where unavailability of
// the underlying engine surfaces, via common.ErrEngineUnavailable.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, profile Profile) Result
	Close() error
}

func failed(kind entity.RegionKind) Result {
	return Result{Kind: kind, Text: "", Succeeded: false}
}
