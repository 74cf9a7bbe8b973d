// Package pipeline wires segmentation, recognition dispatch, field
// extraction and validation into per-page record processing, and
// supports a decoupled second pass that parses previously persisted
// recognition artifacts.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Sarthak-Sidhant/s1r/constants"
	"github.com/Sarthak-Sidhant/s1r/internal/dispatch"
	"github.com/Sarthak-Sidhant/s1r/internal/entity"
	"github.com/Sarthak-Sidhant/s1r/internal/fields"
	"github.com/Sarthak-Sidhant/s1r/internal/grid"
	"github.com/Sarthak-Sidhant/s1r/internal/imgutil"
	"github.com/Sarthak-Sidhant/s1r/internal/ocr"
	"github.com/Sarthak-Sidhant/s1r/internal/validate"
)

// Processor runs the page pipeline: segment -> dispatch recognition ->
// extract fields -> validate -> aggregate.
type Processor struct {
	Engine    ocr.Engine
	Scheduler dispatch.Scheduler
	Extractor *fields.Extractor
	Validator *validate.Validator
	Log       *slog.Logger

	// ArtifactsDir, when set, persists per-region crops, recognized
	// text and status markers under <dir>/ocr/<page>/ for the
	// decoupled parse pass.
	ArtifactsDir string
}

// PageResult is one page's worth of finalized records and counters.
type PageResult struct {
	PageID  string
	Records []entity.VoterRecord
	Stats   entity.PageStats
}

// NewProcessor assembles a page processor.
func NewProcessor(engine ocr.Engine, sched dispatch.Scheduler, ex *fields.Extractor, v *validate.Validator, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{Engine: engine, Scheduler: sched, Extractor: ex, Validator: v, Log: log}
}

// ProcessPage runs a single page image end to end. A missing or
// unreadable image is fatal and returned before any segmentation work;
// everything downstream degrades per-region or per-record.
func (p *Processor) ProcessPage(ctx context.Context, imagePath string) (PageResult, error) {
	pageID := constants.PageID(imagePath)
	log := p.Log.With("page_id", pageID)

	img, err := imgutil.LoadPage(imagePath)
	if err != nil {
		return PageResult{}, err
	}
	bounds := img.Bounds()

	tiles := grid.Segment(bounds.Dx(), bounds.Dy())
	structuralSkips := grid.Rows*grid.Cols - len(tiles)
	log.Info("pipeline.page.segmented",
		"width", bounds.Dx(), "height", bounds.Dy(),
		"tiles", len(tiles), "skipped", structuralSkips)

	// One work item per sub-region; crops are taken in the tile's
	// local frame translated onto the page.
	items := make([]dispatch.Item, 0, len(tiles)*len(entity.RegionKinds))
	for _, tile := range tiles {
		for _, kind := range entity.RegionKinds {
			items = append(items, dispatch.Item{
				TileID: tile.ID,
				Kind:   kind,
				Image:  imgutil.Crop(img, tile.SubRegion(kind)),
			})
		}
	}

	results := p.Scheduler.Dispatch(ctx, p.Engine, items)

	agg := NewAggregator()
	agg.AddSkipped(structuralSkips)

	var writer *artifactWriter
	if p.ArtifactsDir != "" {
		writer, err = newArtifactWriter(p.ArtifactsDir, pageID)
		if err != nil {
			return PageResult{}, err
		}
	}

	for _, tile := range tiles {
		rec, regionOK := p.assembleRecord(pageID, tile, results)
		valid, reasons := p.Validator.Validate(rec)
		rec.Valid = valid
		if !valid {
			log.Debug("pipeline.record.rejected", "record_id", rec.RecordID, "reasons", reasons)
		}
		agg.Add(rec)

		if writer != nil {
			status := recordStatus(rec, regionOK)
			if err := writer.write(tile, img, results, status); err != nil {
				log.Warn("pipeline.artifacts.write_failed", "record_id", tile.ID, "error", err)
			}
		}
	}

	records, stats := agg.Finalize()
	log.Info("pipeline.page.ok",
		"total", stats.TotalTiles,
		"valid", stats.ValidRecords,
		"invalid", stats.InvalidRecords,
		"skipped", stats.SkippedTiles)
	return PageResult{PageID: pageID, Records: records, Stats: stats}, nil
}

// assembleRecord builds a VoterRecord from the three region results of
// a tile. regionOK reports whether every region recognized cleanly.
func (p *Processor) assembleRecord(pageID string, tile grid.Tile, results map[dispatch.Key]ocr.Result) (entity.VoterRecord, bool) {
	serialRes := results[dispatch.Key{TileID: tile.ID, Kind: entity.RegionSerial}]
	epicRes := results[dispatch.Key{TileID: tile.ID, Kind: entity.RegionEpic}]
	textRes := results[dispatch.Key{TileID: tile.ID, Kind: entity.RegionText}]
	regionOK := serialRes.Succeeded && epicRes.Succeeded && textRes.Succeeded

	rawText := fields.Clean(textRes.Text)
	epic := p.Extractor.ExtractEpicRegion(epicRes.Text)
	if epic == "" {
		// The EPIC sometimes survives only inside the text block.
		epic = p.Extractor.ExtractEpicInText(rawText)
	}

	return entity.VoterRecord{
		PageID:        pageID,
		RecordID:      tile.ID,
		Row:           tile.Row,
		Col:           tile.Col,
		Serial:        p.Extractor.ExtractSerial(serialRes.Text),
		Epic:          epic,
		Fields:        p.Extractor.ExtractFields(rawText),
		RawText:       rawText,
		RawTextLength: utf8.RuneCountInString(rawText),
	}, regionOK
}

// recordStatus picks the marker token persisted with a record's
// artifacts for the decoupled parse pass.
func recordStatus(rec entity.VoterRecord, regionOK bool) constants.RecordStatus {
	switch {
	case !regionOK:
		return constants.StatusOCRFailed
	case rec.Valid:
		return constants.StatusValid
	default:
		return constants.StatusLowText
	}
}

// Summary renders a one-line human summary of a page result.
func (r PageResult) Summary() string {
	return fmt.Sprintf("%s: %d/%d valid records", r.PageID, r.Stats.ValidRecords, r.Stats.TotalTiles)
}
