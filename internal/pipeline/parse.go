package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Sarthak-Sidhant/s1r/constants"
	"github.com/Sarthak-Sidhant/s1r/internal/common"
	"github.com/Sarthak-Sidhant/s1r/internal/entity"
	"github.com/Sarthak-Sidhant/s1r/internal/fields"
	"github.com/Sarthak-Sidhant/s1r/internal/grid"
	"github.com/Sarthak-Sidhant/s1r/internal/validate"
)

// ArtifactParser reconstructs voter records from persisted per-region
// text artifacts without re-invoking recognition. Records whose status
// marker is not VALID are skipped outright, not counted as invalid.
type ArtifactParser struct {
	Extractor *fields.Extractor
	Validator *validate.Validator
	Log       *slog.Logger
}

// NewArtifactParser assembles the decoupled-mode parser.
func NewArtifactParser(ex *fields.Extractor, v *validate.Validator, log *slog.Logger) *ArtifactParser {
	if log == nil {
		log = slog.Default()
	}
	return &ArtifactParser{Extractor: ex, Validator: v, Log: log}
}

// ParsePage parses all records of one page's artifact directory into
// the aggregator.
func (p *ArtifactParser) ParsePage(dir, pageID string, agg *Aggregator) error {
	statusFiles, err := filepath.Glob(filepath.Join(dir, "record_*.status"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(statusFiles)
	p.Log.Info("parse.page.start", "page_id", pageID, "records", len(statusFiles))

	for _, statusFile := range statusFiles {
		recordID := recordIDFromStatusFile(statusFile)

		status, err := os.ReadFile(statusFile)
		if err != nil || strings.TrimSpace(string(status)) != string(constants.StatusValid) {
			agg.AddSkipped(1)
			continue
		}

		rec := p.parseRecord(dir, pageID, recordID)
		valid, reasons := p.Validator.Validate(rec)
		rec.Valid = valid
		if !valid {
			p.Log.Debug("parse.record.rejected", "page_id", pageID, "record_id", recordID, "reasons", reasons)
		}
		agg.Add(rec)
	}
	return nil
}

// parseRecord reads the three region text files for a record. A
// missing file degrades to empty text for that region only.
func (p *ArtifactParser) parseRecord(dir, pageID, recordID string) entity.VoterRecord {
	read := func(kind entity.RegionKind) string {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("record_%s_%s.txt", recordID, kind)))
		if err != nil {
			return ""
		}
		return string(data)
	}

	rawText := fields.Clean(read(entity.RegionText))
	row, col := positionFromRecordID(recordID)

	return entity.VoterRecord{
		PageID:        pageID,
		RecordID:      recordID,
		Row:           row,
		Col:           col,
		Serial:        p.Extractor.ExtractSerial(read(entity.RegionSerial)),
		Epic:          p.Extractor.ExtractEpicRegion(read(entity.RegionEpic)),
		Fields:        p.Extractor.ExtractFields(rawText),
		RawText:       rawText,
		RawTextLength: utf8.RuneCountInString(rawText),
	}
}

// ParseTree walks <root>/ocr/<page>/ directories in sorted order and
// parses every page found, returning the combined records and stats.
func (p *ArtifactParser) ParseTree(root string) ([]entity.VoterRecord, entity.PageStats, error) {
	ocrBase := filepath.Join(root, "ocr")
	entries, err := os.ReadDir(ocrBase)
	if err != nil {
		return nil, entity.PageStats{}, common.NewAppError("PARSE_INPUT",
			"artifact directory not found: "+ocrBase, common.ErrNotFound)
	}

	var pages []string
	for _, e := range entries {
		if e.IsDir() {
			pages = append(pages, e.Name())
		}
	}
	sort.Strings(pages)
	p.Log.Info("parse.tree.start", "pages", len(pages))

	agg := NewAggregator()
	for _, pageID := range pages {
		if err := p.ParsePage(filepath.Join(ocrBase, pageID), pageID, agg); err != nil {
			return nil, entity.PageStats{}, err
		}
	}
	records, stats := agg.Finalize()
	p.Log.Info("parse.tree.ok",
		"total", stats.TotalTiles,
		"valid", stats.ValidRecords,
		"invalid", stats.InvalidRecords,
		"skipped", stats.SkippedTiles)
	return records, stats, nil
}

func recordIDFromStatusFile(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".status")
	return strings.TrimPrefix(base, "record_")
}

// positionFromRecordID recovers (row, col) from a row-major record id.
func positionFromRecordID(id string) (int, int) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 0 {
		return 0, 0
	}
	return n / grid.Cols, n % grid.Cols
}
