package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Sarthak-Sidhant/s1r/constants"
	"github.com/Sarthak-Sidhant/s1r/internal/common"
	"github.com/Sarthak-Sidhant/s1r/internal/dispatch"
	"github.com/Sarthak-Sidhant/s1r/internal/entity"
	"github.com/Sarthak-Sidhant/s1r/internal/export"
	"github.com/Sarthak-Sidhant/s1r/internal/fields"
	"github.com/Sarthak-Sidhant/s1r/internal/ingest"
	"github.com/Sarthak-Sidhant/s1r/internal/ocr"
	"github.com/Sarthak-Sidhant/s1r/internal/pipeline"
	"github.com/Sarthak-Sidhant/s1r/internal/validate"
)

func main() {
	engineFlag := flag.String("engine", "subprocess", "recognition strategy: persistent|subprocess")
	modeFlag := flag.String("mode", "lenient", "validation mode: lenient|strict")
	xlsxFlag := flag.Bool("xlsx", false, "also write an XLSX workbook next to the CSV")
	artifactsFlag := flag.String("artifacts", "", "persist per-record crops, text and status under <dir>/ocr/<page>/")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("load .env", "error", err)
	}

	if flag.NArg() != 2 {
		logger.Error("usage", "cmd", "ocrpage [flags] <page-image> <out.csv>")
		os.Exit(2)
	}
	inputPath, outPath := flag.Arg(0), flag.Arg(1)
	logger = logger.With("run_id", uuid.NewString())

	info, err := os.Stat(inputPath)
	if err != nil {
		logger.Error("input not found", "path", inputPath, "error", err)
		os.Exit(1)
	}

	var pages []string
	if info.IsDir() {
		var stats ingest.DirStats
		pages, stats, err = ingest.ScanPages(inputPath)
		if err != nil {
			logger.Error("scan pages", "path", inputPath, "error", err)
			os.Exit(1)
		}
		if len(pages) == 0 {
			logger.Error("no page images found", "path", inputPath, "scanned", stats.Scanned)
			os.Exit(1)
		}
		logger.Info("ingest.scan.ok", "path", inputPath, "pages", len(pages))
	} else {
		if !constants.IsImageExt(inputPath) {
			logger.Error("unsupported image extension", "path", inputPath)
			os.Exit(2)
		}
		pages = []string{inputPath}
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	extractor, err := buildExtractor(cfg, logger)
	if err != nil {
		logger.Error("load pattern table", "path", cfg.Export.PatternTablePath, "error", err)
		os.Exit(1)
	}

	engine, scheduler, err := buildEngine(*engineFlag, cfg, logger)
	if err != nil {
		logger.Error("initialize recognition engine", "strategy", *engineFlag, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			logger.Error("close recognition engine", "error", cerr)
		}
	}()

	mode := validate.ParseMode(*modeFlag)
	if cfg.Validation.Strict {
		mode = validate.Strict
	}
	validator := validate.New(mode, requiredFields(cfg), logger)

	proc := pipeline.NewProcessor(engine, scheduler, extractor, validator, logger)
	proc.ArtifactsDir = *artifactsFlag

	ctx := context.Background()
	start := time.Now()
	agg := pipeline.NewAggregator()
	for _, page := range pages {
		res, err := proc.ProcessPage(ctx, page)
		if err != nil {
			logger.Error("page processing failed", "path", page, "error", err,
				"duration_ms", time.Since(start).Milliseconds())
			os.Exit(1)
		}
		logger.Info("page processing OK", "summary", res.Summary())
		for _, rec := range res.Records {
			agg.Add(rec)
		}
		agg.AddSkipped(res.Stats.SkippedTiles)
	}
	records, stats := agg.Finalize()

	if err := export.WriteCSVFile(outPath, records); err != nil {
		logger.Error("write csv", "path", outPath, "error", err)
		os.Exit(1)
	}
	if *xlsxFlag {
		if err := writeXLSX(outPath, records, logger); err != nil {
			logger.Error("write xlsx", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("run OK",
		"pages", len(pages),
		"records", len(records),
		"valid", stats.ValidRecords,
		"invalid", stats.InvalidRecords,
		"skipped", stats.SkippedTiles,
		"success_rate", stats.SuccessRate(),
		"output", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func buildExtractor(cfg *common.Config, logger *slog.Logger) (*fields.Extractor, error) {
	if cfg.Export.PatternTablePath == "" {
		return fields.DefaultExtractor(), nil
	}
	table, err := fields.LoadPatternTable(cfg.Export.PatternTablePath)
	if err != nil {
		return nil, err
	}
	logger.Info("fields.patterns.loaded", "path", cfg.Export.PatternTablePath)
	return fields.NewExtractor(table)
}

// buildEngine pairs each strategy with the scheduler it is safe under:
// the persistent engine holds per-profile client state and must run
// sequentially, the subprocess engine fans out across a bounded pool.
func buildEngine(strategy string, cfg *common.Config, logger *slog.Logger) (ocr.Engine, dispatch.Scheduler, error) {
	switch strategy {
	case "persistent":
		engine, err := ocr.NewPersistentEngine(ocr.PersistentConfig{
			TessdataDir: cfg.OCR.TessdataDir,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return engine, dispatch.Sequential{}, nil
	case "subprocess":
		engine := ocr.NewSubprocessEngine(ocr.SubprocessConfig{
			Tesseract:   cfg.OCR.Tesseract,
			TessdataDir: cfg.OCR.TessdataDir,
			OEM:         cfg.OCR.OEM,
			CallTimeout: cfg.OCR.CallTimeout,
			ScratchDir:  cfg.OCR.ScratchDir,
		}, logger)
		return engine, dispatch.NewPool(cfg.Dispatch.Workers, logger), nil
	default:
		return nil, nil, common.NewAppError("CONFIG_ERROR",
			"unknown engine strategy: "+strategy, common.ErrInvalidInput)
	}
}

func requiredFields(cfg *common.Config) validate.RequiredFieldSet {
	if cfg.Validation.RequireSerial {
		return validate.RequireSerial
	}
	return validate.RequireEpic
}

func writeXLSX(csvPath string, records []entity.VoterRecord, logger *slog.Logger) error {
	data, err := export.WriteXLSX(records, logger)
	if err != nil {
		return err
	}
	xlsxPath := strings.TrimSuffix(csvPath, ".csv") + ".xlsx"
	return os.WriteFile(xlsxPath, data, 0o644)
}
