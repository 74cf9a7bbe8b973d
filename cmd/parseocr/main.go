package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sarthak-Sidhant/s1r/internal/common"
	"github.com/Sarthak-Sidhant/s1r/internal/export"
	"github.com/Sarthak-Sidhant/s1r/internal/fields"
	"github.com/Sarthak-Sidhant/s1r/internal/pipeline"
	"github.com/Sarthak-Sidhant/s1r/internal/validate"
)

func main() {
	strictFlag := flag.Bool("strict", false, "reject records missing any expected field")
	validOnlyFlag := flag.Bool("valid-only", false, "export only records that passed validation")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("load .env", "error", err)
	}

	if flag.NArg() != 2 {
		logger.Error("usage", "cmd", "parseocr [flags] <artifacts-root> <out.csv>")
		os.Exit(2)
	}
	root, outPath := flag.Arg(0), flag.Arg(1)

	cfg := common.LoadConfig()
	mode := validate.Lenient
	if *strictFlag || cfg.Validation.Strict {
		mode = validate.Strict
	}

	extractor := fields.DefaultExtractor()
	if cfg.Export.PatternTablePath != "" {
		table, err := fields.LoadPatternTable(cfg.Export.PatternTablePath)
		if err != nil {
			logger.Error("load pattern table", "path", cfg.Export.PatternTablePath, "error", err)
			os.Exit(1)
		}
		extractor, err = fields.NewExtractor(table)
		if err != nil {
			logger.Error("compile pattern table", "error", err)
			os.Exit(1)
		}
	}

	// Persisted text artifacts carry no dedicated EPIC guarantee, so the
	// decoupled pass accepts serial-keyed records.
	parser := pipeline.NewArtifactParser(
		extractor,
		validate.New(mode, validate.RequireSerial, logger),
		logger,
	)

	start := time.Now()
	records, stats, err := parser.ParseTree(root)
	if err != nil {
		logger.Error("artifact parsing failed", "root", root, "error", err)
		os.Exit(1)
	}

	if *validOnlyFlag {
		records = pipeline.Accepted(records)
	}
	if err := export.WriteCSVFile(outPath, records); err != nil {
		logger.Error("write csv", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("artifact parsing OK",
		"records", len(records),
		"valid", stats.ValidRecords,
		"invalid", stats.InvalidRecords,
		"skipped", stats.SkippedTiles,
		"output", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Printf("parsed %d records (%d valid, %d invalid, %d skipped), success rate %.1f%%\n",
		len(records), stats.ValidRecords, stats.InvalidRecords, stats.SkippedTiles,
		stats.SuccessRate()*100)
}
