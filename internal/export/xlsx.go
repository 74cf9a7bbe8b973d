package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

// WriteXLSX returns an XLSX workbook (as bytes) mirroring the CSV
// column layout.
func WriteXLSX(records []entity.VoterRecord, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, rec := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, rec.PageID)
		write(2, rec.RecordID)
		write(3, rec.Row)
		write(4, rec.Col)
		write(5, rec.Serial)
		write(6, rec.Epic)
		write(7, rec.Fields.Name)
		write(8, rec.Fields.Relation)
		write(9, rec.Fields.HouseNo)
		write(10, rec.Fields.Age)
		write(11, rec.Fields.Gender)
		write(12, rec.RawText)
		write(13, rec.RawTextLength)
		write(14, rec.Valid)
	}

	// Widen the identity and text columns.
	_ = f.SetColWidth(sheet, "A", "A", 16) // page
	_ = f.SetColWidth(sheet, "F", "F", 14) // epic
	_ = f.SetColWidth(sheet, "G", "I", 24) // name, relation, house
	_ = f.SetColWidth(sheet, "L", "L", 60) // raw text

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
