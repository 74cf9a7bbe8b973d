// Package export writes finalized voter records as flat tabular output:
// CSV as the canonical format, XLSX as a convenience mirror.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

// Columns is the fixed output column order. The header row is always
// written, even for an empty record set.
var Columns = []string{
	"page", "record_id", "row", "col",
	"serial", "epic",
	"name", "relation", "house_no", "age", "gender",
	"raw_text", "raw_text_length", "valid",
}

// WriteCSV streams records to w with the fixed header.
func WriteCSV(w io.Writer, records []entity.VoterRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("write record %s/%s: %w", rec.PageID, rec.RecordID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, creating parent directories as
// needed.
func WriteCSVFile(path string, records []entity.VoterRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Close()
}

func row(rec entity.VoterRecord) []string {
	return []string{
		rec.PageID,
		rec.RecordID,
		strconv.Itoa(rec.Row),
		strconv.Itoa(rec.Col),
		rec.Serial,
		rec.Epic,
		rec.Fields.Name,
		rec.Fields.Relation,
		rec.Fields.HouseNo,
		rec.Fields.Age,
		rec.Fields.Gender,
		rec.RawText,
		strconv.Itoa(rec.RawTextLength),
		strconv.FormatBool(rec.Valid),
	}
}
