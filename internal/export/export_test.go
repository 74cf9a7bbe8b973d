package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

func sampleRecords() []entity.VoterRecord {
	return []entity.VoterRecord{
		{
			PageID: "page_001", RecordID: "00", Row: 0, Col: 0,
			Serial: "1", Epic: "ABC1234567",
			Fields: entity.ParsedFields{
				Name: "रमेश कुमार", Relation: "सुरेश", HouseNo: "12", Age: "45", Gender: "पुरुष",
			},
			RawText: "निर्वाचक का नाम: रमेश कुमार\nउम्र: 45", RawTextLength: 38, Valid: true,
		},
		{
			PageID: "page_001", RecordID: "01", Row: 0, Col: 1,
			RawText: "noise", RawTextLength: 5, Valid: false,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(Columns) {
		t.Fatalf("header has %d columns, want %d", len(rows[0]), len(Columns))
	}
	if rows[0][0] != "page" || rows[0][len(Columns)-1] != "valid" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][5] != "ABC1234567" || rows[1][13] != "true" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][13] != "false" {
		t.Fatalf("invalid record should carry valid=false: %v", rows[2])
	}
	// Embedded newlines in raw text must survive the round trip.
	if rows[1][11] != "निर्वाचक का नाम: रमेश कुमार\nउम्र: 45" {
		t.Fatalf("raw text mangled: %q", rows[1][11])
	}
}

func TestWriteCSVEmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected lone header row, got %d rows", len(rows))
	}
}

func TestWriteCSVFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "records.csv")
	if err := WriteCSVFile(path, sampleRecords()); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleRecords(), nil)
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
}
