package fields

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTile = "1\t23\nनिर्वाचक का नाम: रमेश कुमार\nपिता का नाम : सुरेश कुमार\nमकान संख्या: 12-ब\nउम्र: 45   लिंग: पुरुष\n"

func TestCleanCollapsesWhitespace(t *testing.T) {
	in := "a \t  b\n\n\n\n\nc  d\t\te  "
	want := "a b\n\nc d e"
	if got := Clean(in); got != want {
		t.Fatalf("Clean = %q, want %q", got, want)
	}
}

func TestCleanIdempotent(t *testing.T) {
	once := Clean(sampleTile)
	if twice := Clean(once); twice != once {
		t.Fatalf("Clean not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestExtractFields(t *testing.T) {
	e := DefaultExtractor()
	got := e.ExtractFields(sampleTile)

	if got.Name != "रमेश कुमार" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Relation != "सुरेश कुमार" {
		t.Errorf("relation = %q", got.Relation)
	}
	if got.HouseNo != "12-ब" {
		t.Errorf("house_no = %q", got.HouseNo)
	}
	if got.Age != "45" {
		t.Errorf("age = %q", got.Age)
	}
	if got.Gender != "पुरुष" {
		t.Errorf("gender = %q", got.Gender)
	}
}

func TestExtractFieldsUnmatchedAreEmpty(t *testing.T) {
	e := DefaultExtractor()
	got := e.ExtractFields("completely unrelated noise 123")
	if got.Name != "" || got.Relation != "" || got.HouseNo != "" || got.Gender != "" || got.Address != "" {
		t.Fatalf("expected empty fields, got %+v", got)
	}
}

func TestExtractFieldsIdempotentOnCleanedText(t *testing.T) {
	e := DefaultExtractor()
	cleaned := Clean(sampleTile)
	if a, b := e.ExtractFields(sampleTile), e.ExtractFields(cleaned); a != b {
		t.Fatalf("extraction differs on cleaned text:\n%+v\n%+v", a, b)
	}
}

func TestExtractSerial(t *testing.T) {
	e := DefaultExtractor()
	cases := []struct{ in, want string }{
		{"123", "123"},
		{"  4567 \n", "4567"},
		{"no digits", ""},
		{"99999", ""}, // 5-digit run is not a serial
		{"id 42 here", "42"},
	}
	for _, c := range cases {
		if got := e.ExtractSerial(c.in); got != c.want {
			t.Errorf("ExtractSerial(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractEpic(t *testing.T) {
	e := DefaultExtractor()
	if got := e.ExtractEpicRegion("ABC1234567"); got != "ABC1234567" {
		t.Errorf("region epic = %q", got)
	}
	// The region pattern tolerates wider alphanumeric runs.
	if got := e.ExtractEpicRegion("AB123456"); got != "AB123456" {
		t.Errorf("region epic wide = %q", got)
	}
	// The in-text pattern requires the canonical shape.
	if got := e.ExtractEpicInText("epic ABC1234567 end"); got != "ABC1234567" {
		t.Errorf("in-text epic = %q", got)
	}
	if got := e.ExtractEpicInText("epic AB123456 end"); got != "" {
		t.Errorf("in-text epic should reject 2-letter prefix, got %q", got)
	}
	// Matching is case-insensitive; lowercase ids are extracted as-is
	// and left to the validator's canonical check.
	if got := e.ExtractEpicRegion("abc1234567"); got != "abc1234567" {
		t.Errorf("lowercase region epic = %q", got)
	}
	if got := e.ExtractEpicInText("epic xyz1234567 end"); got != "xyz1234567" {
		t.Errorf("lowercase in-text epic = %q", got)
	}
}

func TestLoadPatternTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	good := `{
		"name": "Name[\\s:]*([^\\n]+)",
		"relation": "Father[\\s:]*([^\\n]+)",
		"house_no": "House[\\s:]*([^\\n]+)",
		"age": "Age[\\s:]*([0-9]{1,3})",
		"gender": "Sex[\\s:]*([^\\n]+)",
		"address": "Addr[\\s:]*([^\\n]+)"
	}`
	if err := os.WriteFile(path, []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadPatternTable(path)
	if err != nil {
		t.Fatalf("LoadPatternTable: %v", err)
	}
	e, err := NewExtractor(table)
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	got := e.ExtractFields("Name: John Doe\nAge: 33")
	if got.Name != "John Doe" || got.Age != "33" {
		t.Fatalf("custom table extraction failed: %+v", got)
	}
}

func TestLoadPatternTableRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	if err := os.WriteFile(path, []byte(`{"name": "x"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPatternTable(path); err == nil {
		t.Fatal("expected schema validation error for incomplete table")
	}
}
