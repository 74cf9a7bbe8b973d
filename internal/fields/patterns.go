package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PatternTable holds the label-keyed regular expressions applied to the
// free-text block. The bilingual label tokens are script-specific, so
// the table is a configuration surface rather than a fixed constant;
// DefaultPatternTable matches the Hindi/English register layout.
type PatternTable struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	HouseNo  string `json:"house_no"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
}

// DefaultPatternTable returns the built-in Hindi/English label patterns.
func DefaultPatternTable() PatternTable {
	return PatternTable{
		Name:     `निर्वाचक\s*का\s*नाम[\s:]*([^\n]+)`,
		Relation: `(?:पति|पिता|माता)\s*का\s*नाम[\s:]*([^\n]+)`,
		HouseNo:  `मकान\s*संख्या[\s:]*([^\n]+)`,
		Age:      `उम्र[\s:]*([0-9]{1,3})`,
		Gender:   `लिंग[\s:]*([^\n]+)`,
		Address:  `(?:पता|ग्राम)[^\n:：]*[:：]\s*([^\n]+)`,
	}
}

// Region-level patterns are not label-driven and stay fixed: serial ids
// are short digit runs, EPIC ids are 3 letters plus 6-7 digits (the
// region OCR pass tolerates a wider alphanumeric run). Matching is
// case-insensitive; the validator's canonical check is not.
const (
	SerialPattern      = `\b([0-9]{1,4})\b`
	EpicPattern        = `\b([A-Z]{3}[0-9]{6,7})\b`
	EpicRegionPattern  = `\b([A-Z0-9]{6,12})\b`
	EpicCanonicalMatch = `^[A-Z]{3}[0-9]{6,7}$`
)

// patternTableSchema validates user-supplied pattern tables: every
// field label must be present and a string.
var patternTableSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":     map[string]any{"type": "string", "minLength": 1},
		"relation": map[string]any{"type": "string", "minLength": 1},
		"house_no": map[string]any{"type": "string", "minLength": 1},
		"age":      map[string]any{"type": "string", "minLength": 1},
		"gender":   map[string]any{"type": "string", "minLength": 1},
		"address":  map[string]any{"type": "string", "minLength": 1},
	},
	"required":             []any{"name", "relation", "house_no", "age", "gender", "address"},
	"additionalProperties": false,
}

// LoadPatternTable reads a JSON pattern table and validates it against
// the schema before use.
func LoadPatternTable(path string) (PatternTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PatternTable{}, fmt.Errorf("read pattern table: %w", err)
	}
	if err := validatePatternTable(data); err != nil {
		return PatternTable{}, err
	}
	var t PatternTable
	if err := json.Unmarshal(data, &t); err != nil {
		return PatternTable{}, fmt.Errorf("decode pattern table: %w", err)
	}
	return t, nil
}

func validatePatternTable(data []byte) error {
	b, err := json.Marshal(patternTableSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pattern_table.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("pattern_table.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal pattern table: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("pattern table does not match schema: %w", err)
	}
	return nil
}
