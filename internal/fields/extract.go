// Package fields extracts named voter fields from recognized text via
// best-effort pattern matching. Patterns are applied to cleaned text
// and unmatched fields stay empty; semantic checks happen downstream in
// the validator.
package fields

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

var (
	reHorizWS  = regexp.MustCompile(`[ \t]+`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes OCR text before pattern application: runs of
// horizontal whitespace collapse to one space, 3+ line breaks collapse
// to two, and the result is trimmed. Idempotent.
func Clean(text string) string {
	text = reHorizWS.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Extractor applies a compiled pattern table to recognized text.
type Extractor struct {
	name     *regexp.Regexp
	relation *regexp.Regexp
	houseNo  *regexp.Regexp
	age      *regexp.Regexp
	gender   *regexp.Regexp
	address  *regexp.Regexp

	serial     *regexp.Regexp
	epicInText *regexp.Regexp
	epicRegion *regexp.Regexp
}

// NewExtractor compiles a pattern table. Patterns are case-insensitive;
// Go regexps are Unicode-aware, so Devanagari labels mix freely with
// Latin digits.
func NewExtractor(t PatternTable) (*Extractor, error) {
	compile := func(field, src string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(`(?i)` + src)
		if err != nil {
			return nil, fmt.Errorf("compile %s pattern: %w", field, err)
		}
		return re, nil
	}

	var e Extractor
	var err error
	if e.name, err = compile("name", t.Name); err != nil {
		return nil, err
	}
	if e.relation, err = compile("relation", t.Relation); err != nil {
		return nil, err
	}
	if e.houseNo, err = compile("house_no", t.HouseNo); err != nil {
		return nil, err
	}
	if e.age, err = compile("age", t.Age); err != nil {
		return nil, err
	}
	if e.gender, err = compile("gender", t.Gender); err != nil {
		return nil, err
	}
	if e.address, err = compile("address", t.Address); err != nil {
		return nil, err
	}
	// Region patterns are case-insensitive like the table patterns;
	// canonical-form enforcement happens in the validator.
	e.serial = regexp.MustCompile(`(?i)` + SerialPattern)
	e.epicInText = regexp.MustCompile(`(?i)` + EpicPattern)
	e.epicRegion = regexp.MustCompile(`(?i)` + EpicRegionPattern)
	return &e, nil
}

// DefaultExtractor compiles the built-in pattern table.
func DefaultExtractor() *Extractor {
	e, err := NewExtractor(DefaultPatternTable())
	if err != nil {
		// The default table is compiled in; failure is a programming error.
		panic(err)
	}
	return e
}

// first returns the first capture group of the pattern or "".
func first(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractFields applies the free-text pattern set to the unified text
// block. Text is cleaned before matching.
func (e *Extractor) ExtractFields(text string) entity.ParsedFields {
	text = Clean(text)
	return entity.ParsedFields{
		Name:     first(e.name, text),
		Relation: first(e.relation, text),
		HouseNo:  first(e.houseNo, text),
		Age:      first(e.age, text),
		Gender:   first(e.gender, text),
		Address:  first(e.address, text),
	}
}

// ExtractSerial applies the serial region pattern to the serial
// sub-region's recognized text.
func (e *Extractor) ExtractSerial(text string) string {
	return first(e.serial, Clean(text))
}

// ExtractEpicRegion applies the wide alphanumeric pattern to the EPIC
// sub-region's recognized text.
func (e *Extractor) ExtractEpicRegion(text string) string {
	return first(e.epicRegion, Clean(text))
}

// ExtractEpicInText finds a canonical EPIC id inside the free-text
// block, used when no dedicated EPIC region text is available.
func (e *Extractor) ExtractEpicInText(text string) string {
	return first(e.epicInText, Clean(text))
}
