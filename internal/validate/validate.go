// Package validate decides, per record, whether extracted data is
// trustworthy enough to keep. Two acceptance modes trade recall for
// precision; a pair of hard semantic checks applies in both.
package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/Sarthak-Sidhant/s1r/internal/entity"
)

// Mode selects the acceptance policy.
type Mode string

const (
	Lenient Mode = "lenient"
	Strict  Mode = "strict"
)

// ParseMode maps a configuration string to a Mode, defaulting to
// lenient.
func ParseMode(s string) Mode {
	if s == string(Strict) {
		return Strict
	}
	return Lenient
}

// RequiredFieldSet names the reduced required-field policy used in
// lenient mode. The two observed pipeline variants disagree on whether
// the third mandatory field is the EPIC id or the serial number, so the
// choice is explicit configuration.
type RequiredFieldSet string

const (
	RequireEpic   RequiredFieldSet = "name+age+epic"
	RequireSerial RequiredFieldSet = "name+age+serial"
)

const (
	minEpicLength = 6  // lenient gate: EPIC long enough to be plausible
	minTextLength = 20 // lenient gate: enough recovered text, counted in runes
	minAge        = 18
	maxAge        = 120
)

var reEpicCanonical = regexp.MustCompile(`^[A-Z]{3}[0-9]{6,7}$`)

// Validator applies per-field and per-record acceptance rules.
type Validator struct {
	mode     Mode
	required RequiredFieldSet
	logger   *slog.Logger
}

// New builds a validator. Zero values mean lenient mode with the
// name+age+epic required set.
func New(mode Mode, required RequiredFieldSet, logger *slog.Logger) *Validator {
	if mode == "" {
		mode = Lenient
	}
	if required == "" {
		required = RequireEpic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{mode: mode, required: required, logger: logger}
}

// Mode reports the active acceptance mode.
func (v *Validator) Mode() Mode { return v.mode }

// Validate returns the accept decision plus enumerable rejection
// reasons. The record itself is not mutated; callers stamp the decision
// onto the record they emit.
func (v *Validator) Validate(rec entity.VoterRecord) (bool, []string) {
	var reasons []string

	for _, field := range v.missingFields(rec) {
		reasons = append(reasons, "missing field "+field)
	}

	if v.mode == Lenient {
		// A record with a plausible EPIC or enough recovered text is
		// acceptable even when some fields failed to parse.
		if len(rec.Epic) < minEpicLength && rec.RawTextLength < minTextLength {
			reasons = append(reasons, "insufficient text")
		}
	}

	// Hard checks, independent of mode.
	if rec.Fields.Age != "" {
		if age, err := strconv.Atoi(rec.Fields.Age); err != nil {
			reasons = append(reasons, fmt.Sprintf("malformed age: %q", rec.Fields.Age))
		} else if age < minAge || age > maxAge {
			reasons = append(reasons, fmt.Sprintf("malformed age: %d out of range", age))
		}
	}
	if rec.Epic != "" && !reEpicCanonical.MatchString(rec.Epic) {
		if v.mode == Strict {
			reasons = append(reasons, fmt.Sprintf("malformed epic: %q", rec.Epic))
		} else {
			v.logger.Warn("validate.epic.malformed",
				"page_id", rec.PageID, "record_id", rec.RecordID, "epic", rec.Epic)
		}
	}

	return len(reasons) == 0, reasons
}

// missingFields returns the names of required fields with no match:
// every field in strict mode, the reduced set in lenient mode.
func (v *Validator) missingFields(rec entity.VoterRecord) []string {
	var missing []string
	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if v.mode == Strict {
		check("serial", rec.Serial)
		check("epic", rec.Epic)
		check("name", rec.Fields.Name)
		check("relation", rec.Fields.Relation)
		check("house_no", rec.Fields.HouseNo)
		check("age", rec.Fields.Age)
		check("gender", rec.Fields.Gender)
		return missing
	}

	check("name", rec.Fields.Name)
	check("age", rec.Fields.Age)
	if v.required == RequireSerial {
		check("serial", rec.Serial)
	} else {
		check("epic", rec.Epic)
	}
	return missing
}
