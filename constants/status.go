package constants

// RecordStatus is the canonical status token written to a record's
// .status marker during the recognition stage.
type RecordStatus string

// Stable values (the parse stage matches these exact strings).
const (
	StatusValid     RecordStatus = "VALID"      // record recognized well enough to parse
	StatusLowText   RecordStatus = "LOW_TEXT"   // too little text recovered
	StatusOCRFailed RecordStatus = "OCR_FAILED" // one or more regions failed recognition
)
