package entity

// RegionKind names one of the three fixed sub-regions of a voter tile.
type RegionKind string

const (
	RegionSerial RegionKind = "serial"
	RegionEpic   RegionKind = "epic"
	RegionText   RegionKind = "text"
)

// RegionKinds lists the sub-regions in the order they are recognized
// within a tile.
var RegionKinds = []RegionKind{RegionSerial, RegionEpic, RegionText}

// ParsedFields holds the named fields extracted from a tile's text.
// Absent fields are empty strings, never sentinel errors.
type ParsedFields struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	HouseNo  string `json:"house_no"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
}

// VoterRecord is one tile's worth of extracted data. It is constructed
// from recognition results, enriched by field extraction, finalized by
// validation and never mutated afterwards.
type VoterRecord struct {
	PageID        string       `json:"page_id"`
	RecordID      string       `json:"record_id"`
	Row           int          `json:"row"`
	Col           int          `json:"col"`
	Serial        string       `json:"serial"`
	Epic          string       `json:"epic"`
	Fields        ParsedFields `json:"fields"`
	RawText       string       `json:"raw_text"`
	RawTextLength int          `json:"raw_text_length"`
	Valid         bool         `json:"valid"`
}

// PageStats accumulates per-run counters across pages.
type PageStats struct {
	TotalTiles     int `json:"total_tiles"`
	ValidRecords   int `json:"valid_records"`
	InvalidRecords int `json:"invalid_records"`
	SkippedTiles   int `json:"skipped_tiles"`
}

// SuccessRate returns valid records as a fraction of total tiles, or 0
// when nothing was processed.
func (s PageStats) SuccessRate() float64 {
	if s.TotalTiles == 0 {
		return 0
	}
	return float64(s.ValidRecords) / float64(s.TotalTiles)
}
