package ocr

import "github.com/Sarthak-Sidhant/s1r/internal/entity"

// Page segmentation modes used by the recognition profiles. Values
// follow the Tesseract numbering.
const (
	PSMSingleBlock = 6 // uniform block of text
	PSMSingleLine  = 7 // single text line
)

// Profile is the recognition configuration bound to one sub-region
// kind: language set, optional character whitelist and segmentation
// mode. Whitelists are mutually exclusive, so each profile needs its
// own engine context.
type Profile struct {
	Kind      entity.RegionKind
	Languages []string
	Whitelist string // empty means unrestricted
	PSM       int
}

// Fixed profiles for the three tile sub-regions.
var (
	SerialProfile = Profile{
		Kind:      entity.RegionSerial,
		Languages: []string{"eng"},
		Whitelist: "0123456789",
		PSM:       PSMSingleLine,
	}
	EpicProfile = Profile{
		Kind:      entity.RegionEpic,
		Languages: []string{"eng"},
		Whitelist: "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
		PSM:       PSMSingleLine,
	}
	TextProfile = Profile{
		Kind:      entity.RegionText,
		Languages: []string{"hin", "eng"},
		Whitelist: "",
		PSM:       PSMSingleBlock,
	}
)

// ProfileFor returns the fixed profile for a sub-region kind.
func ProfileFor(kind entity.RegionKind) Profile {
	switch kind {
	case entity.RegionSerial:
		return SerialProfile
	case entity.RegionEpic:
		return EpicProfile
	default:
		return TextProfile
	}
}
