package domain

import "strings"

// CulturalOrigin is the cuisine grouping a term belongs to.
type CulturalOrigin string

// Available cultural origins.
const (
	OriginOther            CulturalOrigin = "other"
	OriginAmericanCanadian CulturalOrigin = "american_canadian"
	OriginItalian          CulturalOrigin = "italian"
	OriginMexican          CulturalOrigin = "mexican"
	OriginKorean           CulturalOrigin = "korean"
	OriginJapanese         CulturalOrigin = "japanese"
	OriginChinese          CulturalOrigin = "chinese"
	OriginIndian           CulturalOrigin = "indian"
	OriginMiddleEastern    CulturalOrigin = "middle_eastern"
	OriginSoutheastAsian   CulturalOrigin = "southeast_asian"
	OriginFrench           CulturalOrigin = "french"
	OriginFusion           CulturalOrigin = "fusion"
)

var originLabels = map[CulturalOrigin]string{
	OriginOther:            "Other/Unclear",
	OriginAmericanCanadian: "American/Canadian",
	OriginItalian:          "Italian",
	OriginMexican:          "Mexican",
	OriginKorean:           "Korean",
	OriginJapanese:         "Japanese",
	OriginChinese:          "Chinese",
	OriginIndian:           "Indian",
	OriginMiddleEastern:    "Middle Eastern",
	OriginSoutheastAsian:   "Southeast Asian",
	OriginFrench:           "French",
	OriginFusion:           "Fusion",
}

// AllCulturalOrigins returns every known origin, "other" first.
func AllCulturalOrigins() []CulturalOrigin {
	return []CulturalOrigin{
		OriginOther,
		OriginAmericanCanadian,
		OriginItalian,
		OriginMexican,
		OriginKorean,
		OriginJapanese,
		OriginChinese,
		OriginIndian,
		OriginMiddleEastern,
		OriginSoutheastAsian,
		OriginFrench,
		OriginFusion,
	}
}

// ParseCulturalOrigin maps free text to an origin.
// Unknown or empty values map to OriginOther.
func ParseCulturalOrigin(s string) CulturalOrigin {
	o := CulturalOrigin(strings.ToLower(strings.TrimSpace(s)))
	if o.IsValid() {
		return o
	}
	return OriginOther
}

// IsValid returns true if the origin is recognised.
func (o CulturalOrigin) IsValid() bool {
	_, ok := originLabels[o]
	return ok
}

// OrDefault returns the origin, or OriginOther when unset.
func (o CulturalOrigin) OrDefault() CulturalOrigin {
	if o == "" {
		return OriginOther
	}
	return o
}

// String returns the string representation.
func (o CulturalOrigin) String() string {
	return string(o)
}

// Label returns a human-readable name for the origin.
func (o CulturalOrigin) Label() string {
	if label, ok := originLabels[o.OrDefault()]; ok {
		return label
	}
	return originLabels[OriginOther]
}

// Term is a tracked vocabulary entry.
type Term struct {
	// ID is the store-assigned identifier.
	ID int64

	// Text is the canonical term text: lowercase, trimmed, single-spaced.
	Text string

	// Active controls whether the term participates in matching and trends.
	Active bool

	// Origin is the cultural-origin tag. Defaults to OriginOther.
	Origin CulturalOrigin

	// OriginConfidence is informational only; matching ignores it.
	OriginConfidence float64
}

// IsPhrase reports whether the term contains a space.
func (t *Term) IsPhrase() bool {
	return strings.Contains(t.Text, " ")
}

// CanonicalTermText lowercases s and collapses runs of whitespace.
func CanonicalTermText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// TermFilter narrows a term listing.
type TermFilter struct {
	// IncludeInactive includes deactivated terms.
	IncludeInactive bool

	// Origin restricts the listing to one origin when set.
	Origin CulturalOrigin
}
