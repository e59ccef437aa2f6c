package humanize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Readability is the target reading level of the rewritten text.
type Readability string

const (
	ReadabilityHighSchool Readability = "High School"
	ReadabilityUniversity Readability = "University"
	ReadabilityDoctorate  Readability = "Doctorate"
	ReadabilityJournalist Readability = "Journalist"
	ReadabilityMarketing  Readability = "Marketing"
)

// Purpose is the writing domain of the rewritten text.
type Purpose string

const (
	PurposeGeneral   Purpose = "General Writing"
	PurposeAcademic  Purpose = "Academic"
	PurposeBusiness  Purpose = "Business"
	PurposeCreative  Purpose = "Creative"
	PurposeTechnical Purpose = "Technical"
)

const (
	DefaultReadability = ReadabilityUniversity
	DefaultPurpose     = PurposeGeneral
	DefaultStrength    = 0.9
	MinStrength        = 0.1
	MaxStrength        = 0.9

	// MinTextLength is counted in characters of the untrimmed input.
	MinTextLength = 50
)

var readabilities = []Readability{
	ReadabilityHighSchool, ReadabilityUniversity, ReadabilityDoctorate, ReadabilityJournalist, ReadabilityMarketing,
}

var purposes = []Purpose{
	PurposeGeneral, PurposeAcademic, PurposeBusiness, PurposeCreative, PurposeTechnical,
}

// Options tunes a rewrite.
type Options struct {
	Readability Readability `json:"readability"`
	Purpose     Purpose     `json:"purpose"`
	Strength    float64     `json:"strength"`
}

// DefaultOptions returns University / General Writing / 0.9.
func DefaultOptions() Options {
	return Options{Readability: DefaultReadability, Purpose: DefaultPurpose, Strength: DefaultStrength}
}

// Normalize replaces unknown enums and out-of-range strength with defaults.
func (o Options) Normalize() Options {
	return Options{
		Readability: ParseReadability(string(o.Readability)),
		Purpose:     ParsePurpose(string(o.Purpose)),
		Strength:    normalizeStrength(o.Strength),
	}
}

// ParseReadability matches case-insensitively and returns the canonical value,
// or the default for anything unrecognized.
func ParseReadability(raw string) Readability {
	key := strings.TrimSpace(raw)
	for _, r := range readabilities {
		if strings.EqualFold(key, string(r)) {
			return r
		}
	}
	return DefaultReadability
}

// ParsePurpose matches case-insensitively and returns the canonical value,
// or the default for anything unrecognized.
func ParsePurpose(raw string) Purpose {
	key := strings.TrimSpace(raw)
	for _, p := range purposes {
		if strings.EqualFold(key, string(p)) {
			return p
		}
	}
	return DefaultPurpose
}

// ParseStrength accepts a JSON number or numeric string. Missing, malformed, or
// out-of-range values yield DefaultStrength.
func ParseStrength(raw json.RawMessage) float64 {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return DefaultStrength
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return normalizeStrength(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return DefaultStrength
		}
		return normalizeStrength(f)
	}
	return DefaultStrength
}

func normalizeStrength(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinStrength || v > MaxStrength {
		return DefaultStrength
	}
	return v
}

// StrengthBand buckets strength into low (< 0.3), medium (< 0.6) and high.
type StrengthBand string

const (
	BandLow    StrengthBand = "low"
	BandMedium StrengthBand = "medium"
	BandHigh   StrengthBand = "high"
)

func BandFor(strength float64) StrengthBand {
	switch {
	case strength < 0.3:
		return BandLow
	case strength < 0.6:
		return BandMedium
	default:
		return BandHigh
	}
}

// ValidateText enforces the non-empty and minimum-length rules.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Message: MsgEmptyText}
	}
	if utf8.RuneCountInString(text) < MinTextLength {
		return &ValidationError{Message: MsgTextTooShort}
	}
	return nil
}
