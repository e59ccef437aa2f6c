package humanize

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseStrength(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "missing", raw: "", want: 0.9},
		{name: "null", raw: "null", want: 0.9},
		{name: "number", raw: "0.5", want: 0.5},
		{name: "string", raw: `"0.3"`, want: 0.3},
		{name: "lower bound", raw: "0.1", want: 0.1},
		{name: "out of range", raw: "5.0", want: 0.9},
		{name: "below range", raw: "0.05", want: 0.9},
		{name: "garbage string", raw: `"strong"`, want: 0.9},
		{name: "wrong type", raw: `true`, want: 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStrength(json.RawMessage(tt.raw)); got != tt.want {
				t.Fatalf("ParseStrength(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseEnumsAreCaseInsensitiveWithDefaults(t *testing.T) {
	if got := ParseReadability("Gibberish"); got != ReadabilityUniversity {
		t.Fatalf("expected University default, got %q", got)
	}
	if got := ParseReadability(" high school "); got != ReadabilityHighSchool {
		t.Fatalf("expected canonical High School, got %q", got)
	}
	if got := ParsePurpose("TECHNICAL"); got != PurposeTechnical {
		t.Fatalf("expected Technical, got %q", got)
	}
	if got := ParsePurpose(""); got != PurposeGeneral {
		t.Fatalf("expected General Writing default, got %q", got)
	}
}

func TestNormalizeOptions(t *testing.T) {
	got := Options{Readability: "marketing", Purpose: "nope", Strength: 5.0}.Normalize()
	want := Options{Readability: ReadabilityMarketing, Purpose: PurposeGeneral, Strength: 0.9}
	if got != want {
		t.Fatalf("Normalize() = %+v, want %+v", got, want)
	}
}

func TestBandFor(t *testing.T) {
	cases := map[float64]StrengthBand{0.1: BandLow, 0.29: BandLow, 0.3: BandMedium, 0.59: BandMedium, 0.6: BandHigh, 0.9: BandHigh}
	for in, want := range cases {
		if got := BandFor(in); got != want {
			t.Fatalf("BandFor(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText("   \n\t"); err == nil || err.Error() != MsgEmptyText {
		t.Fatalf("expected empty text error, got %v", err)
	}
	if err := ValidateText("short"); err == nil || err.Error() != MsgTextTooShort {
		t.Fatalf("expected too short error, got %v", err)
	}
	var v *ValidationError
	if err := ValidateText(strings.Repeat("a", 49)); !errors.As(err, &v) {
		t.Fatalf("expected validation error at 49 chars, got %v", err)
	}
	if err := ValidateText(strings.Repeat("a", 50)); err != nil {
		t.Fatalf("expected 50 chars to pass, got %v", err)
	}
	if err := ValidateText(strings.Repeat("é", 50)); err != nil {
		t.Fatalf("expected 50 multibyte chars to pass, got %v", err)
	}
}
