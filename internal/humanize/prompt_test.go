package humanize

import (
	"strings"
	"testing"
)

func TestBuildSystemPromptComposesDirectives(t *testing.T) {
	prompt := BuildSystemPrompt(Options{Readability: ReadabilityJournalist, Purpose: PurposeTechnical, Strength: 0.2})

	for _, want := range []string{
		readabilityDirectives[ReadabilityJournalist],
		purposeDirectives[PurposeTechnical],
		strengthDirectives[BandLow],
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q\n%s", want, prompt)
		}
	}
	for _, req := range hardRequirements {
		if !strings.Contains(prompt, req) {
			t.Fatalf("expected prompt to contain requirement %q", req)
		}
	}
}

func TestBuildSystemPromptDefaultsInvalidOptions(t *testing.T) {
	prompt := BuildSystemPrompt(Options{Readability: "???", Purpose: "", Strength: 7})
	if !strings.Contains(prompt, readabilityDirectives[ReadabilityUniversity]) {
		t.Fatalf("expected university directive")
	}
	if !strings.Contains(prompt, strengthDirectives[BandHigh]) {
		t.Fatalf("expected high strength directive for default 0.9")
	}
}

func TestStrengthBandsSelectDirective(t *testing.T) {
	cases := map[float64]StrengthBand{0.1: BandLow, 0.45: BandMedium, 0.75: BandHigh}
	for strength, band := range cases {
		prompt := BuildSystemPrompt(Options{Strength: strength})
		if !strings.Contains(prompt, strengthDirectives[band]) {
			t.Fatalf("strength %v: expected %s directive", strength, band)
		}
	}
}
