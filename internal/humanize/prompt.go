package humanize

import "strings"

var readabilityDirectives = map[Readability]string{
	ReadabilityHighSchool: "Write at a high school reading level: short sentences, everyday vocabulary, no jargon.",
	ReadabilityUniversity: "Write at a university reading level: clear and articulate, with moderately complex sentences.",
	ReadabilityDoctorate:  "Write at a doctorate reading level: precise, nuanced language suited to expert readers.",
	ReadabilityJournalist: "Write like a journalist: punchy, direct, and easy to scan, leading with the key point.",
	ReadabilityMarketing:  "Write like a marketer: persuasive, upbeat, and focused on the reader's benefit.",
}

var purposeDirectives = map[Purpose]string{
	PurposeGeneral:   "The text is general writing; keep the tone natural and conversational.",
	PurposeAcademic:  "The text is academic; keep claims careful and the structure logical, without sounding robotic.",
	PurposeBusiness:  "The text is for business; stay professional and concise while sounding like a real colleague.",
	PurposeCreative:  "The text is creative; feel free to use vivid imagery and a distinct voice.",
	PurposeTechnical: "The text is technical; keep every term and fact accurate while explaining things plainly.",
}

var strengthDirectives = map[StrengthBand]string{
	BandLow:    "Make light edits only: smooth awkward phrasing and keep most of the original wording.",
	BandMedium: "Make moderate edits: rephrase sentences and vary rhythm while keeping the overall structure.",
	BandHigh:   "Rewrite thoroughly: restructure sentences and paragraphs so the text reads as if a person wrote it from scratch.",
}

var hardRequirements = []string{
	"Preserve the original meaning and every fact.",
	"Vary sentence length and structure.",
	"Use contractions and natural idioms where they fit.",
	"Never output bracket characters such as [ ] { } or < >.",
	"Return only the rewritten text with no preamble, notes, or quotes.",
}

// BuildSystemPrompt composes the chat instruction from the three option directives
// plus the fixed requirements.
func BuildSystemPrompt(opts Options) string {
	opts = opts.Normalize()

	var b strings.Builder
	b.WriteString("You rewrite AI-generated text so it reads as if a human wrote it.\n\n")
	b.WriteString(readabilityDirectives[opts.Readability])
	b.WriteString("\n")
	b.WriteString(purposeDirectives[opts.Purpose])
	b.WriteString("\n")
	b.WriteString(strengthDirectives[BandFor(opts.Strength)])
	b.WriteString("\n\nRequirements:\n")
	for _, req := range hardRequirements {
		b.WriteString("- ")
		b.WriteString(req)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
