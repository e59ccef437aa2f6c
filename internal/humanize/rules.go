package humanize

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

type ruleSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type rulesFile struct {
	Transitions    []ruleSpec `yaml:"transitions"`
	Phrases        []ruleSpec `yaml:"phrases"`
	Words          []ruleSpec `yaml:"words"`
	Contractions   []ruleSpec `yaml:"contractions"`
	Fillers        []string   `yaml:"fillers"`
	FallbackPrefix string     `yaml:"fallback_prefix"`
}

type rule struct {
	re *regexp.Regexp
	to string
}

// ruleSet is the compiled, ordered substitution table.
type ruleSet struct {
	groups         [][]rule
	fillers        []string
	fallbackPrefix string
}

var loadDefaultRules = sync.OnceValues(func() (*ruleSet, error) {
	return parseRules(rulesYAML)
})

func parseRules(data []byte) (*ruleSet, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	rs := &ruleSet{fillers: f.Fillers, fallbackPrefix: f.FallbackPrefix}
	if rs.fallbackPrefix == "" {
		rs.fallbackPrefix = "Honestly, "
	}
	for _, group := range [][]ruleSpec{f.Transitions, f.Phrases, f.Words, f.Contractions} {
		compiled := make([]rule, 0, len(group))
		for _, spec := range group {
			if strings.TrimSpace(spec.From) == "" {
				return nil, fmt.Errorf("parse rules: empty pattern")
			}
			re, err := regexp.Compile(`(?i)` + boundary(spec.From, true) + regexp.QuoteMeta(spec.From) + boundary(spec.From, false))
			if err != nil {
				return nil, fmt.Errorf("compile rule %q: %w", spec.From, err)
			}
			compiled = append(compiled, rule{re: re, to: spec.To})
		}
		rs.groups = append(rs.groups, compiled)
	}
	return rs, nil
}

// boundary adds \b only where the pattern edge is a word character.
func boundary(s string, leading bool) string {
	var r rune
	if leading {
		r, _ = utf8.DecodeRuneInString(s)
	} else {
		r, _ = utf8.DecodeLastRuneInString(s)
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return `\b`
	}
	return ""
}

// apply runs every group in order.
func (rs *ruleSet) apply(text string) string {
	for _, group := range rs.groups {
		for _, r := range group {
			to := r.to
			text = r.re.ReplaceAllStringFunc(text, func(match string) string {
				return matchCase(match, to)
			})
		}
	}
	return text
}

// matchCase capitalizes the replacement when the match starts with an upper-case letter.
func matchCase(match, replacement string) string {
	first, _ := utf8.DecodeRuneInString(match)
	if unicode.IsUpper(first) {
		return upperFirst(replacement)
	}
	return replacement
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// leadingFunctionWords may be lowercased when a prefix or filler is put in front of
// them. Anything else (names, "I", acronyms) keeps its capitalization.
var leadingFunctionWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"it": {}, "its": {}, "it's": {}, "there": {}, "they": {}, "we": {}, "you": {},
	"he": {}, "she": {}, "our": {}, "my": {}, "your": {}, "their": {}, "his": {}, "her": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {}, "as": {}, "by": {}, "from": {},
	"when": {}, "if": {}, "but": {}, "and": {}, "so": {}, "then": {}, "also": {},
	"many": {}, "most": {}, "some": {}, "all": {}, "each": {}, "every": {}, "one": {},
}

// lowerLeadingWord lowercases the first letter only when the leading word is a
// common function word.
func lowerLeadingWord(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return s
	}
	end := strings.IndexFunc(s, func(c rune) bool {
		return !unicode.IsLetter(c) && c != '\''
	})
	word := s
	if end >= 0 {
		word = s[:end]
	}
	if _, ok := leadingFunctionWords[strings.ToLower(word)]; !ok {
		return s
	}
	if len(word) > size {
		if next, _ := utf8.DecodeRuneInString(word[size:]); unicode.IsUpper(next) {
			return s
		}
	}
	return string(unicode.ToLower(r)) + s[size:]
}
