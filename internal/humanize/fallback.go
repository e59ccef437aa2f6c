package humanize

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

// sentenceStart matches ". " followed by a capital letter.
var sentenceStart = regexp.MustCompile(`\. ([A-Z][^\s]*)`)

const defaultFillerRate = 0.3

// FallbackOptions controls the local rule-based rewrite.
//
// Rand is the only source of randomness. A nil Rand disables filler injection, which
// makes Transform a pure function of its input. FillerRate is the probability of a
// filler after each sentence boundary; zero means the default of 0.3.
type FallbackOptions struct {
	Rand       *rand.Rand
	FillerRate float64
}

// Fallback rewrites text with the embedded substitution table. It never fails and
// always returns text that differs from its input.
type Fallback struct {
	rules *ruleSet
	rate  float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFallback compiles the embedded rules.
func NewFallback(opts FallbackOptions) (*Fallback, error) {
	rs, err := loadDefaultRules()
	if err != nil {
		return nil, err
	}
	rate := opts.FillerRate
	if rate <= 0 || rate > 1 {
		rate = defaultFillerRate
	}
	return &Fallback{rules: rs, rate: rate, rnd: opts.Rand}, nil
}

// NewSeededRand returns a PCG source for reproducible filler injection.
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

func (f *Fallback) Name() string { return "fallback" }

// Attempt implements Strategy.
func (f *Fallback) Attempt(ctx context.Context, text string, _ Options) (string, error) {
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return "", Fatal(err)
	}
	return f.Transform(text), nil
}

// Transform applies substitutions, optional fillers, then guarantees a change.
func (f *Fallback) Transform(text string) string {
	out := f.rules.apply(text)
	out = f.injectFillers(out)
	if out == text {
		out = f.forceChange(text)
	}
	return out
}

func (f *Fallback) injectFillers(text string) string {
	if f.rnd == nil || len(f.rules.fillers) == 0 {
		return text
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return sentenceStart.ReplaceAllStringFunc(text, func(match string) string {
		if f.rnd.Float64() >= f.rate {
			return match
		}
		filler := f.rules.fillers[f.rnd.IntN(len(f.rules.fillers))]
		word := strings.TrimPrefix(match, ". ")
		return ". " + filler + lowerLeadingWord(word)
	})
}

// forceChange prefixes the text so the output is never identical to the input.
func (f *Fallback) forceChange(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	lead := text[:len(text)-len(trimmed)]
	return lead + f.rules.fallbackPrefix + lowerLeadingWord(trimmed)
}
