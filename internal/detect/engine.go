package detect

import (
	"regexp"
	"strings"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

const (
	DefaultSnippetRadius     = 140
	DefaultMinSentenceLength = 20

	// ambiguousRadius is the raw-text window searched for sentence edges
	ambiguousRadius = 250
	// Head lengths used when no phrase anchors the snippet
	ambiguousHead = 300
	noMatchHead   = 400
)

// ambiguousTerms are bare words worth asking the classifier about
var ambiguousTerms = regexp.MustCompile(`(?i)\b(sponsor|sponsorship|visa|h1b|h-1b)\b`)

// Engine runs the requirement, negative and positive tiers over a document
// and falls back to extracting an ambiguous sentence. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	phrases       PhraseSet
	requirement   *Matcher
	negative      *Matcher
	positive      *Matcher
	disambiguator Disambiguator
	snippetRadius int
	minSentence   int
}

// Option configures an Engine
type Option func(*Engine)

// WithContextRadius sets the disambiguation radius
func WithContextRadius(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.disambiguator.Radius = n
		}
	}
}

// WithSnippetRadius sets how much raw text surrounds a match in the snippet
func WithSnippetRadius(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.snippetRadius = n
		}
	}
}

// WithMinSentenceLength sets the shortest ambiguous sentence worth escalating
func WithMinSentenceLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minSentence = n
		}
	}
}

// NewEngine builds an engine over the built-in phrases plus extra positive phrases
func NewEngine(extra []string, opts ...Option) *Engine {
	phrases := DefaultPhrases().WithExtra(extra)
	e := &Engine{
		phrases:       phrases,
		requirement:   NewMatcher(model.TierRequirement, phrases.Requirement),
		negative:      NewMatcher(model.TierNegative, phrases.Negative),
		positive:      NewMatcher(model.TierPositive, phrases.Positive),
		disambiguator: Disambiguator{Radius: DefaultContextRadius},
		snippetRadius: DefaultSnippetRadius,
		minSentence:   DefaultMinSentenceLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify is a convenience for one-off classification with default settings
func Classify(raw string, extra []string) model.Verdict {
	return NewEngine(extra).Classify(raw)
}

// Phrases returns the phrase lists the engine was built with
func (e *Engine) Phrases() PhraseSet {
	return e.phrases
}

// Classify produces a verdict for raw document text
func (e *Engine) Classify(raw string) model.Verdict {
	text := util.NormalizeWithOffsets(raw)
	if text.Normalized == "" {
		return model.Verdict{Status: model.StatusUnknown, Reason: model.ReasonNoText}
	}

	// Requirement and negation are dispositive regardless of any positive phrase
	if m, ok := e.requirement.FirstMatch(text.Normalized); ok {
		return e.matched(text, m, model.StatusNo, model.ReasonRequirement)
	}
	if m, ok := e.negative.FirstMatch(text.Normalized); ok {
		return e.matched(text, m, model.StatusNo, model.ReasonExplicitNegative)
	}

	if m, ok := e.positive.FirstMatch(text.Normalized); ok {
		ctx := e.disambiguator.Evaluate(text.Normalized, m.Index, m.Length)
		var v model.Verdict
		switch ctx.Kind {
		case model.ContextRequirement:
			v = e.matched(text, m, model.StatusNo, model.ReasonRequirement)
		case model.ContextNegation:
			v = e.matched(text, m, model.StatusNo, model.ReasonNegation)
		default:
			v = e.matched(text, m, model.StatusYes, model.ReasonPositive)
		}
		v.Context = ctx.Window
		return v
	}

	if sentence := e.ambiguousSentence(text.Source); sentence != "" {
		return model.Verdict{
			Status:   model.StatusAmbiguous,
			Reason:   model.ReasonAIRequest,
			Sentence: sentence,
			Snippet:  util.Head(text.Source, ambiguousHead),
		}
	}

	return model.Verdict{
		Status:  model.StatusUnknown,
		Reason:  model.ReasonNoMatch,
		Snippet: util.Head(text.Source, noMatchHead),
	}
}

// matched builds a verdict whose snippet is the raw context of the match
func (e *Engine) matched(text util.Text, m model.MatchResult, status model.Status, reason model.Reason) model.Verdict {
	start, end := text.SourceSpan(m.Index, m.Index+m.Length)
	return model.Verdict{
		Status:  status,
		Reason:  reason,
		Match:   m.Phrase,
		Tier:    m.Tier,
		Snippet: util.Around(text.Source, start, end, e.snippetRadius),
	}
}

// ambiguousSentence returns the sentence around the first sponsorship-adjacent
// word in src, or "" when there is none or it is too short to be useful
func (e *Engine) ambiguousSentence(src string) string {
	loc := ambiguousTerms.FindStringIndex(src)
	if loc == nil {
		return ""
	}

	lo, hi := util.Window(src, loc[0], loc[1], ambiguousRadius, ambiguousRadius)
	before := util.LastFragment(src[lo:loc[0]])
	after := util.FirstFragment(src[loc[1]:hi])
	sentence := strings.TrimSpace(before + src[loc[0]:loc[1]] + after)

	if len([]rune(sentence)) <= e.minSentence {
		return ""
	}
	return sentence
}
