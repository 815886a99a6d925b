package detect

import (
	"regexp"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// Matcher finds the first phrase of one tier in normalized text
type Matcher struct {
	tier     model.Tier
	phrases  []string
	patterns []*regexp.Regexp
}

// NewMatcher compiles one boundary-anchored pattern per phrase
func NewMatcher(tier model.Tier, phrases []string) *Matcher {
	m := &Matcher{tier: tier}
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		m.phrases = append(m.phrases, phrase)
		m.patterns = append(m.patterns, util.WordPattern(phrase))
	}
	return m
}

// Tier reports which tier the matcher belongs to
func (m *Matcher) Tier() model.Tier {
	return m.tier
}

// Phrases returns the phrases in match order
func (m *Matcher) Phrases() []string {
	return append([]string(nil), m.phrases...)
}

// FirstMatch scans phrases in declared order and returns the earliest
// occurrence of the first phrase that occurs at all
func (m *Matcher) FirstMatch(text string) (model.MatchResult, bool) {
	for i, re := range m.patterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		return model.MatchResult{
			Tier:   m.tier,
			Phrase: m.phrases[i],
			Index:  loc[0],
			Length: loc[1] - loc[0],
		}, true
	}
	return model.MatchResult{}, false
}
