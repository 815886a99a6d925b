package detect

import "github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"

// Phrases that disqualify sponsored candidates outright
var requirementPhrases = []string{
	"must be a us citizen",
	"us citizen",
	"us citizenship",
	"u.s. citizen",
	"u.s. citizenship",
	"united states citizen",
	"must be a united states citizen",
	"citizen of the united states",
	"only us citizens",
	"only u.s. citizens",
	"permanent resident",
	"green card holder",
	"security clearance required",
	"security clearance",
	"clearance required",
	"top secret clearance",
	"ts/sci",
	"secret clearance",
	"must be authorized to work in the united states without sponsorship",
	"authorized to work in the united states",
	"legally authorized to work in the u.s",
	"legally authorized to work in the united states",
	"work authorization required",
	"us work authorization",
	"u.s. work authorization",
	"authorized to be employed",
	"legally authorized to be employed",
	"eligible for employment",
}

// Phrases that explicitly rule sponsorship out
var negativePhrases = []string{
	"without sponsorship",
	"no sponsorship",
	"no visa sponsorship",
	"will not sponsor",
	"does not sponsor",
	"do not sponsor",
	"not eligible for sponsorship",
	"no visa",
	"unable to sponsor",
	"not able to sponsor",
	"does not provide sponsorship",
	"do not provide sponsorship",
	"not provide sponsorship",
	"does not offer sponsorship",
	"do not offer sponsorship",
	"not offer sponsorship",
	"will not provide sponsorship",
	"will not offer sponsorship",
}

// Phrases that announce sponsorship, subject to context checks
var positivePhrases = []string{
	"visa sponsorship",
	"will sponsor",
	"can sponsor",
	"sponsorship available",
	"we can sponsor",
	"we will sponsor",
	"sponsorship provided",
	"sponsorship may be available",
	"h-1b",
	"h1b",
	"work visa",
	"work permit",
	"h1b sponsorship",
	"immigration sponsorship",
}

// PhraseSet holds the ordered phrase lists of the three tiers
type PhraseSet struct {
	Requirement []string
	Negative    []string
	Positive    []string
}

// DefaultPhrases returns a copy of the built-in phrase lists
func DefaultPhrases() PhraseSet {
	return PhraseSet{
		Requirement: append([]string(nil), requirementPhrases...),
		Negative:    append([]string(nil), negativePhrases...),
		Positive:    append([]string(nil), positivePhrases...),
	}
}

// WithExtra merges user phrases into the positive tier. Extras are
// normalized like document text; blanks and duplicates are dropped and
// the built-in order is preserved.
func (p PhraseSet) WithExtra(extra []string) PhraseSet {
	out := PhraseSet{
		Requirement: p.Requirement,
		Negative:    p.Negative,
		Positive:    append([]string(nil), p.Positive...),
	}

	seen := make(map[string]bool, len(out.Positive)+len(extra))
	for _, phrase := range out.Positive {
		seen[phrase] = true
	}
	for _, phrase := range extra {
		phrase = util.Normalize(phrase)
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		out.Positive = append(out.Positive, phrase)
	}
	return out
}
