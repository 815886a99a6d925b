package detect

import (
	"regexp"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// DefaultContextRadius is how far either side of a positive match is inspected
const DefaultContextRadius = 45

// contextMarker stands in for the match inside the evaluated window
const contextMarker = " [MATCH] "

var (
	requirementContext = regexp.MustCompile(`\b(security clearance|active secret|only (us|u\.s\.) citizens|us citizen|us citizenship|permanent resident|green card holder|must be authorized to work in the united states without sponsorship)\b`)
	negationContext    = regexp.MustCompile(`\b(no|without|not|does not|doesn['’]t|will not|won['’]t|unable|not able|cannot|can['’]t|no sponsorship|no visa|not eligible|not eligible for sponsorship)\b`)
)

// Disambiguator checks the sentence around a positive match for negation
// or a requirement clause
type Disambiguator struct {
	Radius int
}

// Evaluate inspects text around [index, index+length) with the default radius
func Evaluate(text string, index, length int) model.ContextVerdict {
	return Disambiguator{Radius: DefaultContextRadius}.Evaluate(text, index, length)
}

// Evaluate classifies the window around a match. Only the fragments
// adjacent to the match, up to the nearest sentence terminator on each
// side, are considered.
func (d Disambiguator) Evaluate(text string, index, length int) model.ContextVerdict {
	radius := d.Radius
	if radius <= 0 {
		radius = DefaultContextRadius
	}
	if index < 0 || length < 0 || index+length > len(text) {
		return model.ContextVerdict{Kind: model.ContextNone}
	}

	lo, hi := util.Window(text, index, index+length, radius, radius)
	before := util.LastFragment(text[lo:index])
	after := util.FirstFragment(text[index+length : hi])
	window := before + contextMarker + after

	switch {
	case requirementContext.MatchString(window):
		return model.ContextVerdict{Kind: model.ContextRequirement, Window: window}
	case negationContext.MatchString(window):
		return model.ContextVerdict{Kind: model.ContextNegation, Window: window}
	default:
		return model.ContextVerdict{Kind: model.ContextNone, Window: window}
	}
}
