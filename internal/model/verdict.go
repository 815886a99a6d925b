package model

// Status is the sponsorship decision carried by a Verdict
type Status string

const (
	StatusYes       Status = "yes"
	StatusNo        Status = "no"
	StatusUnknown   Status = "unknown"
	StatusAmbiguous Status = "ambiguous"
	StatusLoading   Status = "loading"
)

// Reason explains which stage produced a Verdict
type Reason string

const (
	ReasonRequirement      Reason = "requirement"       // Requirement tier or requirement context
	ReasonExplicitNegative Reason = "explicit-negative" // Negative tier
	ReasonNegation         Reason = "negation"          // Positive match negated by nearby context
	ReasonPositive         Reason = "positive"          // Positive tier, clean context
	ReasonAIRequest        Reason = "ai-request"        // Ambiguous sentence awaiting the classifier
	ReasonAIAnalyzing      Reason = "ai-analyzing"      // Interim loading state
	ReasonAIPositive       Reason = "ai-positive"
	ReasonAINegative       Reason = "ai-negative"
	ReasonAIUnsure         Reason = "ai-unsure"
	ReasonAIError          Reason = "ai-error"
	ReasonKnownSponsor     Reason = "known-sponsor"
	ReasonNoMatch          Reason = "no-match"
	ReasonNoText           Reason = "no-text"
	ReasonDetectorError    Reason = "detector-error"
	ReasonNoDetector       Reason = "no-detector"
	ReasonNoClassifier     Reason = "no-classifier"
)

// Tier is one of the three fixed phrase priority classes
type Tier string

const (
	TierRequirement Tier = "requirement"
	TierNegative    Tier = "negative"
	TierPositive    Tier = "positive"
)

// MatchResult is the first phrase hit of a scan over normalized text
type MatchResult struct {
	Tier   Tier   `json:"tier"`
	Phrase string `json:"phrase"`
	Index  int    `json:"index"`  // Byte offset in normalized text
	Length int    `json:"length"` // Byte length of the match in normalized text
}

// ContextKind classifies the window around a positive match
type ContextKind string

const (
	ContextNone        ContextKind = "none"
	ContextNegation    ContextKind = "negation"
	ContextRequirement ContextKind = "requirement"
)

// ContextVerdict is the disambiguation result for a positive match
type ContextVerdict struct {
	Kind   ContextKind `json:"kind"`
	Window string      `json:"window"`
}

// Verdict is the decision object handed to callers and presenters
type Verdict struct {
	Status   Status  `json:"status"`
	Reason   Reason  `json:"reason"`
	Match    string  `json:"match,omitempty"`    // Matched phrase, sponsor name or classifier note
	Sentence string  `json:"sentence,omitempty"` // Candidate sentence for the classifier
	Snippet  string  `json:"snippet"`            // Raw-text context for display
	Tier     Tier    `json:"tier,omitempty"`
	Context  string  `json:"context,omitempty"` // Disambiguation window, when one was evaluated
	Score    float64 `json:"score,omitempty"`   // Classifier confidence, when one was consulted
}

// Conclusive reports whether the verdict is a definitive yes or no
func (v Verdict) Conclusive() bool {
	return v.Status == StatusYes || v.Status == StatusNo
}

// Overridable reports whether a later stage may replace the status
func (v Verdict) Overridable() bool {
	return v.Status == StatusUnknown || v.Status == StatusAmbiguous
}

// Loading returns the interim verdict published while the classifier runs
func (v Verdict) Loading() Verdict {
	out := v
	out.Status = StatusLoading
	out.Reason = ReasonAIAnalyzing
	return out
}

// Merge applies a later-stage verdict on top of v. Fields of the override win,
// except that a definitive yes/no in v is never replaced and v's snippet and
// sentence survive when the override lacks them.
func (v Verdict) Merge(override Verdict) Verdict {
	if v.Conclusive() {
		return v
	}
	out := override
	if out.Snippet == "" {
		out.Snippet = v.Snippet
	}
	if out.Snippet == "" {
		out.Snippet = v.Sentence
	}
	if out.Sentence == "" {
		out.Sentence = v.Sentence
	}
	return out
}
