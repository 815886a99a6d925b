package rescan

import (
	"context"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// Detector is the deterministic classification engine
type Detector interface {
	Classify(raw string) model.Verdict
}

// SponsorLookup may upgrade an unknown or ambiguous verdict for a known sponsor
type SponsorLookup interface {
	Override(v model.Verdict, organization string) model.Verdict
}

// SentenceClassifier resolves an ambiguous sentence. Implementations report
// failures as verdict reasons rather than errors.
type SentenceClassifier interface {
	Classify(ctx context.Context, sentence string) model.Verdict
}

// MetadataProvider describes the document currently being shown
type MetadataProvider interface {
	Meta(ctx context.Context) (model.JobMeta, error)
}

// KeywordExtractor tags a document with display names
type KeywordExtractor interface {
	Extract(text string) []string
}

// Presenter receives every published result. Render must tolerate repeated
// calls with rapidly changing data.
type Presenter interface {
	Render(res model.Result)
	Clear()
}

// Mounter is implemented by presenters that can lose their output surface
type Mounter interface {
	Mounted() bool
}

// DetectorFunc adapts a function to Detector
type DetectorFunc func(raw string) model.Verdict

func (f DetectorFunc) Classify(raw string) model.Verdict { return f(raw) }

// ClassifierFunc adapts a function to SentenceClassifier
type ClassifierFunc func(ctx context.Context, sentence string) model.Verdict

func (f ClassifierFunc) Classify(ctx context.Context, sentence string) model.Verdict {
	return f(ctx, sentence)
}

// KeywordFunc adapts a function to KeywordExtractor
type KeywordFunc func(text string) []string

func (f KeywordFunc) Extract(text string) []string { return f(text) }

type noDetector struct{}

func (noDetector) Classify(string) model.Verdict {
	return model.Verdict{Status: model.StatusUnknown, Reason: model.ReasonNoDetector}
}

type noSponsors struct{}

func (noSponsors) Override(v model.Verdict, _ string) model.Verdict { return v }

// noClassifier leaves an ambiguous verdict ambiguous
type noClassifier struct{}

func (noClassifier) Classify(context.Context, string) model.Verdict {
	return model.Verdict{Status: model.StatusAmbiguous, Reason: model.ReasonNoClassifier}
}

type noKeywords struct{}

func (noKeywords) Extract(string) []string { return nil }

type noPresenter struct{}

func (noPresenter) Render(model.Result) {}
func (noPresenter) Clear()              {}
