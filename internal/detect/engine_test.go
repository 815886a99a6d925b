package detect

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

func TestEngine_Classify(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantStatus model.Status
		wantReason model.Reason
		wantMatch  string
	}{
		{
			name:       "requirement beats positive",
			text:       "We offer visa sponsorship. Must be a US citizen.",
			wantStatus: model.StatusNo,
			wantReason: model.ReasonRequirement,
			wantMatch:  "must be a us citizen",
		},
		{
			name:       "tier order beats sentence window",
			text:       "We do not sponsor visas. Elsewhere, we sponsor relocation.",
			wantStatus: model.StatusNo,
			wantReason: model.ReasonExplicitNegative,
			wantMatch:  "do not sponsor",
		},
		{
			name:       "explicit negative",
			text:       "This position is not eligible for sponsorship.",
			wantStatus: model.StatusNo,
			wantReason: model.ReasonExplicitNegative,
			wantMatch:  "not eligible for sponsorship",
		},
		{
			name:       "positive",
			text:       "Great team. H1B sponsorship available for the right candidate.",
			wantStatus: model.StatusYes,
			wantReason: model.ReasonPositive,
			wantMatch:  "sponsorship available",
		},
		{
			name:       "negated positive",
			text:       "Unfortunately we cannot offer visa sponsorship for this role.",
			wantStatus: model.StatusNo,
			wantReason: model.ReasonNegation,
			wantMatch:  "visa sponsorship",
		},
		{
			name:       "requirement context",
			text:       "H-1B holders with an active secret are preferred.",
			wantStatus: model.StatusNo,
			wantReason: model.ReasonRequirement,
			wantMatch:  "h-1b",
		},
		{
			name:       "negation in previous sentence does not leak",
			text:       "No relocation. We will sponsor H-1B visas.",
			wantStatus: model.StatusYes,
			wantReason: model.ReasonPositive,
			wantMatch:  "will sponsor",
		},
		{
			name:       "diacritics",
			text:       "We will spónsor qualified applicants.",
			wantStatus: model.StatusYes,
			wantReason: model.ReasonPositive,
			wantMatch:  "will sponsor",
		},
		{
			name:       "ambiguous",
			text:       "Sponsorship might be considered depending on team budget.",
			wantStatus: model.StatusAmbiguous,
			wantReason: model.ReasonAIRequest,
		},
		{
			name:       "ambiguous sentence too short",
			text:       "Visa? Ask HR.",
			wantStatus: model.StatusUnknown,
			wantReason: model.ReasonNoMatch,
		},
		{
			name:       "no vocabulary",
			text:       "We build search infrastructure at planet scale.",
			wantStatus: model.StatusUnknown,
			wantReason: model.ReasonNoMatch,
		},
		{
			name:       "advisable is not visa",
			text:       "It is advisable to apply before the end of the month.",
			wantStatus: model.StatusUnknown,
			wantReason: model.ReasonNoMatch,
		},
		{
			name:       "empty",
			text:       " \n\t ",
			wantStatus: model.StatusUnknown,
			wantReason: model.ReasonNoText,
		},
	}

	engine := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Classify(tt.text)
			if got.Status != tt.wantStatus || got.Reason != tt.wantReason {
				t.Errorf("Classify() = %s/%s, want %s/%s", got.Status, got.Reason, tt.wantStatus, tt.wantReason)
			}
			if got.Match != tt.wantMatch {
				t.Errorf("Classify() match = %q, want %q", got.Match, tt.wantMatch)
			}
		})
	}
}

func TestEngine_AmbiguousSentence(t *testing.T) {
	text := "Join our platform team. Sponsorship might be considered depending on team budget. Apply today!"
	got := NewEngine(nil).Classify(text)

	if got.Status != model.StatusAmbiguous {
		t.Fatalf("expected ambiguous, got %s/%s", got.Status, got.Reason)
	}
	want := "Sponsorship might be considered depending on team budget"
	if got.Sentence != want {
		t.Errorf("sentence = %q, want %q", got.Sentence, want)
	}
	if got.Snippet != text {
		t.Errorf("expected the head of the text as snippet, got %q", got.Snippet)
	}
}

func TestEngine_SnippetFromRawText(t *testing.T) {
	text := strings.Repeat("Filler words about the team. ", 20) +
		"We will   SPONSOR the right person." +
		strings.Repeat(" More filler about benefits.", 20)

	got := NewEngine(nil).Classify(text)
	if got.Status != model.StatusYes {
		t.Fatalf("expected yes, got %s/%s", got.Status, got.Reason)
	}
	if !strings.Contains(got.Snippet, "We will SPONSOR the right person.") {
		t.Errorf("snippet should quote raw text with collapsed spacing, got %q", got.Snippet)
	}
	if len(got.Snippet) > len("will SPONSOR")+2*DefaultSnippetRadius+4 {
		t.Errorf("snippet too long: %d bytes", len(got.Snippet))
	}
	if got.Tier != model.TierPositive {
		t.Errorf("expected positive tier, got %q", got.Tier)
	}
	if got.Context == "" {
		t.Error("expected the disambiguation window to be recorded")
	}
}

func TestEngine_NoMatchSnippetIsHead(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 100)
	got := NewEngine(nil).Classify(text)

	if got.Reason != model.ReasonNoMatch {
		t.Fatalf("expected no-match, got %s", got.Reason)
	}
	if len(got.Snippet) != noMatchHead {
		t.Errorf("expected a %d byte head, got %d", noMatchHead, len(got.Snippet))
	}
}

func TestEngine_ExtraPositivePhrases(t *testing.T) {
	engine := NewEngine([]string{" Relocation VISA ", "visa"})

	got := engine.Classify("Relocation visa support is part of the package.")
	if got.Status != model.StatusYes || got.Match != "relocation visa" {
		t.Errorf("expected yes via the extra phrase, got %s/%s %q", got.Status, got.Reason, got.Match)
	}

	got = engine.Classify("It is advisable to apply before the end of the month.")
	if got.Status != model.StatusUnknown {
		t.Errorf("extra phrase must respect word boundaries, got %s/%s", got.Status, got.Reason)
	}
}

func TestEngine_Options(t *testing.T) {
	engine := NewEngine(nil, WithMinSentenceLength(100), WithSnippetRadius(10), WithContextRadius(3))

	got := engine.Classify("Sponsorship might be considered depending on team budget.")
	if got.Status != model.StatusUnknown {
		t.Errorf("expected the sentence to be too short for a 100 char minimum, got %s", got.Status)
	}

	got = engine.Classify("No. This is a sentence and we will sponsor you")
	if got.Status != model.StatusYes {
		t.Errorf("expected yes with a narrow context radius, got %s/%s", got.Status, got.Reason)
	}
	if len(got.Snippet) > len("will sponsor")+2*10 {
		t.Errorf("snippet radius not applied: %q", got.Snippet)
	}
}

var classifyFragments = []string{
	"We will sponsor.",
	"No visa sponsorship.",
	"Must be a US citizen.",
	"Sponsorship might be considered depending on budget.",
	"Great benefits and équipe.",
	"Visa?",
	"h-1b transfers welcome",
	"not",
	"advisable",
	"\n\n",
	"  ",
}

func TestEngine_ClassifyIdempotent(t *testing.T) {
	engine := NewEngine([]string{"relocation package"})

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("classify is deterministic", prop.ForAll(
		func(picks []int) bool {
			var b strings.Builder
			for _, p := range picks {
				b.WriteString(classifyFragments[p])
				b.WriteString(" ")
			}
			return reflect.DeepEqual(engine.Classify(b.String()), engine.Classify(b.String()))
		},
		gen.SliceOf(gen.IntRange(0, len(classifyFragments)-1)),
	))

	properties.Property("requirement phrases always yield no", prop.ForAll(
		func(picks []int) bool {
			var b strings.Builder
			for _, p := range picks {
				b.WriteString(classifyFragments[p])
				b.WriteString(" ")
			}
			b.WriteString("Must be a US citizen.")
			v := engine.Classify(b.String())
			return v.Status == model.StatusNo && v.Reason == model.ReasonRequirement
		},
		gen.SliceOf(gen.IntRange(0, len(classifyFragments)-1)),
	))

	properties.TestingRun(t)
}
