package detect

import (
	"strings"
	"testing"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

func evaluatePhrase(t *testing.T, text, phrase string) model.ContextVerdict {
	t.Helper()
	idx := strings.Index(text, phrase)
	if idx < 0 {
		t.Fatalf("phrase %q not in %q", phrase, text)
	}
	return Evaluate(text, idx, len(phrase))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		phrase string
		want   model.ContextKind
	}{
		{"plain", "we will sponsor your visa", "will sponsor", model.ContextNone},
		{"negated before", "unfortunately we cannot offer visa sponsorship for this role", "visa sponsorship", model.ContextNegation},
		{"negated after", "visa sponsorship is not something we offer", "visa sponsorship", model.ContextNegation},
		{"requirement after", "h-1b holders with an active secret are preferred", "h-1b", model.ContextRequirement},
		{"negation in previous sentence", "no relocation. we will sponsor h-1b visas", "will sponsor", model.ContextNone},
		{"negation in next sentence", "we will sponsor. no exceptions", "will sponsor", model.ContextNone},
		{"negation beyond radius", "no, this is a long clause that pushes the word away well past the radius and we will sponsor", "will sponsor", model.ContextNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluatePhrase(t, tt.text, tt.phrase)
			if got.Kind != tt.want {
				t.Errorf("Evaluate() kind = %s, want %s (window %q)", got.Kind, tt.want, got.Window)
			}
			if !strings.Contains(got.Window, "[MATCH]") {
				t.Errorf("window %q is missing the match marker", got.Window)
			}
		})
	}
}

func TestEvaluate_RequirementBeforeNegation(t *testing.T) {
	got := evaluatePhrase(t, "not for you unless a permanent resident: work visa", "work visa")
	if got.Kind != model.ContextRequirement {
		t.Errorf("expected requirement to take precedence, got %s", got.Kind)
	}
}

func TestEvaluate_OutOfRange(t *testing.T) {
	got := Evaluate("short", 3, 10)
	if got.Kind != model.ContextNone {
		t.Errorf("expected none for an out-of-range match, got %s", got.Kind)
	}
}

func TestDisambiguator_Radius(t *testing.T) {
	text := "not really. ok so we will sponsor"
	idx := strings.Index(text, "will sponsor")

	// A radius this small never reaches back to "not"
	narrow := Disambiguator{Radius: 3}.Evaluate(text, idx, len("will sponsor"))
	if narrow.Kind != model.ContextNone {
		t.Errorf("narrow radius: expected none, got %s", narrow.Kind)
	}
}
