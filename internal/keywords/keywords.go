package keywords

import (
	"regexp"
	"strings"
	"sync"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// MinTextLength is the shortest text worth scanning
const MinTextLength = 20

type term struct {
	display  string
	patterns []*regexp.Regexp
}

// Extractor tags text with the display names of dictionary terms it mentions
type Extractor struct {
	terms []term
}

// NewExtractor compiles the built-in dictionary followed by any extra
// entries, each given as display name then match variants
func NewExtractor(extra ...[]string) *Extractor {
	e := &Extractor{}
	for _, entry := range append(dictionary[:len(dictionary):len(dictionary)], extra...) {
		if len(entry) < 2 {
			continue
		}
		t := term{display: entry[0]}
		for _, variant := range entry[1:] {
			variant = strings.ToLower(strings.TrimSpace(variant))
			if variant == "" {
				continue
			}
			t.patterns = append(t.patterns, util.WordPattern(variant))
		}
		if len(t.patterns) > 0 {
			e.terms = append(e.terms, t)
		}
	}
	return e
}

// Extract returns display names in dictionary order, at most once each
func (e *Extractor) Extract(text string) []string {
	if len(text) < MinTextLength {
		return nil
	}
	lower := strings.ToLower(text)

	var found []string
	for _, t := range e.terms {
		for _, re := range t.patterns {
			if re.MatchString(lower) {
				found = append(found, t.display)
				break
			}
		}
	}
	return found
}

// Len returns the number of dictionary terms
func (e *Extractor) Len() int {
	return len(e.terms)
}

var defaultExtractor = sync.OnceValue(func() *Extractor { return NewExtractor() })

// Extract runs the built-in dictionary over text
func Extract(text string) []string {
	return defaultExtractor().Extract(text)
}
