package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes compatibility forms and drops combining marks (é -> e, ﬁ -> fi)
var foldMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// sentenceBreak matches the characters that end a sentence fragment
var sentenceBreak = regexp.MustCompile(`[.?!↵\n]+`)

// Text is a normalized document together with a byte offset map back into
// its whitespace-collapsed source. All phrase matching runs on Normalized;
// offsets let matches be displayed from Source.
type Text struct {
	Source     string
	Normalized string

	// offsets[i] is the Source byte offset that produced Normalized byte i.
	// len(offsets) == len(Normalized)+1; the last entry is len(Source).
	offsets []int
}

// CollapseSpace trims s and collapses every whitespace run to a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize lower-cases, strips diacritics and collapses whitespace.
// It is deterministic and idempotent.
func Normalize(raw string) string {
	return NormalizeWithOffsets(raw).Normalized
}

// NormalizeWithOffsets normalizes raw and records where each normalized byte came from
func NormalizeWithOffsets(raw string) Text {
	src := CollapseSpace(raw)

	var b strings.Builder
	b.Grow(len(src))
	offsets := make([]int, 0, len(src)+1)

	for i, r := range src {
		for _, fr := range foldRune(r) {
			if unicode.IsSpace(fr) {
				// Compatibility decompositions can introduce spaces; keep the collapse invariant
				if b.Len() == 0 || strings.HasSuffix(b.String(), " ") {
					continue
				}
				fr = ' '
			}
			n := utf8.RuneLen(fr)
			if n < 0 {
				continue
			}
			b.WriteRune(fr)
			for j := 0; j < n; j++ {
				offsets = append(offsets, i)
			}
		}
	}

	out := b.String()
	if strings.HasSuffix(out, " ") {
		out = out[:len(out)-1]
		offsets = offsets[:len(out)]
	}
	offsets = append(offsets, len(src))

	return Text{Source: src, Normalized: out, offsets: offsets}
}

// foldRune returns the normalized form of a single rune
func foldRune(r rune) string {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		return string(r)
	}

	s := strings.ToLower(string(r))
	s, _, err := transform.String(foldMarks, s)
	if err != nil {
		return strings.ToLower(string(r))
	}
	return strings.ToLower(s)
}

// SourceSpan maps a [start, end) byte span of Normalized back to Source
func (t Text) SourceSpan(start, end int) (int, int) {
	if len(t.offsets) == 0 {
		return 0, 0
	}
	start = clamp(start, 0, len(t.offsets)-1)
	end = clamp(end, start, len(t.offsets)-1)

	srcStart := t.offsets[start]
	srcEnd := t.offsets[end]
	if end > start && srcEnd <= srcStart {
		// The span ends inside the expansion of one source rune
		_, size := utf8.DecodeRuneInString(t.Source[srcStart:])
		srcEnd = srcStart + size
	}
	return srcStart, srcEnd
}

// Around returns s[start-radius : end+radius], snapped to rune boundaries,
// with whitespace collapsed
func Around(s string, start, end, radius int) string {
	if s == "" {
		return ""
	}
	lo, hi := Window(s, start, end, radius, radius)
	return CollapseSpace(s[lo:hi])
}

// Window returns the byte bounds of a window of up to before bytes ahead of
// start and after bytes past end, snapped to rune boundaries
func Window(s string, start, end, before, after int) (int, int) {
	lo := clamp(start-before, 0, len(s))
	hi := clamp(end+after, 0, len(s))
	for lo > 0 && !utf8.RuneStart(s[lo]) {
		lo--
	}
	for hi < len(s) && !utf8.RuneStart(s[hi]) {
		hi++
	}
	return lo, hi
}

// Head returns at most the first n bytes of s without splitting a rune
func Head(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// LastFragment returns the part of s after its final sentence terminator
func LastFragment(s string) string {
	parts := sentenceBreak.Split(s, -1)
	return parts[len(parts)-1]
}

// FirstFragment returns the part of s before its first sentence terminator
func FirstFragment(s string) string {
	return sentenceBreak.Split(s, 2)[0]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
