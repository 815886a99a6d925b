package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Visible text walker limits
const (
	MaxTextNodes = 1500
	MaxTextChars = 200000
)

// Subtrees that never carry posting text
var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Button:   true,
	atom.Input:    true,
	atom.Textarea: true,
	atom.Select:   true,
	atom.A:        true,
	atom.Head:     true,
	atom.Template: true,
}

// VisibleText concatenates the text nodes under n in document order,
// skipping non-content elements, and stops after MaxTextNodes nodes or
// MaxTextChars bytes
func VisibleText(n *html.Node) string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	count := 0

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		switch node.Type {
		case html.TextNode:
			v := strings.TrimSpace(node.Data)
			if v == "" {
				return true
			}
			b.WriteByte(' ')
			b.WriteString(v)
			count++
			return count < MaxTextNodes && b.Len() <= MaxTextChars
		case html.ElementNode:
			if skippedElements[node.DataAtom] {
				return true
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}

	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
