package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// JobPosting is the subset of a schema.org JobPosting we read
type JobPosting struct {
	Title              string       `json:"title"`
	DatePosted         string       `json:"datePosted"`
	Description        string       `json:"description"`
	HiringOrganization Organization `json:"hiringOrganization"`
}

// Organization accepts both {"name": "..."} and a bare string
type Organization struct {
	Name string
}

func (o *Organization) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		o.Name = name
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unusual shapes are not worth failing the whole posting over
		return nil
	}
	o.Name = obj.Name
	return nil
}

// ldNode is one JSON-LD object, possibly wrapping others in @graph
type ldNode struct {
	Type  any               `json:"@type"`
	Graph []json.RawMessage `json:"@graph"`
	JobPosting
}

// JobPostings returns every JobPosting-like object in the document's JSON-LD
// blocks. Invalid blocks are skipped.
func JobPostings(doc *goquery.Document) []JobPosting {
	var out []JobPosting
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		out = append(out, decodeLD([]byte(s.Text()))...)
	})
	return out
}

func decodeLD(data []byte) []JobPosting {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil
	}

	var raws []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil
		}
	} else {
		raws = []json.RawMessage{data}
	}

	var out []JobPosting
	for _, raw := range raws {
		var node ldNode
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		for _, g := range node.Graph {
			out = append(out, decodeLD(g)...)
		}
		if isJobPosting(node.Type) || node.Title != "" || node.HiringOrganization.Name != "" {
			out = append(out, node.JobPosting)
		}
	}
	return out
}

func isJobPosting(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// descriptionText renders a JSON-LD description, which is usually escaped HTML
func descriptionText(desc string) string {
	desc = html.UnescapeString(desc)
	if !strings.Contains(desc, "<") {
		return strings.Join(strings.Fields(desc), " ")
	}
	node, err := html.Parse(strings.NewReader(desc))
	if err != nil {
		return ""
	}
	return VisibleText(node)
}
