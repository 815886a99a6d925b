package sponsors

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// legalSuffix matches a trailing legal-entity designator. A separator is
// required so names like "nasa" keep their last letters.
var legalSuffix = regexp.MustCompile(`[\s,]+(inc\.?|llc|ltd\.?|corp\.?|corporation|co\.?|company|group|plc|sa|ag|se|nv)$`)

// Sponsor is one registry entry as read from a sponsors file
type Sponsor struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// LookupResult reports whether an organization is a known sponsor
type LookupResult struct {
	IsKnown     bool   `json:"is_known"`
	MatchedName string `json:"matched_name,omitempty"`
}

type entry struct {
	name     string
	aliases  []string
	patterns []*regexp.Regexp
}

// Registry is the curated allowlist of organizations known to sponsor visas.
// It is immutable after construction.
type Registry struct {
	entries []entry
}

// NewRegistry builds the registry from the built-in list plus extra entries
func NewRegistry(extra ...Sponsor) *Registry {
	r := &Registry{}
	for _, row := range builtin {
		r.add(Sponsor{Name: row[0], Aliases: row[1:]})
	}
	for _, s := range extra {
		r.add(s)
	}
	return r
}

func (r *Registry) add(s Sponsor) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return
	}
	aliases := s.Aliases
	if len(aliases) == 0 {
		aliases = []string{name}
	}

	e := entry{name: name}
	for _, alias := range aliases {
		alias = util.Normalize(alias)
		if alias == "" {
			continue
		}
		e.aliases = append(e.aliases, alias)
		e.patterns = append(e.patterns, util.WordPattern(alias))
	}
	if len(e.aliases) > 0 {
		r.entries = append(r.entries, e)
	}
}

// LoadFile reads extra registry entries from a YAML file of the form
//
//	sponsors:
//	  - name: Example Corp
//	    aliases: [example, example labs]
func LoadFile(path string) ([]Sponsor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sponsors file: %w", err)
	}

	var doc struct {
		Sponsors []Sponsor `yaml:"sponsors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sponsors file: %w", err)
	}
	return doc.Sponsors, nil
}

// normalizeName lower-cases an organization name and strips legal suffixes
func normalizeName(raw string) string {
	name := util.Normalize(raw)
	for {
		stripped := strings.TrimSpace(legalSuffix.ReplaceAllString(name, ""))
		if stripped == name || stripped == "" {
			return name
		}
		name = stripped
	}
}

// Lookup checks an organization name against the registry. An alias matches
// on equality, or as a whole word when the name is strictly longer than it.
func (r *Registry) Lookup(rawName string) LookupResult {
	full := util.Normalize(rawName)
	name := normalizeName(rawName)
	if name == "" {
		return LookupResult{}
	}

	for _, e := range r.entries {
		for i, alias := range e.aliases {
			if name == alias || full == alias {
				return LookupResult{IsKnown: true, MatchedName: e.name}
			}
			if len(name) > len(alias) && e.patterns[i].MatchString(name) {
				return LookupResult{IsKnown: true, MatchedName: e.name}
			}
		}
	}
	return LookupResult{}
}

// Override upgrades an inconclusive verdict to yes when the organization is
// a known sponsor. Conclusive verdicts are returned unchanged.
func (r *Registry) Override(v model.Verdict, organization string) model.Verdict {
	if !v.Overridable() {
		return v
	}
	res := r.Lookup(organization)
	if !res.IsKnown {
		return v
	}
	return v.Merge(model.Verdict{
		Status: model.StatusYes,
		Reason: model.ReasonKnownSponsor,
		Match:  res.MatchedName,
	})
}

// Names lists display names in registry order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	return names
}

// Len returns the number of registry entries
func (r *Registry) Len() int {
	return len(r.entries)
}
