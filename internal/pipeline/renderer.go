package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer turns results into terminal text or JSON
type Renderer struct {
	colors  map[string]*color.Color
	verbose bool
}

// NewRenderer creates a renderer. noColor disables ANSI escapes for this
// renderer only.
func NewRenderer(noColor, verbose bool) *Renderer {
	r := &Renderer{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen, color.Bold),
			"red":    color.New(color.FgRed, color.Bold),
			"yellow": color.New(color.FgYellow, color.Bold),
			"cyan":   color.New(color.FgCyan),
			"dim":    color.New(color.FgHiBlack),
			"white":  color.New(color.FgWhite, color.Bold),
		},
		verbose: verbose,
	}
	if noColor {
		for _, c := range r.colors {
			c.DisableColor()
		}
	}
	return r
}

// Badge is the one-line label shown for a verdict
func (r *Renderer) Badge(v model.Verdict) string {
	switch v.Status {
	case model.StatusYes:
		return r.colors["green"].Sprint("✓ SPONSORS VISA")
	case model.StatusNo:
		return r.colors["red"].Sprint("✗ NO SPONSORSHIP")
	case model.StatusAmbiguous:
		return r.colors["yellow"].Sprint("~ AMBIGUOUS")
	case model.StatusLoading:
		return r.colors["cyan"].Sprint("… ANALYZING")
	default:
		return r.colors["dim"].Sprint("? UNKNOWN")
	}
}

// Render writes res in the given format
func (r *Renderer) Render(w io.Writer, res model.Result, format string) error {
	if format == FormatJSON {
		return r.JSON(w, res)
	}
	return r.Text(w, res)
}

// JSON writes res as indented JSON followed by a newline
func (r *Renderer) JSON(w io.Writer, res model.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Text writes a short human-readable block
func (r *Renderer) Text(w io.Writer, res model.Result) error {
	var b strings.Builder
	v := res.Verdict

	b.WriteString(r.Badge(v))
	if head := heading(res.Meta); head != "" {
		b.WriteString("  ")
		b.WriteString(r.colors["white"].Sprint(head))
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "  reason: %s", v.Reason)
	if v.Match != "" {
		fmt.Fprintf(&b, "  match: %q", v.Match)
	}
	if v.Score > 0 {
		fmt.Fprintf(&b, "  score: %.2f", v.Score)
	}
	b.WriteByte('\n')

	if v.Snippet != "" {
		fmt.Fprintf(&b, "  %s\n", r.colors["dim"].Sprint(v.Snippet))
	}
	if f := res.Meta.Freshness; f.Label != "" && f.DaysAgo >= 0 {
		posted := res.Meta.PostedText
		if posted == "" {
			posted = fmt.Sprintf("%dd ago", f.DaysAgo)
		}
		fmt.Fprintf(&b, "  posted: %s (%s)\n", posted, f.Label)
	}
	if len(res.Keywords) > 0 {
		fmt.Fprintf(&b, "  keywords: %s\n", r.colors["cyan"].Sprint(strings.Join(res.Keywords, ", ")))
	}

	if r.verbose {
		fmt.Fprintf(&b, "  identity: %s\n", res.Identity)
		if res.Meta.URL != "" {
			fmt.Fprintf(&b, "  url: %s\n", res.Meta.URL)
		}
		if v.Tier != "" {
			fmt.Fprintf(&b, "  tier: %s\n", v.Tier)
		}
		if v.Context != "" {
			fmt.Fprintf(&b, "  context: %q\n", v.Context)
		}
		if v.Sentence != "" {
			fmt.Fprintf(&b, "  sentence: %q\n", v.Sentence)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSONFile replaces path with res as JSON. The content is written to a
// sibling ".tmp" file first and renamed into place.
func (r *Renderer) WriteJSONFile(path string, res model.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp := TempPath(path)
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := r.JSON(f, res); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// TempPath is the staging file used by WriteJSONFile
func TempPath(path string) string {
	return path + ".tmp"
}

func heading(meta model.JobMeta) string {
	switch {
	case meta.Title != "" && meta.Company != "":
		return meta.Title + " @ " + meta.Company
	case meta.Title != "":
		return meta.Title
	default:
		return meta.Company
	}
}
