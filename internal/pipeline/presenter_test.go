package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/store"
)

func sampleResult() model.Result {
	posted := testNow.AddDate(0, 0, -2)
	return model.Result{
		Identity: "jobid:42",
		Verdict: model.Verdict{
			Status:  model.StatusYes,
			Reason:  model.ReasonPositive,
			Match:   "visa sponsorship",
			Snippet: "We offer visa sponsorship.",
			Tier:    model.TierPositive,
		},
		Meta: model.JobMeta{
			URL:        "https://www.linkedin.com/jobs/view/42",
			Company:    "Acme",
			Title:      "Engineer",
			PostedText: "2 days ago",
			Posted:     &posted,
			Freshness:  model.Freshness{DaysAgo: 2, Label: "Hot"},
		},
		Keywords:  []string{"Go", "Kubernetes"},
		ScannedAt: testNow,
	}
}

func TestRenderer_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(true, false).Text(&buf, sampleResult()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"✓ SPONSORS VISA  Engineer @ Acme",
		`reason: positive  match: "visa sponsorship"`,
		"We offer visa sponsorship.",
		"posted: 2 days ago (Hot)",
		"keywords: Go, Kubernetes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "identity:") {
		t.Error("identity is verbose-only")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("no-color renderer emitted ANSI escapes")
	}
}

func TestRenderer_TextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(true, true).Text(&buf, sampleResult()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	for _, want := range []string{"identity: jobid:42", "tier: positive", "url: https://www.linkedin.com/jobs/view/42"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("verbose output missing %q", want)
		}
	}
}

func TestRenderer_Badges(t *testing.T) {
	r := NewRenderer(true, false)
	tests := map[model.Status]string{
		model.StatusYes:       "✓ SPONSORS VISA",
		model.StatusNo:        "✗ NO SPONSORSHIP",
		model.StatusAmbiguous: "~ AMBIGUOUS",
		model.StatusLoading:   "… ANALYZING",
		model.StatusUnknown:   "? UNKNOWN",
	}
	for status, want := range tests {
		if got := r.Badge(model.Verdict{Status: status}); got != want {
			t.Errorf("Badge(%s) = %q, want %q", status, got, want)
		}
	}
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(true, false).Render(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got model.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Identity != "jobid:42" || got.Verdict.Status != model.StatusYes || got.Meta.Freshness.Label != "Hot" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestTerminalPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := NewTerminalPresenter(&buf, NewRenderer(true, false), FormatText)

	p.Clear()
	if buf.Len() != 0 {
		t.Errorf("clear before any render wrote %q", buf.String())
	}

	p.Render(sampleResult())
	first := buf.Len()
	p.Render(sampleResult())
	if buf.Len() != first {
		t.Error("identical render was written twice")
	}

	p.Clear()
	if !strings.HasSuffix(buf.String(), "(cleared)\n") {
		t.Errorf("expected cleared marker, got %q", buf.String())
	}

	p.Render(sampleResult())
	if strings.Count(buf.String(), "SPONSORS VISA") != 2 {
		t.Error("render after clear should be written again")
	}
}

func TestFilePresenter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "verdict.json")
	p := NewFilePresenter(path, NewRenderer(true, false), nil)

	if !p.Mounted() {
		t.Error("presenter with nothing rendered should count as mounted")
	}

	p.Render(sampleResult())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("result file not written: %v", err)
	}
	var got model.Result
	if err := json.Unmarshal(data, &got); err != nil || got.Identity != "jobid:42" {
		t.Errorf("file content = %s (%v)", data, err)
	}
	if _, err := os.Stat(TempPath(path)); !os.IsNotExist(err) {
		t.Error("staging file left behind")
	}
	if !p.Mounted() {
		t.Error("expected mounted after render")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if p.Mounted() {
		t.Error("expected unmounted once the file is gone")
	}

	p.Render(sampleResult())
	p.Clear()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Clear should remove the file")
	}
	if !p.Mounted() {
		t.Error("cleared presenter should count as mounted")
	}

	paths := p.OutputPaths()
	if len(paths) != 2 || paths[0] != path || paths[1] != path+".tmp" {
		t.Errorf("OutputPaths() = %v", paths)
	}
}

// countingPresenter counts calls and can report itself unmounted
type countingPresenter struct {
	renders, clears int
	mounted         bool
}

func (c *countingPresenter) Render(model.Result) { c.renders++ }
func (c *countingPresenter) Clear()              { c.clears++ }
func (c *countingPresenter) Mounted() bool       { return c.mounted }

func TestPresenters(t *testing.T) {
	a := &countingPresenter{mounted: true}
	b := &countingPresenter{mounted: true}
	ps := Presenters{a, b}

	ps.Render(sampleResult())
	ps.Clear()
	if a.renders != 1 || b.renders != 1 || a.clears != 1 || b.clears != 1 {
		t.Errorf("fan-out counts a=%+v b=%+v", a, b)
	}
	if !ps.Mounted() {
		t.Error("expected mounted")
	}
	b.mounted = false
	if ps.Mounted() {
		t.Error("one unmounted presenter unmounts the set")
	}
}

func TestRecordingPresenter(t *testing.T) {
	h, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	defer func() { _ = h.Close() }()

	next := &countingPresenter{mounted: true}
	p := NewRecordingPresenter(next, h, nil)

	loading := sampleResult()
	loading.Verdict = loading.Verdict.Loading()
	p.Render(loading)
	p.Render(sampleResult())
	p.Render(sampleResult()) // republished from cache

	later := sampleResult()
	later.ScannedAt = testNow.Add(time.Minute)
	p.Render(later)

	if next.renders != 4 {
		t.Errorf("renders forwarded = %d, want 4", next.renders)
	}
	n, err := h.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("recorded = %d, want 2", n)
	}

	next.mounted = false
	if p.Mounted() {
		t.Error("Mounted should delegate to the wrapped presenter")
	}
	p.Clear()
	if next.clears != 1 {
		t.Error("Clear should be forwarded")
	}
}
