package rescan

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/util"
)

// Stable posting IDs, in priority order
var jobIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`jobs/view/(\d+)`),
	regexp.MustCompile(`[?&]currentJobId=(\d+)`),
	regexp.MustCompile(`(?i)[?&]jk=([0-9a-f]+)`),
	regexp.MustCompile(`greenhouse\.io/[^?#]*?/jobs/(\d+)`),
}

var jobPageMarkers = []string{
	"/jobs/",
	"/jobs?",
	"indeed.com/viewjob",
	"indeed.com/jobs",
	"greenhouse.io/",
}

// IsJobPage reports whether a URL looks like a single posting or a job
// search view. Documents without a URL (files, stdin) always qualify.
func IsJobPage(rawURL string) bool {
	if rawURL == "" {
		return true
	}
	lower := strings.ToLower(rawURL)
	for _, marker := range jobPageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Identity derives the document key. A posting ID in the URL wins; otherwise
// the title and company are hashed so re-renders of the same posting agree.
func Identity(meta model.JobMeta) string {
	for _, re := range jobIDPatterns {
		if m := re.FindStringSubmatch(meta.URL); m != nil {
			return "jobid:" + strings.ToLower(m[1])
		}
	}

	basis := util.Head(meta.Title, 120) + "|" + util.Head(meta.Company, 80)
	if basis == "|" {
		basis = util.Head(util.CollapseSpace(meta.FullText), 200)
	}
	sum := sha256.Sum256([]byte(basis))
	return "snap:" + hex.EncodeToString(sum[:])[:16]
}
