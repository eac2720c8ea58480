package reporter

import (
	"fmt"
	"strings"
)

// Failure buckets, checked in order. Substring matching is a triage aid for
// humans reading the analysis document, not a pass/fail input.
var failurePatterns = []struct {
	Bucket  string
	Needles []string
}{
	{"timeout", []string{"timeout", "timed out", "deadline exceeded"}},
	{"element-not-found", []string{"locator", "element", "not found", "not visible", "strict mode violation"}},
	{"navigation", []string{"navigation", "goto", "err_too_many_redirects", "waitforurl"}},
	{"network", []string{"connection refused", "net::", "no such host", "eof", "network"}},
	{"auth", []string{"unauthorized", "401", "403", "forbidden", "login failed", "token"}},
}

// Classify maps a failure message to its bucket.
func Classify(message string) string {
	lower := strings.ToLower(message)
	for _, p := range failurePatterns {
		for _, needle := range p.Needles {
			if strings.Contains(lower, needle) {
				return p.Bucket
			}
		}
	}
	return "other"
}

func renderFailureAnalysis(failed []Result) string {
	groups := map[string][]Result{}
	order := []string{}
	for _, res := range failed {
		bucket := Classify(res.Error)
		if _, seen := groups[bucket]; !seen {
			order = append(order, bucket)
		}
		groups[bucket] = append(groups[bucket], res)
	}

	var b strings.Builder
	b.WriteString("# Failure Analysis\n\n")
	fmt.Fprintf(&b, "%d failing test(s) grouped by failure pattern. Grouping is a substring\nheuristic for triage only.\n\n", len(failed))
	for _, bucket := range order {
		fmt.Fprintf(&b, "## %s (%d)\n\n", bucket, len(groups[bucket]))
		for _, res := range groups[bucket] {
			fmt.Fprintf(&b, "- **%s** (%s)\n", res.Name, res.Duration.Round(timeRounding))
			if res.Error != "" {
				fmt.Fprintf(&b, "  - `%s`\n", firstLine(res.Error))
			}
			if res.Screenshot != "" {
				fmt.Fprintf(&b, "  - screenshot: `%s`\n", res.Screenshot)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
