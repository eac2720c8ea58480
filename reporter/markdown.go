package reporter

import (
	"fmt"
	"strings"
)

func renderMarkdown(s Summary) string {
	var b strings.Builder
	b.WriteString("# E2E Test Summary\n\n")
	fmt.Fprintf(&b, "Run `%s`, generated %s\n\n", s.RunID, s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("| Total | Passed | Failed | Skipped | Timed out |\n")
	b.WriteString("|------:|-------:|-------:|--------:|----------:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", s.Total, s.Passed, s.Failed, s.Skipped, s.TimedOut)

	b.WriteString("## Timing\n\n")
	fmt.Fprintf(&b, "- Wall time: %s\n", s.WallTime.Round(timeRounding))
	fmt.Fprintf(&b, "- Sum of test durations: %s\n", s.TotalDuration.Round(timeRounding))
	fmt.Fprintf(&b, "- Average test duration: %s\n", s.AvgDuration.Round(timeRounding))
	fmt.Fprintf(&b, "- Slowest test duration: %s\n\n", s.MaxDuration.Round(timeRounding))

	if len(s.FailedTests) > 0 {
		b.WriteString("## Failures\n\n")
		b.WriteString("| Test | Status | Duration | Error |\n")
		b.WriteString("|------|--------|---------:|-------|\n")
		for _, res := range s.FailedTests {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				res.Name, res.Status, res.Duration.Round(timeRounding), mdEscape(firstLine(res.Error)))
		}
		b.WriteString("\n")
	}

	if len(s.Slowest) > 0 {
		b.WriteString("## Slowest tests\n\n")
		b.WriteString("| Test | Status | Duration |\n")
		b.WriteString("|------|--------|---------:|\n")
		for _, res := range s.Slowest {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", res.Name, res.Status, res.Duration.Round(timeRounding))
		}
		b.WriteString("\n")
	}
	return b.String()
}

const timeRounding = 1e6 // 1ms in nanoseconds

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
