package reporter

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReporter() *Reporter {
	r := New()
	r.Record(Result{Name: "TestLogin", Package: "e2e", Status: StatusPassed, Duration: 2 * time.Second})
	r.Record(Result{Name: "TestOnboarding", Package: "e2e", Status: StatusFailed, Duration: 9 * time.Second,
		Error: "locator \"[data-testid='degree-select']\" not visible"})
	r.Record(Result{Name: "TestVisual", Package: "e2e", Status: StatusSkipped, Duration: 0})
	r.Record(Result{Name: "TestJourney", Package: "e2e", Status: StatusTimedOut, Duration: 30 * time.Second,
		Error: "panic: test timed out after 30s"})
	return r
}

func TestSummarize(t *testing.T) {
	s := sampleReporter().Summarize()

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.TimedOut)
	assert.Equal(t, 41*time.Second, s.TotalDuration)
	assert.Equal(t, 30*time.Second, s.MaxDuration)
	assert.Len(t, s.FailedTests, 2, "timed-out tests count as failures")
	assert.True(t, s.HasFailures())
	require.NotEmpty(t, s.Slowest)
	assert.Equal(t, "TestJourney", s.Slowest[0].Name, "slowest list sorts by duration descending")
}

func TestSummaryWithoutFailures(t *testing.T) {
	r := New()
	r.Record(Result{Name: "TestA", Status: StatusPassed, Duration: time.Second})
	s := r.Summarize()
	assert.False(t, s.HasFailures())
	assert.Equal(t, time.Second, s.AvgDuration)
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"timeout 30000ms exceeded":                        "timeout",
		"context deadline exceeded":                       "timeout",
		"locator resolved to 0 elements":                  "element-not-found",
		"waiting for element to be visible":               "element-not-found",
		"page.goto: net::ERR_TOO_MANY_REDIRECTS":          "navigation",
		"dial tcp: connection refused":                    "network",
		"401 Unauthorized":                                "auth",
		"something entirely different":                    "other",
		"": "other",
	}
	for msg, want := range cases {
		assert.Equal(t, want, Classify(msg), "message %q", msg)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	summary, err := sampleReporter().WriteArtifacts(dir)
	require.NoError(t, err)
	require.True(t, summary.HasFailures())

	// JSON report round-trips.
	raw, err := os.ReadFile(filepath.Join(dir, "ci-report.json"))
	require.NoError(t, err)
	var decoded Summary
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, summary.Total, decoded.Total)
	assert.Equal(t, summary.RunID, decoded.RunID)

	// Markdown contains the failure table.
	md, err := os.ReadFile(filepath.Join(dir, "test-summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Failures")
	assert.Contains(t, string(md), "TestOnboarding")
	assert.Contains(t, string(md), "## Slowest tests")

	// JUnit XML parses and carries the right counts.
	xmlRaw, err := os.ReadFile(filepath.Join(dir, "junit-results.xml"))
	require.NoError(t, err)
	var suites struct {
		Tests    int `xml:"tests,attr"`
		Failures int `xml:"failures,attr"`
		Suites   []struct {
			Cases []struct {
				Name    string `xml:"name,attr"`
				Failure *struct {
					Message string `xml:"message,attr"`
				} `xml:"failure"`
			} `xml:"testcase"`
		} `xml:"testsuite"`
	}
	require.NoError(t, xml.Unmarshal(xmlRaw, &suites))
	assert.Equal(t, 4, suites.Tests)
	assert.Equal(t, 2, suites.Failures)
	require.Len(t, suites.Suites, 1)
	assert.Len(t, suites.Suites[0].Cases, 4)

	// Failure analysis groups by bucket.
	analysis, err := os.ReadFile(filepath.Join(dir, "failure-analysis.md"))
	require.NoError(t, err)
	assert.Contains(t, string(analysis), "## element-not-found (1)")
	assert.Contains(t, string(analysis), "## timeout (1)")
}

func TestWriteArtifactsSkipsAnalysisWhenGreen(t *testing.T) {
	dir := t.TempDir()
	r := New()
	r.Record(Result{Name: "TestA", Status: StatusPassed, Duration: time.Second})
	_, err := r.WriteArtifacts(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "failure-analysis.md"))
	assert.True(t, os.IsNotExist(err), "analysis is only written when failures exist")
}

func TestLocateScreenshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "TestLogin_subcase_123.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	assert.Equal(t, path, LocateScreenshot(dir, "TestLogin/subcase"))
	assert.Empty(t, LocateScreenshot(dir, "TestUnknown"))
}
