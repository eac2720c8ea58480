// Package reporter aggregates per-test results into the run artifacts the CI
// pipeline consumes: JSON, Markdown, JUnit XML and, when anything failed, a
// pattern-grouped failure analysis.
package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is a test outcome.
type Status string

const (
	StatusPassed   Status = "passed"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
	StatusTimedOut Status = "timedOut"
)

// Result is one test's outcome.
type Result struct {
	Name       string        `json:"name"`
	Package    string        `json:"package,omitempty"`
	Status     Status        `json:"status"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// Summary is the aggregate built once at the end of a run.
type Summary struct {
	RunID         string        `json:"runId"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	Total         int           `json:"total"`
	Passed        int           `json:"passed"`
	Failed        int           `json:"failed"`
	Skipped       int           `json:"skipped"`
	TimedOut      int           `json:"timedOut"`
	WallTime      time.Duration `json:"wallTime"`
	TotalDuration time.Duration `json:"totalDuration"`
	AvgDuration   time.Duration `json:"avgDuration"`
	MaxDuration   time.Duration `json:"maxDuration"`
	FailedTests   []Result      `json:"failedTests"`
	Slowest       []Result      `json:"slowestTests"`
}

// slowestCount caps the slowest-tests table.
const slowestCount = 10

// Reporter accumulates results during a run.
type Reporter struct {
	mu      sync.Mutex
	start   time.Time
	results []Result
}

// New returns a Reporter with the wall clock started.
func New() *Reporter {
	return &Reporter{start: time.Now()}
}

// Record stores one completed test.
func (r *Reporter) Record(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Results returns a copy of everything recorded so far.
func (r *Reporter) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

// Summarize computes the aggregate over all recorded results.
func (r *Reporter) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Total:       len(r.results),
		WallTime:    time.Since(r.start),
	}
	for _, res := range r.results {
		switch res.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
			s.FailedTests = append(s.FailedTests, res)
		case StatusSkipped:
			s.Skipped++
		case StatusTimedOut:
			s.TimedOut++
			s.FailedTests = append(s.FailedTests, res)
		}
		s.TotalDuration += res.Duration
		if res.Duration > s.MaxDuration {
			s.MaxDuration = res.Duration
		}
	}
	if s.Total > 0 {
		s.AvgDuration = s.TotalDuration / time.Duration(s.Total)
	}

	slowest := make([]Result, len(r.results))
	copy(slowest, r.results)
	sort.Slice(slowest, func(i, j int) bool { return slowest[i].Duration > slowest[j].Duration })
	if len(slowest) > slowestCount {
		slowest = slowest[:slowestCount]
	}
	s.Slowest = slowest
	return s
}

// HasFailures reports whether the run should exit non-zero.
func (s Summary) HasFailures() bool {
	return s.Failed > 0 || s.TimedOut > 0
}

// WriteArtifacts emits every artifact format under dir.
func (r *Reporter) WriteArtifacts(dir string) (Summary, error) {
	summary := r.Summarize()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return summary, err
	}

	jsonBody, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return summary, err
	}
	if err := os.WriteFile(filepath.Join(dir, "ci-report.json"), jsonBody, 0o644); err != nil {
		return summary, err
	}

	if err := os.WriteFile(filepath.Join(dir, "test-summary.md"),
		[]byte(renderMarkdown(summary)), 0o644); err != nil {
		return summary, err
	}

	junitBody, err := renderJUnit(summary, r.Results())
	if err != nil {
		return summary, err
	}
	if err := os.WriteFile(filepath.Join(dir, "junit-results.xml"), junitBody, 0o644); err != nil {
		return summary, err
	}

	if summary.HasFailures() {
		if err := os.WriteFile(filepath.Join(dir, "failure-analysis.md"),
			[]byte(renderFailureAnalysis(summary.FailedTests)), 0o644); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// LocateScreenshot finds a failure screenshot whose name starts with the
// test name under the screenshots directory, or returns empty.
func LocateScreenshot(dir, testName string) string {
	matches, err := filepath.Glob(filepath.Join(dir, sanitize(testName)+"*.png"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '/', ':', ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
