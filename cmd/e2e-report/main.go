// e2e-report turns a `go test -json` event stream into the CI artifacts:
// ci-report.json, test-summary.md, junit-results.xml and, when failures
// exist, failure-analysis.md. It exits non-zero whenever any test failed,
// independent of the stream's own outcome.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lumina-learn/lumina-e2e/logging"
	"github.com/lumina-learn/lumina-e2e/reporter"
)

type testEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

func main() {
	var (
		inputPath      string
		outputDir      string
		screenshotsDir string
	)

	root := &cobra.Command{
		Use:   "e2e-report",
		Short: "Aggregate go test -json output into CI report artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(os.Getenv("DEBUG_TESTS") != "")

			in := os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("cannot open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			rep := reporter.New()
			if err := ingest(in, rep, screenshotsDir); err != nil {
				return err
			}

			summary, err := rep.WriteArtifacts(outputDir)
			if err != nil {
				return fmt.Errorf("failed to write artifacts: %w", err)
			}
			printSummary(summary)

			if summary.HasFailures() {
				// The exit verdict is decoupled from the runner's own exit
				// behavior: a failed test always fails the pipeline.
				os.Exit(1)
			}
			return nil
		},
	}
	root.Flags().StringVar(&inputPath, "input", "", "go test -json output file (default: stdin)")
	root.Flags().StringVar(&outputDir, "output", "test-results", "artifact output directory")
	root.Flags().StringVar(&screenshotsDir, "screenshots", "test-results/screenshots", "failure screenshot directory")

	if err := root.Execute(); err != nil {
		zap.S().Errorf("e2e-report failed: %v", err)
		os.Exit(2)
	}
}

// ingest replays the event stream, buffering per-test output so failure
// messages can be attached to the recorded result.
func ingest(in io.Reader, rep *reporter.Reporter, screenshotsDir string) error {
	type key struct{ pkg, test string }
	outputs := map[key]*strings.Builder{}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev testEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			// Non-JSON lines happen when build output is interleaved.
			continue
		}
		if ev.Test == "" {
			continue
		}
		k := key{ev.Package, ev.Test}
		switch ev.Action {
		case "output":
			b, ok := outputs[k]
			if !ok {
				b = &strings.Builder{}
				outputs[k] = b
			}
			b.WriteString(ev.Output)
		case "pass", "fail", "skip":
			out := ""
			if b, ok := outputs[k]; ok {
				out = b.String()
				delete(outputs, k)
			}
			rep.Record(buildResult(ev, out, screenshotsDir))
		}
	}
	return scanner.Err()
}

func buildResult(ev testEvent, output, screenshotsDir string) reporter.Result {
	res := reporter.Result{
		Name:     ev.Test,
		Package:  ev.Package,
		Duration: time.Duration(ev.Elapsed * float64(time.Second)),
	}
	switch ev.Action {
	case "pass":
		res.Status = reporter.StatusPassed
	case "skip":
		res.Status = reporter.StatusSkipped
	case "fail":
		res.Status = reporter.StatusFailed
		if strings.Contains(output, "panic: test timed out") {
			res.Status = reporter.StatusTimedOut
		}
		res.Error = failureExcerpt(output)
		res.Screenshot = reporter.LocateScreenshot(screenshotsDir, ev.Test)
	}
	return res
}

// failureExcerpt keeps the interesting tail of a failed test's output.
func failureExcerpt(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	var kept []string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(t, "=== RUN") || strings.HasPrefix(t, "--- FAIL") {
			continue
		}
		kept = append(kept, t)
	}
	const maxLines = 20
	if len(kept) > maxLines {
		kept = kept[len(kept)-maxLines:]
	}
	return strings.Join(kept, "\n")
}

func printSummary(s reporter.Summary) {
	bold := color.New(color.Bold)
	bold.Println("E2E run summary")
	fmt.Printf("  total:    %d\n", s.Total)
	color.Green("  passed:   %d", s.Passed)
	if s.Failed > 0 {
		color.Red("  failed:   %d", s.Failed)
	} else {
		fmt.Printf("  failed:   %d\n", s.Failed)
	}
	if s.TimedOut > 0 {
		color.Red("  timedOut: %d", s.TimedOut)
	}
	if s.Skipped > 0 {
		color.Yellow("  skipped:  %d", s.Skipped)
	}
	fmt.Printf("  wall time: %s\n", s.WallTime.Round(time.Millisecond))
	for _, f := range s.FailedTests {
		color.Red("  ✗ %s [%s]", f.Name, reporter.Classify(f.Error))
	}
}
