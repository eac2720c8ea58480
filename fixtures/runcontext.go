package fixtures

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// RunContext carries cross-phase run state explicitly instead of the ambient
// process globals the suite used to lean on. One instance per run, created in
// TestMain and torn down with it.
type RunContext struct {
	RunID     string
	StartTime time.Time

	mu          sync.Mutex
	consoleLogs []string
	networkLogs []string
}

// NewRunContext creates the run context and exports the env flags the CI
// wrapper scripts read.
func NewRunContext() *RunContext {
	rc := &RunContext{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	_ = os.Setenv("E2E_SETUP_COMPLETE", "true")
	_ = os.Setenv("E2E_START_TIME", strconv.FormatInt(rc.StartTime.UnixMilli(), 10))
	return rc
}

// Close clears the exported env flags so nothing leaks into a following run
// in the same process tree.
func (rc *RunContext) Close() {
	_ = os.Unsetenv("E2E_SETUP_COMPLETE")
	_ = os.Unsetenv("E2E_START_TIME")
}

// CapturePage subscribes to a page's console messages and failed requests.
func (rc *RunContext) CapturePage(page playwright.Page) {
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		rc.mu.Lock()
		rc.consoleLogs = append(rc.consoleLogs, msg.Type()+": "+msg.Text())
		rc.mu.Unlock()
	})
	page.OnRequestFailed(func(req playwright.Request) {
		rc.mu.Lock()
		rc.networkLogs = append(rc.networkLogs, req.Method()+" "+req.URL())
		rc.mu.Unlock()
	})
}

// ConsoleLogs returns a copy of the captured console output.
func (rc *RunContext) ConsoleLogs() []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]string, len(rc.consoleLogs))
	copy(out, rc.consoleLogs)
	return out
}

// FailedRequests returns a copy of the captured failed network requests.
func (rc *RunContext) FailedRequests() []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]string, len(rc.networkLogs))
	copy(out, rc.networkLogs)
	return out
}
