// Package fixtures provides the scoped setup/teardown units tests compose:
// a browser, a backend user, an authenticated session, an onboarded user.
// Every fixture registers its own teardown via t.Cleanup so resources are
// released on every exit path.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumina-learn/lumina-e2e/config"
)

// Browser bundles the Playwright driver, one browser, one context and one
// page for a single test.
type Browser struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.Config
	t          *testing.T
}

// NewBrowser launches Chromium and opens a fresh context and page. Teardown
// captures a screenshot when the test failed, then closes everything.
func NewBrowser(t *testing.T) *Browser {
	t.Helper()
	b := &Browser{Config: config.Get(), t: t}
	require.NoError(t, b.setup(), "browser setup failed")
	t.Cleanup(b.teardown)
	return b
}

func (b *Browser) setup() error {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		// One explicit driver reinstall before giving up; a stale driver
		// version is the common cause here.
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("could not start playwright: %w", err)
		}
	}
	b.Playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Browser.Headless),
		SlowMo:   playwright.Float(float64(b.Config.Browser.SlowMo)),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = browser

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  b.Config.Browser.ViewportWidth,
			Height: b.Config.Browser.ViewportHeight,
		},
	}
	if b.Config.Browser.Videos {
		opts.RecordVideo = &playwright.RecordVideo{Dir: b.Config.Artifacts.Videos}
	}
	context, err := browser.NewContext(opts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page
	page.SetDefaultTimeout(float64(b.Config.Timeouts.Action.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(b.Config.Timeouts.Navigation.Milliseconds()))
	return nil
}

func (b *Browser) teardown() {
	if b.t.Failed() && b.Config.Browser.Screenshots && b.Page != nil {
		path := filepath.Join(b.Config.Artifacts.Screenshots,
			fmt.Sprintf("%s_%d.png", sanitizeName(b.t.Name()), time.Now().Unix()))
		if _, err := b.Page.Screenshot(playwright.PageScreenshotOptions{
			Path:     playwright.String(path),
			FullPage: playwright.Bool(true),
		}); err != nil {
			zap.S().Warnw("failure screenshot not captured", "test", b.t.Name(), "error", err)
		}
	}
	if b.Page != nil {
		_ = b.Page.Close()
	}
	if b.Context != nil {
		_ = b.Context.Close()
	}
	if b.Browser != nil {
		_ = b.Browser.Close()
	}
	if b.Playwright != nil {
		_ = b.Playwright.Stop()
	}
}

// NewPage opens an additional page in a brand-new context, useful for
// session-isolation checks.
func (b *Browser) NewPage() (playwright.BrowserContext, playwright.Page, error) {
	context, err := b.Browser.NewContext()
	if err != nil {
		return nil, nil, err
	}
	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		return nil, nil, err
	}
	return context, page, nil
}

// NavigateTo goes to a path relative to the configured base URL.
func (b *Browser) NavigateTo(path string) error {
	_, err := b.Page.Goto(b.Config.BaseURL + path)
	return err
}

// WaitForLoad blocks until the network goes idle.
func (b *Browser) WaitForLoad() error {
	return b.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

func sanitizeName(s string) string {
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
