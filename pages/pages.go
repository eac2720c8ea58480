// Package pages holds the page object models: one struct per app page,
// wrapping locators and interaction sequences. Interaction failures surface
// the underlying playwright timeout, enriched with debug context when
// DEBUG_TESTS is on.
package pages

import (
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// enrich wraps a locator error with the page URL, match count and visibility
// of the selector, but only when debug output is requested. The original
// error stays unwrappable.
func enrich(page playwright.Page, selector string, err error) error {
	if err == nil {
		return nil
	}
	if os.Getenv("DEBUG_TESTS") == "" {
		return err
	}
	loc := page.Locator(selector)
	count, _ := loc.Count()
	visible := false
	if count > 0 {
		visible, _ = loc.First().IsVisible()
	}
	return fmt.Errorf("selector %q on %s (matches=%d visible=%v): %w",
		selector, page.URL(), count, visible, err)
}

func click(page playwright.Page, selector string) error {
	if err := page.Locator(selector).Click(); err != nil {
		return enrich(page, selector, err)
	}
	return nil
}

func fill(page playwright.Page, selector, value string) error {
	if err := page.Locator(selector).Fill(value); err != nil {
		return enrich(page, selector, err)
	}
	return nil
}

func waitVisible(page playwright.Page, selector string) error {
	err := page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return enrich(page, selector, err)
	}
	return nil
}
