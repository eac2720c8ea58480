package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Settings wraps the /settings page, mainly its language selection. Hebrew
// flips the document into RTL, which tests assert through Direction.
type Settings struct {
	page    playwright.Page
	baseURL string
}

func NewSettings(page playwright.Page, baseURL string) *Settings {
	return &Settings{page: page, baseURL: baseURL}
}

func (s *Settings) Goto() error {
	_, err := s.page.Goto(s.baseURL + "/settings")
	return err
}

func (s *Settings) WaitLoaded() error {
	return waitVisible(s.page, "[data-testid='settings-form']")
}

// SwitchLanguage selects the language with the given code (en, he, es) and
// waits for the app to re-render.
func (s *Settings) SwitchLanguage(code string) error {
	sel := "[data-testid='language-select']"
	if _, err := s.page.Locator(sel).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{code},
	}); err != nil {
		return enrich(s.page, sel, err)
	}
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

// Direction reads the document's dir attribute ("rtl" for Hebrew).
func (s *Settings) Direction() (string, error) {
	dir, err := s.page.Locator("html").GetAttribute("dir")
	if err != nil {
		return "", fmt.Errorf("cannot read document direction: %w", err)
	}
	return dir, nil
}

// UpdateName edits the profile names and saves.
func (s *Settings) UpdateName(first, last string) error {
	if err := fill(s.page, "input[name='firstName']", first); err != nil {
		return err
	}
	if err := fill(s.page, "input[name='lastName']", last); err != nil {
		return err
	}
	if err := click(s.page, "[data-testid='save-settings']"); err != nil {
		return err
	}
	return waitVisible(s.page, "[data-testid='settings-saved']")
}
