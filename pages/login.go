package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Login wraps the /login page.
type Login struct {
	page    playwright.Page
	baseURL string
}

func NewLogin(page playwright.Page, baseURL string) *Login {
	return &Login{page: page, baseURL: baseURL}
}

func (l *Login) Goto() error {
	_, err := l.page.Goto(l.baseURL + "/login")
	return err
}

// Login fills the credentials and submits. It does not assert the outcome;
// use WaitForJourney or ErrorText depending on what the test expects.
func (l *Login) Login(email, password string) error {
	if err := waitVisible(l.page, "input[name='email']"); err != nil {
		return fmt.Errorf("login form not ready: %w", err)
	}
	if err := fill(l.page, "input[name='email']", email); err != nil {
		return fmt.Errorf("failed to fill email: %w", err)
	}
	if err := fill(l.page, "input[name='password']", password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	if err := click(l.page, "button[type='submit']"); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}
	return nil
}

// WaitForJourney blocks until the post-login redirect lands on /my-journey.
func (l *Login) WaitForJourney() error {
	return l.page.WaitForURL("**/my-journey")
}

// ErrorText returns the visible login error, or empty when none is shown.
func (l *Login) ErrorText() string {
	loc := l.page.Locator("[data-testid='login-error'], [role='alert']")
	if count, _ := loc.Count(); count == 0 {
		return ""
	}
	text, _ := loc.First().TextContent()
	return text
}
