package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/lumina-learn/lumina-e2e/model"
)

// Registration wraps the /register page.
type Registration struct {
	page    playwright.Page
	baseURL string
}

func NewRegistration(page playwright.Page, baseURL string) *Registration {
	return &Registration{page: page, baseURL: baseURL}
}

func (r *Registration) Goto() error {
	_, err := r.page.Goto(r.baseURL + "/register")
	return err
}

// Register fills the signup form for the given user and submits it.
func (r *Registration) Register(u *model.TestUser) error {
	if err := waitVisible(r.page, "input[name='email']"); err != nil {
		return fmt.Errorf("registration form not ready: %w", err)
	}
	steps := []struct{ selector, value string }{
		{"input[name='firstName']", u.FirstName},
		{"input[name='lastName']", u.LastName},
		{"input[name='email']", u.Email},
		{"input[name='password']", u.Password},
		{"input[name='confirmPassword']", u.Password},
	}
	for _, s := range steps {
		if err := fill(r.page, s.selector, s.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", s.selector, err)
		}
	}
	if err := click(r.page, "button[type='submit']"); err != nil {
		return fmt.Errorf("failed to submit registration: %w", err)
	}
	return nil
}

// WaitForOnboarding blocks until signup hands off to the onboarding flow.
func (r *Registration) WaitForOnboarding() error {
	return r.page.WaitForURL("**/onboarding**")
}
