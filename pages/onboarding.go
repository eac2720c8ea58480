package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Defaults used across the onboarding flows.
const (
	DefaultInstitution = "The Open University Of Israel"
	DefaultDegree      = "Economics"
)

// Onboarding wraps the post-signup onboarding wizard: institution, degree,
// terms, submit.
type Onboarding struct {
	page    playwright.Page
	baseURL string
}

func NewOnboarding(page playwright.Page, baseURL string) *Onboarding {
	return &Onboarding{page: page, baseURL: baseURL}
}

func (o *Onboarding) Goto() error {
	_, err := o.page.Goto(o.baseURL + "/onboarding")
	return err
}

func (o *Onboarding) SelectInstitution(name string) error {
	if err := click(o.page, "[data-testid='institution-select']"); err != nil {
		return fmt.Errorf("failed to open institution select: %w", err)
	}
	opt := fmt.Sprintf("[role='option']:has-text('%s')", name)
	if err := click(o.page, opt); err != nil {
		return fmt.Errorf("institution %q not selectable: %w", name, err)
	}
	return nil
}

func (o *Onboarding) SelectDegree(name string) error {
	if err := click(o.page, "[data-testid='degree-select']"); err != nil {
		return fmt.Errorf("failed to open degree select: %w", err)
	}
	opt := fmt.Sprintf("[role='option']:has-text('%s')", name)
	if err := click(o.page, opt); err != nil {
		return fmt.Errorf("degree %q not selectable: %w", name, err)
	}
	return nil
}

func (o *Onboarding) AcceptTerms() error {
	if err := o.page.Locator("input[type='checkbox'][name='terms']").Check(); err != nil {
		return enrich(o.page, "input[type='checkbox'][name='terms']", err)
	}
	return nil
}

func (o *Onboarding) Submit() error {
	return click(o.page, "button[type='submit']")
}

// Complete drives the whole wizard and blocks until the app acknowledges
// completion by navigating to /my-journey.
func (o *Onboarding) Complete(institution, degree string) error {
	if err := waitVisible(o.page, "[data-testid='institution-select']"); err != nil {
		return fmt.Errorf("onboarding wizard not ready: %w", err)
	}
	if err := o.SelectInstitution(institution); err != nil {
		return err
	}
	if err := o.SelectDegree(degree); err != nil {
		return err
	}
	if err := o.AcceptTerms(); err != nil {
		return fmt.Errorf("failed to accept terms: %w", err)
	}
	if err := o.Submit(); err != nil {
		return fmt.Errorf("failed to submit onboarding: %w", err)
	}
	return o.WaitForCompletion()
}

// WaitForCompletion waits on the URL postcondition of a finished onboarding.
func (o *Onboarding) WaitForCompletion() error {
	return o.page.WaitForURL("**/my-journey")
}
