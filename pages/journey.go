package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Journey wraps the /my-journey dashboard.
type Journey struct {
	page    playwright.Page
	baseURL string
}

func NewJourney(page playwright.Page, baseURL string) *Journey {
	return &Journey{page: page, baseURL: baseURL}
}

func (j *Journey) Goto() error {
	_, err := j.page.Goto(j.baseURL + "/my-journey")
	return err
}

func (j *Journey) WaitLoaded() error {
	return waitVisible(j.page, "[data-testid='journey-content']")
}

// CourseNames lists the course cards currently shown.
func (j *Journey) CourseNames() ([]string, error) {
	cards := j.page.Locator("[data-testid='course-card'] h3")
	count, err := cards.Count()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, err := cards.Nth(i).TextContent()
		if err != nil {
			return nil, err
		}
		names = append(names, text)
	}
	return names, nil
}

// OpenCourse clicks the named course card.
func (j *Journey) OpenCourse(name string) error {
	sel := fmt.Sprintf("[data-testid='course-card']:has-text('%s')", name)
	if err := click(j.page, sel); err != nil {
		return fmt.Errorf("course %q not openable: %w", name, err)
	}
	return j.page.WaitForURL("**/course/**")
}
