package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Course wraps a single course page, including enrollment.
type Course struct {
	page playwright.Page
}

func NewCourse(page playwright.Page) *Course {
	return &Course{page: page}
}

func (c *Course) WaitLoaded() error {
	return waitVisible(c.page, "[data-testid='course-header']")
}

// Enroll clicks the enroll button and waits for it to flip to the enrolled
// state.
func (c *Course) Enroll() error {
	if err := click(c.page, "[data-testid='enroll-button']"); err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}
	return waitVisible(c.page, "[data-testid='enrolled-badge']")
}

func (c *Course) IsEnrolled() bool {
	visible, _ := c.page.Locator("[data-testid='enrolled-badge']").IsVisible()
	return visible
}

// StartLearning opens the first question of the course.
func (c *Course) StartLearning() error {
	if err := click(c.page, "[data-testid='start-learning']"); err != nil {
		return fmt.Errorf("failed to start learning: %w", err)
	}
	return c.page.WaitForURL("**/question/**")
}
