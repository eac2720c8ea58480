package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Sidebar wraps the app's navigation sidebar, present on every
// authenticated page.
type Sidebar struct {
	page playwright.Page
}

func NewSidebar(page playwright.Page) *Sidebar {
	return &Sidebar{page: page}
}

// NavigateTo clicks the nav item with the given label and waits for the
// target route.
func (s *Sidebar) NavigateTo(label, urlGlob string) error {
	sel := fmt.Sprintf("nav [data-testid='sidebar'] a:has-text('%s')", label)
	if err := click(s.page, sel); err != nil {
		return fmt.Errorf("sidebar item %q not clickable: %w", label, err)
	}
	return s.page.WaitForURL(urlGlob)
}

// ActiveItem returns the label of the highlighted nav entry.
func (s *Sidebar) ActiveItem() (string, error) {
	return s.page.Locator("nav [data-testid='sidebar'] a[aria-current='page']").TextContent()
}

// Toggle collapses or expands the sidebar.
func (s *Sidebar) Toggle() error {
	return click(s.page, "[data-testid='sidebar-toggle']")
}

// IsVisible reports whether the sidebar is currently rendered.
func (s *Sidebar) IsVisible() bool {
	visible, _ := s.page.Locator("nav [data-testid='sidebar']").IsVisible()
	return visible
}
