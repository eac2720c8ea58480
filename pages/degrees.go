package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Degrees wraps the degree catalog page and its first-visit popup.
type Degrees struct {
	page    playwright.Page
	baseURL string
}

func NewDegrees(page playwright.Page, baseURL string) *Degrees {
	return &Degrees{page: page, baseURL: baseURL}
}

func (d *Degrees) Goto() error {
	_, err := d.page.Goto(d.baseURL + "/degrees")
	return err
}

// DismissPopup closes the degree-selection popup when it is present. Absent
// popup is not an error: seeded sessions suppress it via localStorage.
func (d *Degrees) DismissPopup() error {
	popup := d.page.Locator("[data-testid='degree-popup']")
	visible, _ := popup.IsVisible()
	if !visible {
		return nil
	}
	return click(d.page, "[data-testid='degree-popup'] button:has-text('Close')")
}

// ChooseDegree opens the named degree's detail view.
func (d *Degrees) ChooseDegree(name string) error {
	sel := fmt.Sprintf("[data-testid='degree-card']:has-text('%s')", name)
	if err := click(d.page, sel); err != nil {
		return fmt.Errorf("degree %q not selectable: %w", name, err)
	}
	return d.page.WaitForURL("**/degrees/**")
}

// DegreeNames lists the visible degree cards.
func (d *Degrees) DegreeNames() ([]string, error) {
	cards := d.page.Locator("[data-testid='degree-card'] h3")
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
