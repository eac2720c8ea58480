// Package visual provides screenshot normalization and baseline comparison
// for visual regression checks.
package visual

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const stabilizeCSS = `
*, *::before, *::after {
  animation: none !important;
  transition: none !important;
  caret-color: transparent !important;
}`

// Stabilize prepares a page for capture: animations and transitions off,
// fonts loaded, dynamic regions hidden.
func Stabilize(page playwright.Page, maskSelectors ...string) error {
	if _, err := page.AddStyleTag(playwright.PageAddStyleTagOptions{
		Content: playwright.String(stabilizeCSS),
	}); err != nil {
		return fmt.Errorf("failed to disable animations: %w", err)
	}
	if _, err := page.Evaluate("() => document.fonts.ready"); err != nil {
		return fmt.Errorf("fonts did not settle: %w", err)
	}
	for _, sel := range maskSelectors {
		if _, err := page.Evaluate(
			`sel => document.querySelectorAll(sel).forEach(el => el.style.visibility = 'hidden')`,
			sel,
		); err != nil {
			return fmt.Errorf("failed to mask %q: %w", sel, err)
		}
	}
	return nil
}

// Capture writes a full-page screenshot under dir and returns its path.
func Capture(page playwright.Page, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".png")
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("screenshot failed: %w", err)
	}
	return path, nil
}

// Compare diffs a capture against its stored baseline and returns the ratio
// of differing pixels (0 = identical, 1 = nothing matches). A missing
// baseline seeds itself from the capture and compares equal.
func Compare(currentPath, baselinePath string) (float64, error) {
	if _, err := os.Stat(baselinePath); os.IsNotExist(err) {
		zap.S().Infow("seeding visual baseline", "baseline", baselinePath)
		if err := copyFile(currentPath, baselinePath); err != nil {
			return 0, fmt.Errorf("failed to seed baseline: %w", err)
		}
		return 0, nil
	}

	current, err := loadPNG(currentPath)
	if err != nil {
		return 0, err
	}
	baseline, err := loadPNG(baselinePath)
	if err != nil {
		return 0, err
	}

	cb, bb := current.Bounds(), baseline.Bounds()
	if cb.Dx() != bb.Dx() || cb.Dy() != bb.Dy() {
		return 1, nil
	}

	var diff, total int
	for y := 0; y < cb.Dy(); y++ {
		for x := 0; x < cb.Dx(); x++ {
			total++
			cr, cg, cbl, ca := current.At(cb.Min.X+x, cb.Min.Y+y).RGBA()
			br, bg, bbl, ba := baseline.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if !near(cr, br) || !near(cg, bg) || !near(cbl, bbl) || !near(ca, ba) {
				diff++
			}
		}
	}
	if total == 0 {
		return 1, nil
	}
	return float64(diff) / float64(total), nil
}

// near tolerates small per-channel deltas so antialiasing noise does not
// count as a regression.
func near(a, b uint32) bool {
	const tolerance = 0x0800 // ~3% per 16-bit channel
	if a > b {
		return a-b <= tolerance
	}
	return b-a <= tolerance
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s: %w", path, err)
	}
	return img, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
