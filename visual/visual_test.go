package visual

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int, fill func(x, y int) color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestCompareIdenticalImages(t *testing.T) {
	dir := t.TempDir()
	white := func(int, int) color.Color { return color.White }
	current := filepath.Join(dir, "current.png")
	baseline := filepath.Join(dir, "baseline.png")
	writeTestPNG(t, current, 20, 20, white)
	writeTestPNG(t, baseline, 20, 20, white)

	ratio, err := Compare(current, baseline)
	require.NoError(t, err)
	assert.Zero(t, ratio)
}

func TestCompareDetectsDifferences(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.png")
	baseline := filepath.Join(dir, "baseline.png")
	writeTestPNG(t, baseline, 20, 20, func(int, int) color.Color { return color.White })
	// Bottom half black: half the pixels differ.
	writeTestPNG(t, current, 20, 20, func(_, y int) color.Color {
		if y >= 10 {
			return color.Black
		}
		return color.White
	})

	ratio, err := Compare(current, baseline)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ratio, 0.01)
}

func TestCompareToleratesAntialiasingNoise(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.png")
	baseline := filepath.Join(dir, "baseline.png")
	writeTestPNG(t, baseline, 10, 10, func(int, int) color.Color {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	})
	writeTestPNG(t, current, 10, 10, func(int, int) color.Color {
		return color.RGBA{R: 202, G: 199, B: 201, A: 255}
	})

	ratio, err := Compare(current, baseline)
	require.NoError(t, err)
	assert.Zero(t, ratio, "near-identical channels stay within tolerance")
}

func TestCompareSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.png")
	baseline := filepath.Join(dir, "baseline.png")
	writeTestPNG(t, current, 20, 20, func(int, int) color.Color { return color.White })
	writeTestPNG(t, baseline, 10, 10, func(int, int) color.Color { return color.White })

	ratio, err := Compare(current, baseline)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ratio, "dimension changes are a full mismatch")
}

func TestCompareSeedsMissingBaseline(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.png")
	baseline := filepath.Join(dir, "baselines", "login.png")
	writeTestPNG(t, current, 5, 5, func(int, int) color.Color { return color.White })

	ratio, err := Compare(current, baseline)
	require.NoError(t, err)
	assert.Zero(t, ratio)
	_, err = os.Stat(baseline)
	assert.NoError(t, err, "first run writes the baseline")
}
