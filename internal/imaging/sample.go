package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/maax3v3/colr/internal/color"
)

// ErrNoVisiblePixels is returned by Average when every pixel is fully transparent.
var ErrNoVisiblePixels = errors.New("image has no visible pixels")

// Average returns the mean color of all pixels that are not fully
// transparent. Each pixel's channels are weighted by its alpha, so a
// half-transparent pixel counts half. The result's alpha is the mean alpha
// of the contributing pixels.
func Average(img image.Image) (color.RGB, error) {
	b := img.Bounds()
	var (
		colors  []color.RGB
		weights []float64
		sumA    float64
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.FromStdColor(img.At(x, y))
			if c.A == 0 {
				continue
			}
			colors = append(colors, c)
			weights = append(weights, c.A)
			sumA += c.A
		}
	}
	if len(colors) == 0 {
		return color.RGB{}, ErrNoVisiblePixels
	}
	avg := color.WeightedMean(colors, weights)
	avg.A = sumA / float64(len(colors))
	return avg, nil
}

// SampleFile loads the image at path and returns its Average.
func SampleFile(path string) (color.RGB, error) {
	img, err := Load(path)
	if err != nil {
		return color.RGB{}, err
	}
	c, err := Average(img)
	if err != nil {
		return color.RGB{}, fmt.Errorf("sampling %s: %w", path, err)
	}
	return c, nil
}
