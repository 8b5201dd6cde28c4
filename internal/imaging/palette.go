package imaging

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/maax3v3/colr/internal/aggregation"
	"github.com/maax3v3/colr/internal/color"
)

// quantBits is the number of high bits per channel kept when bucketing
// pixels, giving at most 2^(3*quantBits) buckets.
const quantBits = 3

type bucket struct {
	r, g, b, w float64
}

// Palette returns up to n dominant colors of img, heaviest first. Pixels
// are bucketed by their high bits, weighted by alpha, then the bucket means
// are merged by CIELAB distance. Entry weights are fractions of the total
// visible weight. Palette colors are opaque.
func Palette(img image.Image, n int) ([]aggregation.Entry, error) {
	if n < 1 {
		return nil, fmt.Errorf("palette size must be >= 1, got %d", n)
	}
	b := img.Bounds()

	var (
		mu      sync.Mutex
		buckets = make(map[uint16]*bucket)
	)
	parallelRows(b.Dy(), func(startY, endY int) {
		local := make(map[uint16]*bucket)
		for y := b.Min.Y + startY; y < b.Min.Y+endY; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.FromStdColor(img.At(x, y))
				if c.A == 0 {
					continue
				}
				k := bucketKey(c)
				bk := local[k]
				if bk == nil {
					bk = &bucket{}
					local[k] = bk
				}
				bk.r += c.R * c.A
				bk.g += c.G * c.A
				bk.b += c.B * c.A
				bk.w += c.A
			}
		}
		mu.Lock()
		defer mu.Unlock()
		for k, lb := range local {
			if bk := buckets[k]; bk != nil {
				bk.r += lb.r
				bk.g += lb.g
				bk.b += lb.b
				bk.w += lb.w
			} else {
				buckets[k] = lb
			}
		}
	})
	if len(buckets) == 0 {
		return nil, ErrNoVisiblePixels
	}

	keys := make([]uint16, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	colors := make([]color.RGB, len(keys))
	weights := make([]float64, len(keys))
	var total float64
	for i, k := range keys {
		bk := buckets[k]
		colors[i] = color.RGB{R: bk.r / bk.w, G: bk.g / bk.w, B: bk.b / bk.w, A: 1}
		weights[i] = bk.w
		total += bk.w
	}

	entries := aggregation.Reduce(colors, weights, n)
	for i := range entries {
		entries[i].Weight /= total
	}
	return entries, nil
}

// PaletteFile loads the image at path and returns its Palette.
func PaletteFile(path string, n int) ([]aggregation.Entry, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	entries, err := Palette(img, n)
	if err != nil {
		return nil, fmt.Errorf("palette of %s: %w", path, err)
	}
	return entries, nil
}

func bucketKey(c color.RGB) uint16 {
	const shift = 8 - quantBits
	px := c.ToStdColor()
	return uint16(px.R>>shift)<<(2*quantBits) | uint16(px.G>>shift)<<quantBits | uint16(px.B>>shift)
}

// parallelRows runs fn across row bands using multiple goroutines.
func parallelRows(h int, fn func(startY, endY int)) {
	const numWorkers = 8
	rowsPerWorker := (h + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for startY := 0; startY < h; startY += rowsPerWorker {
		endY := min(startY+rowsPerWorker, h)
		wg.Add(1)
		go func(sy, ey int) {
			defer wg.Done()
			fn(sy, ey)
		}(startY, endY)
	}
	wg.Wait()
}
