package imaging

import (
	"errors"
	"image"
	stdcolor "image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/maax3v3/colr/internal/color"
)

type stripe struct {
	c stdcolor.NRGBA
	n int
}

// stripes builds a one-row image of n pixels of each stripe's color, in order.
func stripes(cols ...stripe) *image.NRGBA {
	w := 0
	for _, s := range cols {
		w += s.n
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, 1))
	x := 0
	for _, s := range cols {
		for i := 0; i < s.n; i++ {
			img.SetNRGBA(x, 0, s.c)
			x++
		}
	}
	return img
}

func TestPalette(t *testing.T) {
	img := stripes(
		stripe{stdcolor.NRGBA{255, 0, 0, 255}, 6},
		stripe{stdcolor.NRGBA{0, 0, 255, 255}, 3},
		stripe{stdcolor.NRGBA{0, 255, 0, 255}, 1},
	)
	got, err := Palette(img, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		hex    string
		weight float64
	}{{"#ff0000", 0.6}, {"#0000ff", 0.3}, {"#00ff00", 0.1}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if hex := color.ToHex(got[i].Color); hex != w.hex {
			t.Errorf("entry %d: got %s, want %s", i, hex, w.hex)
		}
		if math.Abs(got[i].Weight-w.weight) > 1e-9 {
			t.Errorf("entry %d: weight %v, want %v", i, got[i].Weight, w.weight)
		}
	}
}

func TestPalette_MergesSimilarColors(t *testing.T) {
	img := stripes(
		stripe{stdcolor.NRGBA{255, 0, 0, 255}, 2},
		stripe{stdcolor.NRGBA{200, 0, 0, 255}, 2},
		stripe{stdcolor.NRGBA{0, 0, 255, 255}, 1},
	)
	got, err := Palette(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if math.Abs(got[0].Color.R-227.5) > 1e-9 || math.Abs(got[0].Weight-0.8) > 1e-9 {
		t.Errorf("merged red: got %+v", got[0])
	}
	if color.ToHex(got[1].Color) != "#0000ff" {
		t.Errorf("second entry: got %+v", got[1])
	}
}

func TestPalette_SkipsTransparentAndSpansBands(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 40))
	for y := 0; y < 40; y++ {
		img.SetNRGBA(0, y, stdcolor.NRGBA{10, 20, 30, 255})
	}
	got, err := Palette(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || color.ToHex(got[0].Color) != "#0a141e" || got[0].Weight != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestPalette_Errors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if _, err := Palette(img, 3); !errors.Is(err, ErrNoVisiblePixels) {
		t.Errorf("got %v, want ErrNoVisiblePixels", err)
	}
	if _, err := Palette(img, 0); err == nil {
		t.Error("expected error for zero palette size")
	}
}

func TestPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.png")
	img := stripes(stripe{stdcolor.NRGBA{0x33, 0x66, 0x99, 255}, 4})
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}
	got, err := PaletteFile(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || color.ToHex(got[0].Color) != "#336699" {
		t.Errorf("got %+v", got)
	}
}

func TestParallelRows_CoversEveryRow(t *testing.T) {
	for _, h := range []int{0, 1, 7, 8, 9, 100} {
		seen := make([]int, h)
		calls := make(chan [2]int, 16)
		go func() {
			parallelRows(h, func(s, e int) { calls <- [2]int{s, e} })
			close(calls)
		}()
		for c := range calls {
			for y := c[0]; y < c[1]; y++ {
				seen[y]++
			}
		}
		for y, n := range seen {
			if n != 1 {
				t.Errorf("h=%d: row %d visited %d times", h, y, n)
			}
		}
	}
}
