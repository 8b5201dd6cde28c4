package renderer

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"math"
	"sync"

	"github.com/maax3v3/colr/internal/color"
)

// Config holds swatch layout configuration.
type Config struct {
	Columns    int // circles per row
	CircleSize int // diameter of color circles
	Spacing    int // gap between cells
	Margin     int // border around the sheet
	LabelSize  int // font size of the hex label under each circle
	Background color.RGB
}

// DefaultConfig returns sensible default rendering configuration.
func DefaultConfig() Config {
	return Config{
		Columns:    8,
		CircleSize: 48,
		Spacing:    16,
		Margin:     20,
		LabelSize:  14,
		Background: color.RGB{R: 255, G: 255, B: 255, A: 1},
	}
}

var borderColor = stdcolor.RGBA{100, 100, 100, 255}

// layout positions the cells of a swatch sheet. Each cell holds a numbered
// circle with the color's hex label below it.
type layout struct {
	cfg           Config
	cols, rows    int
	cellW, cellH  int
	labelH        int
	width, height int
}

func newLayout(n int, font FontRenderer, cfg Config) layout {
	l := layout{cfg: cfg}
	if n == 0 {
		l.width, l.height = 2*cfg.Margin, 2*cfg.Margin
		return l
	}
	l.cols = cfg.Columns
	if l.cols < 1 {
		l.cols = 1
	}
	if n < l.cols {
		l.cols = n
	}
	l.rows = (n + l.cols - 1) / l.cols

	labelW, labelH := font.MeasureString("#000000", cfg.LabelSize)
	l.labelH = labelH
	l.cellW = max(cfg.CircleSize, labelW) + cfg.Spacing
	l.cellH = cfg.CircleSize + cfg.Spacing/2 + labelH + cfg.Spacing
	l.width = 2*cfg.Margin + l.cols*l.cellW - cfg.Spacing
	l.height = 2*cfg.Margin + l.rows*l.cellH - cfg.Spacing
	return l
}

// circle returns the center of the i-th circle.
func (l layout) circle(i int) (cx, cy int) {
	row, col := i/l.cols, i%l.cols
	cx = l.cfg.Margin + col*l.cellW + (l.cellW-l.cfg.Spacing)/2
	cy = l.cfg.Margin + row*l.cellH + l.cfg.CircleSize/2
	return cx, cy
}

// label returns the center of the i-th hex label.
func (l layout) label(i int) (cx, cy int) {
	cx, cy = l.circle(i)
	return cx, cy + l.cfg.CircleSize/2 + l.cfg.Spacing/2 + l.labelH/2
}

// Render draws one numbered circle per color, left to right and top to
// bottom, each with its "#rrggbb" label. Translucent colors are composited
// over the background.
func Render(colors []color.RGB, font FontRenderer, cfg Config) *image.RGBA {
	l := newLayout(len(colors), font, cfg)
	out := image.NewRGBA(image.Rect(0, 0, l.width, l.height))

	bg := opaque(cfg.Background)
	bgStd := bg.ToStdColor()
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			out.Set(x, y, bgStd)
		}
	}
	labelColor := stdcolor.Color(stdcolor.Black)
	if !bg.IsLight() {
		labelColor = stdcolor.White
	}

	numberSize := cfg.CircleSize * 2 / 3
	radius := cfg.CircleSize / 2

	// cells never overlap, so they can be drawn concurrently
	var wg sync.WaitGroup
	wg.Add(len(colors))
	for i := range colors {
		go func(i int) {
			defer wg.Done()
			fill := composite(colors[i], bg)
			cx, cy := l.circle(i)
			drawFilledCircle(out, cx, cy, radius, toRGBA(fill))
			drawCircleBorder(out, cx, cy, radius, borderColor)

			textColor := stdcolor.Color(stdcolor.Black)
			if !fill.IsLight() {
				textColor = stdcolor.White
			}
			font.DrawString(out, fmt.Sprintf("%d", i+1), cx, cy, textColor, numberSize)

			lx, ly := l.label(i)
			font.DrawString(out, color.ToHex(colors[i]), lx, ly, labelColor, cfg.LabelSize)
		}(i)
	}
	wg.Wait()

	return out
}

func opaque(c color.RGB) color.RGB {
	c.A = 1
	return c
}

// composite lays c over an opaque background according to c's alpha.
func composite(c, bg color.RGB) color.RGB {
	return color.Blend(color.FromRGB(bg), color.FromRGB(opaque(c)), c.A).RGB()
}

func toRGBA(c color.RGB) stdcolor.RGBA {
	n := c.ToStdColor()
	return stdcolor.RGBA{n.R, n.G, n.B, 255}
}

func drawFilledCircle(img *image.RGBA, cx, cy, radius int, col stdcolor.RGBA) {
	b := img.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			if p := image.Pt(cx+dx, cy+dy); p.In(b) {
				img.SetRGBA(p.X, p.Y, col)
			}
		}
	}
}

func drawCircleBorder(img *image.RGBA, cx, cy, radius int, col stdcolor.RGBA) {
	b := img.Bounds()
	for angle := 0.0; angle < 2*math.Pi; angle += 0.01 {
		p := image.Pt(
			cx+int(math.Round(float64(radius)*math.Cos(angle))),
			cy+int(math.Round(float64(radius)*math.Sin(angle))),
		)
		if p.In(b) {
			img.SetRGBA(p.X, p.Y, col)
		}
	}
}
