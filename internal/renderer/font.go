package renderer

import (
	"image"
	"image/color"
)

// FontRenderer is the interface for drawing text onto images.
// Implementations can be swapped (e.g., bitmap font, TTF font).
type FontRenderer interface {
	// DrawString draws the given text centered at (cx, cy) on the image
	// with the specified color and font size (approximate height in pixels).
	DrawString(img *image.RGBA, text string, cx, cy int, col color.Color, size int)

	// MeasureString returns the approximate width and height of the text
	// at the given font size.
	MeasureString(text string, size int) (width, height int)
}

// BitmapFont is a simple bitmap font renderer using hardcoded glyph data
// for the characters of hex color labels: digits, '#' and a-f.
type BitmapFont struct{}

// NewBitmapFont creates a new BitmapFont.
func NewBitmapFont() *BitmapFont {
	return &BitmapFont{}
}

// glyphs are 5x7 pixel bitmaps, one byte per row, low 5 bits used.
var glyphs = map[rune][7]uint8{
	'0': {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1': {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2': {0x0E, 0x11, 0x01, 0x06, 0x08, 0x10, 0x1F},
	'3': {0x0E, 0x11, 0x01, 0x06, 0x01, 0x11, 0x0E},
	'4': {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5': {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6': {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7': {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9': {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	'#': {0x0A, 0x0A, 0x1F, 0x0A, 0x1F, 0x0A, 0x0A},
	'a': {0x00, 0x00, 0x0E, 0x01, 0x0F, 0x11, 0x0F},
	'b': {0x10, 0x10, 0x16, 0x19, 0x11, 0x11, 0x1E},
	'c': {0x00, 0x00, 0x0E, 0x10, 0x10, 0x11, 0x0E},
	'd': {0x01, 0x01, 0x0D, 0x13, 0x11, 0x11, 0x0F},
	'e': {0x00, 0x00, 0x0E, 0x11, 0x1F, 0x10, 0x0E},
	'f': {0x06, 0x09, 0x08, 0x1C, 0x08, 0x08, 0x08},
}

const (
	glyphWidth  = 5
	glyphHeight = 7
)

// DrawString draws text centered at (cx, cy). Characters without a glyph
// leave a blank cell.
func (bf *BitmapFont) DrawString(img *image.RGBA, text string, cx, cy int, col color.Color, size int) {
	scale := glyphScale(size)
	totalW, totalH := bf.MeasureString(text, size)
	x := cx - totalW/2
	y := cy - totalH/2
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			drawGlyph(img, glyph, x, y, scale, col)
		}
		x += (glyphWidth + 1) * scale
	}
}

func drawGlyph(img *image.RGBA, glyph [glyphHeight]uint8, x0, y0, scale int, col color.Color) {
	b := img.Bounds()
	for row := 0; row < glyphHeight; row++ {
		for bit := 0; bit < glyphWidth; bit++ {
			if glyph[row]&(1<<(glyphWidth-1-bit)) == 0 {
				continue
			}
			// each set bit becomes a scale x scale block
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					px := x0 + bit*scale + dx
					py := y0 + row*scale + dy
					if px >= 0 && px < b.Dx() && py >= 0 && py < b.Dy() {
						img.Set(px+b.Min.X, py+b.Min.Y, col)
					}
				}
			}
		}
	}
}

func glyphScale(size int) int {
	if scale := size / glyphHeight; scale > 1 {
		return scale
	}
	return 1
}

// MeasureString returns the size of text at the given font size. Glyphs
// are one scaled pixel apart.
func (bf *BitmapFont) MeasureString(text string, size int) (width, height int) {
	scale := glyphScale(size)
	n := len([]rune(text))
	if n == 0 {
		return 0, 0
	}
	w := n*(glyphWidth*scale) + (n-1)*scale
	h := glyphHeight * scale
	return w, h
}
