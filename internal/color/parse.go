package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput is returned when the input is neither a string nor a
	// 3- or 4-channel tuple.
	ErrInvalidInput = errors.New("invalid color input")

	// ErrInvalidColorSyntax is returned when a string matches no known form.
	ErrInvalidColorSyntax = errors.New("invalid color syntax")

	// ErrChannelOutOfRange is returned by strict parsers for channels outside
	// their nominal range.
	ErrChannelOutOfRange = errors.New("color channel out of range")
)

// ParseError reports the input that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing color %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Input is anything the parser accepts: a CSS string, a channel Tuple, or an
// already parsed Color.
type Input interface {
	colorInput()
}

// CSS is a CSS color literal such as "#abc", "rgb(1, 2, 3)" or "hsl(0,100%,50%)".
type CSS string

// Tuple is a 3- or 4-channel RGB(A) value. Use ParseTuple for HSL channels.
type Tuple []float64

func (CSS) colorInput()   {}
func (Tuple) colorInput() {}
func (Color) colorInput() {}

// ParserOptions configures a Parser.
type ParserOptions struct {
	// Strict rejects channels outside their nominal range with
	// ErrChannelOutOfRange instead of keeping the raw values.
	Strict bool
}

// Parser turns Inputs into Colors. The zero Parser is lenient.
type Parser struct {
	strict bool
}

// NewParser creates a Parser.
func NewParser(opts ParserOptions) *Parser {
	return &Parser{strict: opts.Strict}
}

var defaultParser = &Parser{}

// Parse parses in with a lenient parser.
func Parse(in Input) (Color, error) {
	return defaultParser.Parse(in)
}

// ParseString parses a CSS color string with a lenient parser.
func ParseString(s string) (Color, error) {
	return defaultParser.Parse(CSS(s))
}

// MustParse parses a CSS color string and panics if parsing fails.
// Use this only for known-good color values in initialization code.
func MustParse(s string) Color {
	c, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseTuple builds a color in the given space from 3 or 4 channels.
func ParseTuple(space Space, t []float64) (Color, error) {
	return defaultParser.ParseTuple(space, t)
}

// Parse resolves in to a Color.
func (p *Parser) Parse(in Input) (Color, error) {
	switch v := in.(type) {
	case CSS:
		return p.parseCSS(string(v))
	case Tuple:
		return p.ParseTuple(SpaceRGB, v)
	case Color:
		return v, nil
	default:
		return Color{}, fmt.Errorf("%w: %T", ErrInvalidInput, in)
	}
}

// ParseTuple builds a color in the given space from 3 or 4 channels. Alpha
// defaults to 1 when only 3 channels are given.
func (p *Parser) ParseTuple(space Space, t []float64) (Color, error) {
	if len(t) != 3 && len(t) != 4 {
		return Color{}, fmt.Errorf("%w: tuple has %d channels, want 3 or 4", ErrInvalidInput, len(t))
	}
	ch := [4]float64{t[0], t[1], t[2], 1}
	if len(t) == 4 {
		ch[3] = t[3]
	}
	c := Color{space: space, ch: ch}
	if p.strict {
		if err := checkRange(c); err != nil {
			return Color{}, &ParseError{Input: fmt.Sprint(t), Err: err}
		}
	}
	return c, nil
}

// Patterns are tried in order; the first match wins.
var (
	rgbaPattern = regexp.MustCompile(`(?i)^rgba\s*\(([^,()]+),([^,()]+),([^,()]+),([^,()]+)\)$`)
	rgbPattern  = regexp.MustCompile(`(?i)^rgb\s*\(([^,()]+),([^,()]+),([^,()]+)\)$`)
	hslaPattern = regexp.MustCompile(`(?i)^hsla\s*\(([^,()]+),([^,()]+),([^,()]+),([^,()]+)\)$`)
	hslPattern  = regexp.MustCompile(`(?i)^hsl\s*\(([^,()]+),([^,()]+),([^,()]+)\)$`)
	hex6Pattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	hex3Pattern = regexp.MustCompile(`^[0-9a-fA-F]{3}$`)
)

func (p *Parser) parseCSS(input string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), "#")

	c, err := matchCSS(s)
	if err != nil {
		return Color{}, &ParseError{Input: input, Err: err}
	}
	if p.strict {
		if err := checkRange(c); err != nil {
			return Color{}, &ParseError{Input: input, Err: err}
		}
	}
	return c, nil
}

func matchCSS(s string) (Color, error) {
	if m := rgbaPattern.FindStringSubmatch(s); m != nil {
		return channels(SpaceRGB, m[1:4], m[4])
	}
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		return channels(SpaceRGB, m[1:4], "")
	}
	if m := hslaPattern.FindStringSubmatch(s); m != nil {
		return channels(SpaceHSL, m[1:4], m[4])
	}
	if m := hslPattern.FindStringSubmatch(s); m != nil {
		return channels(SpaceHSL, m[1:4], "")
	}
	if hex6Pattern.MatchString(s) || hex3Pattern.MatchString(s) {
		rgb, err := ParseHex(s)
		if err != nil {
			return Color{}, err
		}
		return FromRGB(rgb), nil
	}
	if rgb, ok := Named(s); ok {
		return FromRGB(rgb), nil
	}
	return Color{}, ErrInvalidColorSyntax
}

// channels converts the captured groups of a functional notation. Channels
// are read as integers the way parseInt reads them, so "50.7%" becomes 50.
func channels(space Space, groups []string, alpha string) (Color, error) {
	c := Color{space: space, ch: [4]float64{0, 0, 0, 1}}
	for i, g := range groups {
		v, err := leadingInt(g)
		if err != nil {
			return Color{}, err
		}
		c.ch[i] = float64(v)
	}
	if alpha != "" {
		a, err := strconv.ParseFloat(strings.TrimSpace(alpha), 64)
		if err != nil || math.IsNaN(a) || math.IsInf(a, 0) {
			return Color{}, fmt.Errorf("%w: alpha %q", ErrInvalidColorSyntax, strings.TrimSpace(alpha))
		}
		c.ch[3] = a
	}
	return c, nil
}

// leadingInt parses the optionally signed decimal prefix of s, ignoring
// surrounding whitespace and any trailing unit such as "%".
func leadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("%w: channel %q is not a number", ErrInvalidColorSyntax, s)
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: channel %q is out of integer range", ErrInvalidColorSyntax, s[:end])
	}
	return v, nil
}

// ParseHex parses a hex color string like "#000", "#000000", "#FF00FF".
// 3-digit shorthand expands each nibble x to xx. The result is opaque.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: hex color %q must be 3 or 6 hex digits", ErrInvalidColorSyntax, s)
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: hex color %q", ErrInvalidColorSyntax, s)
		}
		ch[i] = float64(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2], A: 1}, nil
}

func checkRange(c Color) error {
	names := [3]string{"red", "green", "blue"}
	limits := [3]float64{255, 255, 255}
	first := 0
	if c.space == SpaceHSL {
		names = [3]string{"hue", "saturation", "lightness"}
		limits = [3]float64{360, 100, 100}
		// hue wraps, so any angle is acceptable
		first = 1
	}
	for i := first; i < 3; i++ {
		if v := c.ch[i]; v < 0 || v > limits[i] {
			return fmt.Errorf("%w: %s %v not in [0,%v]", ErrChannelOutOfRange, names[i], v, limits[i])
		}
	}
	if a := c.ch[3]; a < 0 || a > 1 {
		return fmt.Errorf("%w: alpha %v not in [0,1]", ErrChannelOutOfRange, a)
	}
	return nil
}
