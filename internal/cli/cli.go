package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/maax3v3/colr/internal/imaging"
)

// Command names.
const (
	CmdParse   = "parse"
	CmdHex     = "hex"
	CmdRGB     = "rgb"
	CmdHSL     = "hsl"
	CmdBlend   = "blend"
	CmdLighten = "lighten"
	CmdDarken  = "darken"
	CmdInvert  = "invert"
	CmdText    = "text"
	CmdRandom  = "random"
	CmdName    = "name"
	CmdSample  = "sample"
	CmdPalette = "palette"
	CmdSwatch  = "swatch"
	CmdServe   = "serve"
)

const (
	maxRandom  = 1000
	maxPalette = 64
)

// Config holds the parsed CLI arguments. Pointer fields are nil when the
// flag was not given, so values from the config file can apply instead.
type Config struct {
	Command    string
	Args       []string
	ConfigPath string
	Debug      bool

	T       *float64 // blend
	HSL     bool     // blend
	Factor  *float64 // lighten, darken
	N       int      // random, palette
	Full    bool     // random
	OutPath string   // swatch
	Addr    string   // serve
}

type commandSpec struct {
	summary string
	args    string
	minArgs int
	maxArgs int // -1 for unbounded
}

var commands = map[string]commandSpec{
	CmdParse:   {"parse a color and print its tagged channels", "<color>", 1, 1},
	CmdHex:     {"print a color as #rrggbb", "<color>", 1, 1},
	CmdRGB:     {"print a color as rgba()", "<color>", 1, 1},
	CmdHSL:     {"print a color as hsla()", "<color>", 1, 1},
	CmdBlend:   {"blend two colors", "[--t=0.5] [--hsl] <color> <color>", 2, 2},
	CmdLighten: {"lighten a color", "[--factor=0.25] <color>", 1, 1},
	CmdDarken:  {"darken a color", "[--factor=0.25] <color>", 1, 1},
	CmdInvert:  {"invert a color", "<color>", 1, 1},
	CmdText:    {"pick a readable text color for a background", "<color>", 1, 1},
	CmdRandom:  {"print random colors", "[--n=1] [--full]", 0, 0},
	CmdName:    {"print the nearest CSS color name", "<color>", 1, 1},
	CmdSample:  {"print the average color of an image", "<image>", 1, 1},
	CmdPalette: {"print the dominant colors of an image", "[--n=5] <image>", 1, 1},
	CmdSwatch:  {"render colors to a PNG swatch", "--out=file.png <color>...", 1, -1},
	CmdServe:   {"serve the HTTP API", "[--addr=:8080]", 0, 0},
}

var commandOrder = []string{
	CmdParse, CmdHex, CmdRGB, CmdHSL, CmdBlend, CmdLighten, CmdDarken, CmdInvert,
	CmdText, CmdRandom, CmdName, CmdSample, CmdPalette, CmdSwatch, CmdServe,
}

// Usage writes the command overview to w.
func Usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: colr [--config=file.toml] [--debug] <command> [options] [arguments]\n\nCommands:\n")
	for _, name := range commandOrder {
		spec := commands[name]
		fmt.Fprintf(w, "  %-8s %-36s %s\n", name, spec.args, spec.summary)
	}
	fmt.Fprintf(w, "\nColors may be hex (#f00, ff0000), rgb(), rgba(), hsl(), hsla() or CSS names.\n")
	fmt.Fprintf(w, "\nExample:\n  colr blend --t=0.25 '#336699' 'hsl(0, 100%%, 50%%)'\n")
}

// Parse parses CLI arguments (without the program name) and returns a
// validated Config. flag.ErrHelp is returned for -h and --help.
func Parse(args []string) (Config, error) {
	var cfg Config

	global := flag.NewFlagSet("colr", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	global.StringVar(&cfg.ConfigPath, "config", "", "Path to a TOML config file")
	global.BoolVar(&cfg.Debug, "debug", false, "Log debug traces to stderr")
	if err := global.Parse(args); err != nil {
		return Config{}, err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("a command is required")
	}
	cfg.Command = rest[0]
	spec, ok := commands[cfg.Command]
	if !ok {
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}

	fs := flag.NewFlagSet(cfg.Command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var t, factor float64
	switch cfg.Command {
	case CmdBlend:
		fs.Float64Var(&t, "t", 0.5, "Interpolation step between 0 and 1")
		fs.BoolVar(&cfg.HSL, "hsl", false, "Blend in HSL space")
	case CmdLighten, CmdDarken:
		fs.Float64Var(&factor, "factor", 0.25, "Lightness factor")
	case CmdRandom:
		fs.IntVar(&cfg.N, "n", 1, "Number of colors")
		fs.BoolVar(&cfg.Full, "full", false, "Draw saturation and lightness from the full range")
	case CmdPalette:
		fs.IntVar(&cfg.N, "n", 5, "Maximum number of colors")
	case CmdSwatch:
		fs.StringVar(&cfg.OutPath, "out", "", "Path to generated swatch (required, must be .png)")
	case CmdServe:
		fs.StringVar(&cfg.Addr, "addr", "", "Listen address (default from config, :8080)")
	}
	if err := fs.Parse(rest[1:]); err != nil {
		return Config{}, fmt.Errorf("%s: %w", cfg.Command, err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.T = &t
		case "factor":
			cfg.Factor = &factor
		}
	})
	cfg.Args = fs.Args()

	if err := validate(cfg, spec); err != nil {
		return Config{}, fmt.Errorf("%s: %w", cfg.Command, err)
	}
	return cfg, nil
}

func validate(cfg Config, spec commandSpec) error {
	n := len(cfg.Args)
	if n < spec.minArgs || (spec.maxArgs >= 0 && n > spec.maxArgs) {
		return fmt.Errorf("usage: colr %s %s", cfg.Command, spec.args)
	}
	// blend clamps --t into [0,1] itself
	if cfg.T != nil && math.IsNaN(*cfg.T) {
		return errors.New("--t must be a number")
	}
	if cfg.Factor != nil {
		if *cfg.Factor < 0 {
			return fmt.Errorf("--factor must be >= 0, got %v", *cfg.Factor)
		}
		if cfg.Command == CmdDarken && *cfg.Factor > 1 {
			return fmt.Errorf("--factor must be <= 1 when darkening, got %v", *cfg.Factor)
		}
	}

	switch cfg.Command {
	case CmdRandom:
		if cfg.N < 1 || cfg.N > maxRandom {
			return fmt.Errorf("--n must be between 1 and %d, got %d", maxRandom, cfg.N)
		}
	case CmdPalette:
		if cfg.N < 1 || cfg.N > maxPalette {
			return fmt.Errorf("--n must be between 1 and %d, got %d", maxPalette, cfg.N)
		}
		fallthrough
	case CmdSample:
		if !imaging.Supported(cfg.Args[0]) {
			return fmt.Errorf("%w: %q", imaging.ErrUnsupportedFormat, filepath.Ext(cfg.Args[0]))
		}
	case CmdSwatch:
		if cfg.OutPath == "" {
			return errors.New("--out is required")
		}
		if ext := strings.ToLower(filepath.Ext(cfg.OutPath)); ext != ".png" {
			return fmt.Errorf("--out must be a .png file, got %q", ext)
		}
	}
	return nil
}
