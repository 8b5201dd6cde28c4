// Package command executes a parsed colr command line.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/maax3v3/colr/internal/cli"
	"github.com/maax3v3/colr/internal/color"
	"github.com/maax3v3/colr/internal/config"
	"github.com/maax3v3/colr/internal/imaging"
	"github.com/maax3v3/colr/internal/renderer"
	"github.com/maax3v3/colr/internal/server"
)

// Env carries what a command needs besides its arguments.
type Env struct {
	Config config.Config
	Out    io.Writer
	Logger *slog.Logger
	Font   renderer.FontRenderer // nil selects the bitmap font
}

// Run executes inv. Results are written to env.Out; errors are returned
// for the caller to report.
func Run(ctx context.Context, inv cli.Config, env Env) error {
	log := env.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	palette := color.Palette(env.Config.Palette)
	if inv.Full {
		palette = color.PaletteFull
	}
	conv := color.NewConverter(color.Options{
		Logger:  log,
		Strict:  env.Config.Strict,
		Palette: palette,
	})
	r := &runner{conv: conv, cfg: env.Config, out: env.Out, log: log, font: env.Font}
	if r.font == nil {
		r.font = renderer.NewBitmapFont()
	}

	log.Debug("running command", "command", inv.Command, "args", inv.Args)
	switch inv.Command {
	case cli.CmdParse:
		return r.parse(inv.Args[0])
	case cli.CmdHex:
		return r.print(conv.Hex(color.CSS(inv.Args[0])))
	case cli.CmdRGB:
		return r.printColor(conv.ToRGB(color.CSS(inv.Args[0])))
	case cli.CmdHSL:
		return r.printColor(conv.ToHSL(color.CSS(inv.Args[0])))
	case cli.CmdBlend:
		t := pick(inv.T, env.Config.Defaults.Blend)
		a, b := color.CSS(inv.Args[0]), color.CSS(inv.Args[1])
		if inv.HSL {
			return r.printColor(conv.BlendHSL(a, b, t))
		}
		return r.printColor(conv.Blend(a, b, t))
	case cli.CmdLighten:
		return r.printColor(conv.Lighten(color.CSS(inv.Args[0]), pick(inv.Factor, env.Config.Defaults.Lighten)))
	case cli.CmdDarken:
		return r.printColor(conv.Darken(color.CSS(inv.Args[0]), pick(inv.Factor, env.Config.Defaults.Darken)))
	case cli.CmdInvert:
		return r.printColor(conv.Invert(color.CSS(inv.Args[0])))
	case cli.CmdText:
		return r.printColor(conv.TextColor(color.CSS(inv.Args[0])))
	case cli.CmdRandom:
		for i := 0; i < inv.N; i++ {
			fmt.Fprintln(r.out, conv.Random())
		}
		return nil
	case cli.CmdName:
		return r.name(inv.Args[0])
	case cli.CmdSample:
		return r.sample(inv.Args[0])
	case cli.CmdPalette:
		return r.palette(inv.Args[0], inv.N)
	case cli.CmdSwatch:
		return r.swatch(inv.OutPath, inv.Args)
	case cli.CmdServe:
		addr := env.Config.Server.Addr
		if inv.Addr != "" {
			addr = inv.Addr
		}
		return server.New(conv, env.Config, log).ListenAndServe(ctx, addr)
	default:
		return fmt.Errorf("unknown command %q", inv.Command)
	}
}

type runner struct {
	conv *color.Converter
	cfg  config.Config
	out  io.Writer
	log  *slog.Logger
	font renderer.FontRenderer
}

func pick(flag *float64, fallback float64) float64 {
	if flag != nil {
		return *flag
	}
	return fallback
}

func (r *runner) print(s string, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, s)
	return err
}

func (r *runner) printColor(c color.Color, err error) error {
	if err != nil {
		return err
	}
	return r.print(c.CSS(), nil)
}

func (r *runner) parse(s string) error {
	c, err := r.conv.Parse(color.CSS(s))
	if err != nil {
		return err
	}
	ch := c.Channels()
	nums := make([]string, len(ch))
	for i, v := range ch {
		nums[i] = fmt.Sprint(v)
	}
	fmt.Fprintf(r.out, "space:    %s\n", c.Space())
	fmt.Fprintf(r.out, "channels: %s\n", strings.Join(nums, " "))
	fmt.Fprintf(r.out, "css:      %s\n", c.CSS())
	fmt.Fprintf(r.out, "hex:      %s\n", c.Hex())
	return nil
}

func (r *runner) name(s string) error {
	name, exact, err := r.conv.Name(color.CSS(s))
	if err != nil {
		return err
	}
	if !exact {
		name += " (nearest)"
	}
	return r.print(name, nil)
}

func (r *runner) sample(path string) error {
	avg, err := imaging.SampleFile(path)
	if err != nil {
		return fmt.Errorf("sampling image: %w", err)
	}
	c := color.FromRGB(avg)
	r.log.Debug("sampled image", "path", path, "color", c)
	fmt.Fprintf(r.out, "%s %s\n", c.Hex(), c.CSS())
	return nil
}

func (r *runner) palette(path string, n int) error {
	entries, err := imaging.PaletteFile(path, n)
	if err != nil {
		return fmt.Errorf("extracting palette: %w", err)
	}
	for _, e := range entries {
		c := color.FromRGB(e.Color)
		fmt.Fprintf(r.out, "%s %5.1f%%  %s\n", c.Hex(), e.Weight*100, c.CSS())
	}
	r.log.Debug("extracted palette", "path", path, "colors", len(entries))
	return nil
}

func (r *runner) swatch(outPath string, args []string) error {
	colors := make([]color.RGB, len(args))
	for i, s := range args {
		c, err := r.conv.Parse(color.CSS(s))
		if err != nil {
			return fmt.Errorf("color %d: %w", i+1, err)
		}
		colors[i] = c.RGB()
	}

	img := renderer.Render(colors, r.font, renderer.DefaultConfig())
	if err := imaging.SavePNG(outPath, img); err != nil {
		return fmt.Errorf("saving swatch: %w", err)
	}
	r.log.Debug("saved swatch", "path", outPath, "colors", len(colors))
	fmt.Fprintf(r.out, "Saved swatch: %s (%d colors)\n", outPath, len(colors))
	return nil
}
