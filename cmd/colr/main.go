package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/maax3v3/colr/internal/cli"
	"github.com/maax3v3/colr/internal/command"
	"github.com/maax3v3/colr/internal/config"
)

func main() {
	inv, err := cli.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		cli.Usage(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		cli.Usage(os.Stderr)
		os.Exit(2)
	}

	cfg := config.Default()
	if inv.ConfigPath != "" {
		if cfg, err = config.Load(inv.ConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	level := slog.LevelInfo
	if inv.Debug || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = command.Run(ctx, inv, command.Env{Config: cfg, Out: os.Stdout, Logger: logger})
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
