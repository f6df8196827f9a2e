package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/sand"
	"sandfall/internal/term"
)

func main() {
	fs := flag.NewFlagSet("sandterm", flag.ExitOnError)
	cfg, err := app.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	// Terminal cells are large; default to one cell per grain.
	if !flagSet(fs, "scale") && cfg.File == "" {
		cfg.Scale = 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	sim := sand.NewWithConfig(sand.FromMap(cfg.SimParams()))
	sim.Reset(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := term.New(screen, sim, cfg.Scale, cfg.TPS, cfg.Seed)
	err = driver.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Printf("stopped after %d ticks", sim.Ticks())
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
