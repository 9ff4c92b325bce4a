package main

import (
	"flag"
	"fmt"

	"gomoku-local/config"
	"gomoku-local/types"
)

type options struct {
	depth   int
	radius  int
	workers int
	color   string
	plain   bool
	serve   string
	play    bool
	focus   bool
	version bool
}

func parseFlags(args []string) options {
	var o options
	fs := flag.NewFlagSet("gomoku-local", flag.ExitOnError)
	fs.IntVar(&o.depth, "depth", 0, "Search depth in plies (even, at least 2)")
	fs.IntVar(&o.radius, "radius", 0, "Candidate moves lie within this distance of a stone")
	fs.IntVar(&o.workers, "workers", -1, "Parallel root searches (0 = one per CPU)")
	fs.StringVar(&o.color, "color", "", "Player color (black or white)")
	fs.BoolVar(&o.plain, "plain", false, "Play in plain line mode instead of the terminal UI")
	fs.StringVar(&o.serve, "serve", "", "Serve the game over HTTP on this address, e.g. :8080")
	fs.BoolVar(&o.play, "play", false, "Start game immediately with defaults")
	fs.BoolVar(&o.focus, "focus", false, "Start in focus mode (fullscreen board)")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	fs.Parse(args)
	return o
}

// apply overrides config values with the flags that were set and revalidates.
func (o options) apply(c *config.Config) error {
	if o.depth != 0 {
		c.Engine.SearchDepth = o.depth
	}
	if o.radius != 0 {
		c.Engine.Radius = o.radius
	}
	if o.workers >= 0 {
		c.Engine.Workers = o.workers
	}
	if o.color != "" {
		side, err := types.SideFromColor(o.color)
		if err != nil {
			return fmt.Errorf("-color: %w", err)
		}
		c.Engine.PlayerColor = int(side)
	}
	return c.Validate()
}
