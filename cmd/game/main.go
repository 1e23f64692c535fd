package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tatianab/word-sketch/internal/app"
	"github.com/tatianab/word-sketch/internal/config"
	"github.com/tatianab/word-sketch/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Printf("Error starting game: %v\n", err)
		os.Exit(1)
	}

	err = tui.Run(ctx, a.Engine, tui.Options{
		Prefs:      a.Prefs,
		Capture:    a.Capture,
		Logger:     a.Logger,
		BrushWidth: a.Brush,
	})
	if cerr := a.Close(); cerr != nil {
		fmt.Printf("Error shutting down: %v\n", cerr)
	}
	if err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
