// Command flickball-tty plays the game top-down in the terminal. Drag
// with the left mouse button; q or Escape quits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flickball/audio"
	"github.com/plus3/flickball/config"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render/ttyview"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	session := game.NewSession(cfg.Params())
	defer session.Close()

	sounds := audio.NewSoundManager(cfg.Audio())
	if err := sounds.Initialize(); err != nil {
		log.Printf("[AUDIO] running silent: %v", err)
	} else {
		session.OnHit(func(game.HitEvent) { sounds.PlayHit() })
		session.AddCloser(sounds)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := time.Second / time.Duration(cfg.TPS)
	ttyview.New(screen, session).Run(ctx, interval)
}
