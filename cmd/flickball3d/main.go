// Command flickball3d opens the game in a raylib 3D window.
package main

import (
	"flag"
	"log"

	"github.com/plus3/flickball/audio"
	"github.com/plus3/flickball/config"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render/rlview"
)

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	session := game.NewSession(cfg.Params())
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("[GAME] close: %v", err)
		}
	}()

	sounds := audio.NewSoundManager(cfg.Audio())
	if err := sounds.Initialize(); err != nil {
		log.Printf("[AUDIO] running silent: %v", err)
	} else {
		session.OnHit(func(game.HitEvent) { sounds.PlayHit() })
		session.AddCloser(sounds)
	}

	rlview.New(session, cfg.Camera()).Run(cfg.Title, cfg.Width, cfg.Height, cfg.TPS)
}
