// Command flickball opens the game in an ebiten window. Pass -debug for
// the ImGui stats and entity overlay.
package main

import (
	"flag"
	"log"

	"github.com/plus3/flickball/audio"
	"github.com/plus3/flickball/config"
	"github.com/plus3/flickball/ecs/debugui"
	debugui_ebiten "github.com/plus3/flickball/ecs/debugui/ebiten"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render/ebitenview"
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

	view := ebitenview.New(session, cfg.Camera())
	if cfg.Debug {
		overlay := debugui_ebiten.NewImguiBackend(session.Storage, cfg.Title, cfg.Width, cfg.Height)
		debugui.SpawnDebugUI(session.Storage, session.Scheduler, gameWindow(session.Storage))
		view.WithOverlay(overlay)
	}

	if err := ebitenview.Run(view, cfg.Title, cfg.Width, cfg.Height, cfg.TPS); err != nil {
		log.Fatalf("Failed to run game: %v", err)
	}
}
