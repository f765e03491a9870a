package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"gravityshot/config"
	"gravityshot/game"
	"gravityshot/logging"
)

func main() {
	flags := pflag.NewFlagSet("gravityshot", pflag.ExitOnError)
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path, flags)
	if err != nil {
		log := logging.New(os.Stderr, "info", true)
		log.Fatal().Err(err).Msg("load config")
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	g, err := game.NewGame(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create game")
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Gravity Shot")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}
