package main

import (
	"context"
	"iconpad/internal/adapters/converter"
	"iconpad/internal/adapters/file"
	"iconpad/internal/config"
	"iconpad/internal/core/service"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(run())
}

func run() int {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("reading config file...")
	cfg, err := config.Load(viper.GetViper(), ".")
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return service.ExitFailure
	}

	zerolog.SetGlobalLevel(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	orchestrator := service.NewFileOrchestrator(
		converter.NewImagingPadder(),
		file.NewLocalStore(),
		os.Stdout,
		service.Paths{
			Input:        cfg.Input,
			Backup:       cfg.Backup,
			Output:       cfg.Output,
			PropagateDir: cfg.PropagateDir,
		},
		cfg.PaddingPercent)

	return orchestrator.Run(ctx)
}
