package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blutspende/logdash"
	"github.com/blutspende/logdash/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configureLogger()

	configuration, err := config.ReadConfiguration()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read configuration")
	}
	zerolog.SetGlobalLevel(configuration.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := logdash.NewLogdash(ctx, &configuration)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create logdash")
	}

	log.Info().
		Str("logStore", configuration.LogStoreURL).
		Uint16("port", configuration.APIPort).
		Msg("Starting logdash")

	if err = service.Start(); err != nil {
		log.Fatal().Err(err).Msg("Logdash stopped unexpectedly")
	}

	log.Info().Msg("Logdash stopped")
}

func configureLogger() {
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = "2006-01-02T15:04:05Z07:00"
	log.Logger = zerolog.New(consoleWriter).With().Caller().Stack().Timestamp().Logger()
}
