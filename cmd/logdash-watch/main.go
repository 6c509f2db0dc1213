package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blutspende/logdash"
	"github.com/blutspende/logdash/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logdash-watch prints the events of a running dashboard as JSON lines.
func main() {
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.Out = os.Stderr
	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()

	configuration, err := config.ReadConfiguration()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read configuration")
	}
	zerolog.SetGlobalLevel(configuration.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchClient := logdash.NewEventWatchClient(logdash.NewWatchRestyClient(&configuration),
		configuration.DashboardURL, configuration.WatchPollTimeoutSeconds)

	events, err := watchClient.Watch(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to watch dashboard")
	}

	encoder := json.NewEncoder(os.Stdout)
	for event := range events {
		if err = encoder.Encode(event); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
