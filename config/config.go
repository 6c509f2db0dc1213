package config

import (
	"github.com/rs/zerolog"

	"github.com/pkg/errors"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const MsgFailedToReadConfiguration = "failed to read configuration"

var ErrFailedToReadConfiguration = errors.New(MsgFailedToReadConfiguration)

type Configuration struct {
	APIPort                   uint16        `envconfig:"API_PORT" default:"8080"`
	Development               bool          `envconfig:"DEVELOPMENT" default:"false"`
	PermittedOrigin           string        `envconfig:"PERMITTED_ORIGIN_URL" default:"*"`
	LogLevel                  zerolog.Level `envconfig:"LOG_LEVEL" default:"1"`
	ApplicationName           string        `envconfig:"APPLICATION_NAME" default:"logdash"`
	LogStoreURL               string        `envconfig:"LOG_STORE_URL" required:"true" default:"http://localhost:8000"`
	Proxy                     string        `envconfig:"PROXY" default:""`
	LogStoreTimeoutSeconds    uint          `envconfig:"LOG_STORE_TIMEOUT_SECONDS" default:"0"`
	ConsoleLogSize            int           `envconfig:"CONSOLE_LOG_SIZE" default:"500"`
	RequestTimeoutSeconds     int           `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"10"`
	LongPollEventBufferSize   int           `envconfig:"LONG_POLL_EVENT_BUFFER_SIZE" default:"250"`
	LongPollEventTTLSeconds   int           `envconfig:"LONG_POLL_EVENT_TTL_SECONDS" default:"60"`
	LongPollMaxTimeoutSeconds int           `envconfig:"LONG_POLL_MAX_TIMEOUT_SECONDS" default:"110"`
	DashboardURL              string        `envconfig:"DASHBOARD_URL" default:"http://localhost:8080"`
	WatchPollTimeoutSeconds   uint          `envconfig:"WATCH_POLL_TIMEOUT_SECONDS" default:"45"`
}

func ReadConfiguration() (Configuration, error) {
	var config Configuration
	err := envconfig.Process("", &config)
	if err != nil {
		err = errors.Wrap(err, MsgFailedToReadConfiguration)
		log.Error().Err(err).Msgf("%s\n", ErrFailedToReadConfiguration)
		return config, err
	}
	if config.ConsoleLogSize < 1 {
		err = errors.Wrapf(ErrFailedToReadConfiguration, "CONSOLE_LOG_SIZE must be positive, got %d", config.ConsoleLogSize)
		log.Error().Err(err).Msg("invalid configuration")
		return config, err
	}
	return config, nil
}
