package logdash

import (
	"crypto/tls"
	"time"

	"github.com/blutspende/logdash/config"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewRestyClient builds the log store client. LOG_STORE_TIMEOUT_SECONDS bounds every request.
func NewRestyClient(configuration *config.Configuration, useProxy bool) *resty.Client {
	return newRestyClient(configuration, useProxy, time.Duration(configuration.LogStoreTimeoutSeconds)*time.Second)
}

// NewWatchRestyClient builds the client for long-poll watching. Polls are bounded by the poll
// timeout the server honours, so the client sets no overall timeout.
func NewWatchRestyClient(configuration *config.Configuration) *resty.Client {
	return newRestyClient(configuration, false, 0)
}

func newRestyClient(configuration *config.Configuration, useProxy bool, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetHeader("User-Agent", configuration.ApplicationName).
		OnBeforeRequest(configureRequest(configuration)).
		OnAfterResponse(logResponse(configuration))

	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if configuration.Development {
		client = client.SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})
	}
	if useProxy && configuration.Proxy != "" {
		client.SetProxy(configuration.Proxy)
	}

	return client
}

func configureRequest(configuration *config.Configuration) resty.RequestMiddleware {
	return func(client *resty.Client, request *resty.Request) error {
		if configuration.LogLevel <= zerolog.DebugLevel {
			request.EnableTrace()
		}
		return nil
	}
}

func logResponse(configuration *config.Configuration) resty.ResponseMiddleware {
	return func(client *resty.Client, response *resty.Response) error {
		if configuration.LogLevel > zerolog.DebugLevel {
			return nil
		}
		log.Debug().
			Str("method", response.Request.Method).
			Str("url", response.Request.URL).
			Int("status", response.StatusCode()).
			Dur("duration", response.Time()).
			Dur("serverTime", response.Request.TraceInfo().ServerTime).
			Msg("log store call")
		return nil
	}
}
