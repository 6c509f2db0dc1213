package logdash

import (
	"context"

	"github.com/blutspende/logdash/config"
	"github.com/blutspende/logdash/server"

	"github.com/jcuga/golongpoll"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LongPollCategory is the golongpoll category every dashboard event is published under.
const LongPollCategory = "dashboard"

const (
	msgFailedToStartLongPoll = "failed to start long-poll manager"

	defaultLongPollTimeoutSeconds  = 110
	defaultLongPollEventBufferSize = 250
)

// EventStream fans dashboard events out to SSE clients and long-poll subscribers.
type EventStream struct {
	sseServer       *server.DashboardSSEServer
	longpollManager *golongpoll.LongpollManager
}

func NewEventStream(ctx context.Context, configuration *config.Configuration) (*EventStream, error) {
	log.Trace().Msg("Creating new event stream")

	options := golongpoll.Options{
		LoggingEnabled:            configuration.LogLevel <= zerolog.TraceLevel,
		MaxLongpollTimeoutSeconds: configuration.LongPollMaxTimeoutSeconds,
		MaxEventBufferSize:        configuration.LongPollEventBufferSize,
		EventTimeToLiveSeconds:    configuration.LongPollEventTTLSeconds,
	}
	if options.MaxLongpollTimeoutSeconds <= 0 {
		options.MaxLongpollTimeoutSeconds = defaultLongPollTimeoutSeconds
	}
	if options.MaxEventBufferSize <= 0 {
		options.MaxEventBufferSize = defaultLongPollEventBufferSize
	}
	// 0 keeps events until the buffer evicts them
	if options.EventTimeToLiveSeconds < 0 {
		options.EventTimeToLiveSeconds = 0
	}

	longpollManager, err := golongpoll.StartLongpoll(options)
	if err != nil {
		return nil, errors.Wrap(err, msgFailedToStartLongPoll)
	}

	return &EventStream{
		sseServer:       server.NewDashboardSSEServer(ctx, nil),
		longpollManager: longpollManager,
	}, nil
}

func (s *EventStream) OnDashboardEvent(event Event) {
	s.sseServer.Send(string(event.Type), event)
	if err := s.longpollManager.Publish(LongPollCategory, event); err != nil {
		log.Error().Err(err).Str("event", string(event.Type)).Msg("Failed to publish long-poll event")
	}
}

// Shutdown stops the long-poll manager; the SSE server stops with its context. Call it only
// after the dashboard event loop has exited, OnDashboardEvent must not run afterwards.
func (s *EventStream) Shutdown() {
	s.longpollManager.Shutdown()
}
