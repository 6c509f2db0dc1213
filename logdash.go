package logdash

import (
	"context"

	"github.com/blutspende/logdash/config"
	"github.com/blutspende/logdash/consolelog/repository"
	"github.com/blutspende/logdash/consolelog/service"

	"github.com/rs/zerolog/log"
)

// Logdash is the assembled dashboard service: log store client, dashboard, console log,
// event stream and HTTP API.
type Logdash interface {
	Dashboard() Dashboard
	// Start mounts the dashboard and serves the API until the context given to NewLogdash is done
	Start() error
}

type logdash struct {
	ctx         context.Context
	cancel      context.CancelFunc
	dashboard   Dashboard
	eventStream *EventStream
	api         GinApi
}

func NewLogdash(ctx context.Context, configuration *config.Configuration) (Logdash, error) {
	logStore, err := NewLogStoreClient(configuration.LogStoreURL, NewRestyClient(configuration, true))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	eventStream, err := NewEventStream(ctx, configuration)
	if err != nil {
		cancel()
		return nil, err
	}

	consoleLogService := service.NewConsoleLogService(repository.NewConsoleLogRepository(configuration.ConsoleLogSize))

	dashboard := NewDashboard(ctx, logStore)
	dashboard.Subscribe(NewConsoleLogListener(consoleLogService))
	dashboard.Subscribe(eventStream)

	return &logdash{
		ctx:         ctx,
		cancel:      cancel,
		dashboard:   dashboard,
		eventStream: eventStream,
		api:         NewAPI(configuration, dashboard, consoleLogService, eventStream),
	}, nil
}

func (l *logdash) Dashboard() Dashboard {
	return l.dashboard
}

func (l *logdash) Start() error {
	go l.dashboard.Run()
	defer l.stop()

	if err := l.dashboard.Mount(l.ctx); err != nil {
		log.Error().Err(err).Msg("Failed to mount dashboard")
		return err
	}

	err := l.api.Run(l.ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start API")
		return err
	}

	return nil
}

// stop ends the event loop and shuts the event stream down once no listener can publish anymore.
func (l *logdash) stop() {
	l.cancel()
	<-l.dashboard.Done()
	l.eventStream.Shutdown()
}
