package logdash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	longpollclient "github.com/jcuga/golongpoll/client"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const msgFailedToCreateWatchClient = "failed to create long-poll client"

// EventWatchClient follows a remote dashboard's events through its long-poll endpoint.
type EventWatchClient interface {
	// Watch delivers events published after since until ctx is done, then closes the channel
	Watch(ctx context.Context, since time.Time) (<-chan Event, error)
}

type eventWatchClient struct {
	restyClient    *resty.Client
	dashboardUrl   string
	timeoutSeconds uint
}

func NewEventWatchClient(restyClient *resty.Client, dashboardUrl string, timeoutSeconds uint) EventWatchClient {
	return &eventWatchClient{
		restyClient:    restyClient,
		dashboardUrl:   dashboardUrl,
		timeoutSeconds: timeoutSeconds,
	}
}

func (w *eventWatchClient) Watch(ctx context.Context, since time.Time) (<-chan Event, error) {
	u, err := url.Parse(w.dashboardUrl + "/v1/events/poll")
	if err != nil {
		return nil, errors.Wrap(err, msgFailedToCreateWatchClient)
	}

	httpClient := &http.Client{
		Transport: &RestyRoundTripper{restyClient: w.restyClient},
	}

	c, err := longpollclient.NewClient(longpollclient.ClientOptions{
		SubscribeUrl:       *u,
		Category:           LongPollCategory,
		PollTimeoutSeconds: w.timeoutSeconds,
		HttpClient:         httpClient,
	})
	if err != nil {
		return nil, errors.Wrap(err, msgFailedToCreateWatchClient)
	}

	events := make(chan Event)
	polled := c.Start(since)

	go func() {
		defer close(events)
		defer c.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Long poll gracefully stopped")
				return
			case polledEvent, ok := <-polled:
				if !ok {
					return
				}
				event, err := decodeWatchedEvent(polledEvent.Data)
				if err != nil {
					log.Error().Err(err).Msg("Failed to decode long-poll event")
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func decodeWatchedEvent(data interface{}) (Event, error) {
	var event Event
	jsonData, err := json.Marshal(data)
	if err != nil {
		return event, err
	}
	if err = json.Unmarshal(jsonData, &event); err != nil {
		return event, err
	}
	return event, nil
}
