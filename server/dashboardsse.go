package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const clientBufferSize = 64

type DashboardSSEServer struct {
	clientListener    DashboardSSEClientListener
	messageChan       chan sse.Event
	newClientsChan    chan *SSEClient
	closedClientsChan chan *SSEClient
	clients           map[*SSEClient]struct{}
	done              <-chan struct{}
}

// DashboardSSEClientListener is notified about client lifecycle and delivery outcomes. All
// callbacks run on the server's goroutines and must not block.
type DashboardSSEClientListener interface {
	OnSSENewClient(client *SSEClient)
	OnSSEClientClosed(client *SSEClient)
	OnSSESendingCompleted(result SSEResult)
}

func NewDashboardSSEClient(ctx context.Context) *SSEClient {
	return &SSEClient{
		Context:   ctx,
		EventChan: make(chan sse.Event, clientBufferSize),
	}
}

// NewDashboardSSEServer starts the broadcast loop, which stops when ctx is done. listener may
// be nil.
func NewDashboardSSEServer(ctx context.Context, listener DashboardSSEClientListener) *DashboardSSEServer {
	s := &DashboardSSEServer{
		clientListener:    listener,
		messageChan:       make(chan sse.Event, clientBufferSize),
		newClientsChan:    make(chan *SSEClient),
		closedClientsChan: make(chan *SSEClient),
		clients:           make(map[*SSEClient]struct{}),
		done:              ctx.Done(),
	}

	go s.listen(ctx)

	return s
}

// Send queues data for every connected client. It never blocks; when the server is saturated
// the message is dropped and logged.
func (s *DashboardSSEServer) Send(eventName string, data interface{}) {
	event := sse.Event{
		Id:    uuid.NewString(),
		Event: eventName,
		Data:  data,
	}
	select {
	case s.messageChan <- event:
	default:
		log.Warn().Str("event", eventName).Msg("SSE server saturated, dropping message")
		s.completed(SSEResult{Result: SSEDropped, Event: event})
	}
}

func (s *DashboardSSEServer) ServeHTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		client := NewDashboardSSEClient(ctx)

		select {
		case s.newClientsChan <- client:
		case <-ctx.Done():
			return
		case <-s.done:
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		defer func() {
			select {
			case s.closedClientsChan <- client:
			case <-s.done:
			}
		}()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.WriteHeader(http.StatusOK)
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case event, ok := <-client.EventChan:
				if !ok {
					return false
				}
				c.Render(-1, event)
				s.completed(SSEResult{Result: SSEDelivered, Event: event})
				return true
			}
		})
	}
}

func (s *DashboardSSEServer) listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range s.clients {
				close(client.EventChan)
				delete(s.clients, client)
			}
			log.Debug().Msg("SSE server stopped")
			return
		case client := <-s.newClientsChan:
			s.clients[client] = struct{}{}
			if s.clientListener != nil {
				s.clientListener.OnSSENewClient(client)
			}
			log.Debug().Msgf("Client added... %d registered clients", len(s.clients))
		case client := <-s.closedClientsChan:
			if _, ok := s.clients[client]; !ok {
				continue
			}
			delete(s.clients, client)
			close(client.EventChan)
			if s.clientListener != nil {
				s.clientListener.OnSSEClientClosed(client)
			}
			log.Debug().Msgf("Removed client... %d registered clients", len(s.clients))
		case event := <-s.messageChan:
			for client := range s.clients {
				select {
				case client.EventChan <- event:
				default:
					log.Warn().Str("event", event.Event).Msg("SSE client is too slow, dropping message")
					s.completed(SSEResult{Result: SSEUndelivered, Event: event})
				}
			}
		}
	}
}

func (s *DashboardSSEServer) completed(result SSEResult) {
	if s.clientListener != nil {
		s.clientListener.OnSSESendingCompleted(result)
	}
}
