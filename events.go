package logdash

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string // @Name EventType

const (
	EventFilterChanged   EventType = "FILTER_CHANGED"
	EventLogsCommitted   EventType = "LOGS_COMMITTED"
	EventQueryDiscarded  EventType = "QUERY_DISCARDED"
	EventCountUpdated    EventType = "COUNT_UPDATED"
	EventDraftChanged    EventType = "DRAFT_CHANGED"
	EventLogAdded        EventType = "LOG_ADDED"
	EventOperationFailed EventType = "OPERATION_FAILED"
)

type Event struct {
	ID         uuid.UUID    `json:"id"`
	Type       EventType    `json:"type"`
	Generation uint64       `json:"generation,omitempty"`
	Operation  Operation    `json:"operation,omitempty"`
	Kind       ErrorKind    `json:"kind,omitempty"`
	Error      string       `json:"error,omitempty"`
	Filter     *FilterState `json:"filter,omitempty"`
	TotalCount int          `json:"totalCount"`
	LogCount   int          `json:"logCount"`
	OccurredAt time.Time    `json:"occurredAt"`
} // @Name Event

// EventListener receives dashboard events on the event loop goroutine. Implementations must
// not block and must not call Dashboard methods synchronously.
type EventListener interface {
	OnDashboardEvent(event Event)
}

type EventListenerFunc func(event Event)

func (f EventListenerFunc) OnDashboardEvent(event Event) {
	f(event)
}

type eventBus struct {
	mutex     sync.Mutex
	listeners map[uuid.UUID]EventListener
	order     []uuid.UUID
}

func newEventBus() *eventBus {
	return &eventBus{
		listeners: make(map[uuid.UUID]EventListener),
	}
}

// subscribe registers listener; listeners are notified in registration order.
func (b *eventBus) subscribe(listener EventListener) func() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	id := uuid.New()
	b.listeners[id] = listener
	b.order = append(b.order, id)

	return func() {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		delete(b.listeners, id)
		for i, candidate := range b.order {
			if candidate == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

func (b *eventBus) publish(event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	b.mutex.Lock()
	listeners := make([]EventListener, 0, len(b.order))
	for _, id := range b.order {
		listeners = append(listeners, b.listeners[id])
	}
	b.mutex.Unlock()

	for _, listener := range listeners {
		listener.OnDashboardEvent(event)
	}
}
