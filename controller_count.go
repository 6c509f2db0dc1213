package logdash

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CountController keeps the global log count. The count is not scoped by the filter.
type CountController struct {
	ctx      context.Context
	logStore LogStore
	state    *State
	loop     dispatcher
	bus      *eventBus
}

func NewCountController(ctx context.Context, logStore LogStore, state *State, loop dispatcher, bus *eventBus) *CountController {
	log.Trace().Msg("Creating new count controller")
	return &CountController{
		ctx:      ctx,
		logStore: logStore,
		state:    state,
		loop:     loop,
		bus:      bus,
	}
}

// RefreshCount fetches the count asynchronously. Overlapping refreshes commit only the latest.
// Must be called on the event loop.
func (c *CountController) RefreshCount() uint64 {
	var generation uint64
	c.state.mutate(func(s *State) {
		s.countGeneration++
		generation = s.countGeneration
	})

	go func() {
		count, err := c.logStore.CountLogs(c.ctx)
		c.loop.Post(func() {
			c.resolve(generation, count, err)
		})
	}()

	return generation
}

func (c *CountController) resolve(generation uint64, count int, err error) {
	var current uint64
	c.state.read(func(s *State) {
		current = s.countGeneration
	})
	if generation != current {
		log.Debug().Uint64("generation", generation).Uint64("current", current).Msg("Discarding superseded log count")
		return
	}

	if err != nil {
		reportFailure(c.state, c.bus, OperationCount, generation, err)
		return
	}

	countedAt := time.Now().UTC()
	var filter FilterState
	c.state.mutate(func(s *State) {
		s.totalCount = count
		s.lastCountAt = &countedAt
		filter = s.filter
	})

	c.bus.publish(Event{
		Type:       EventCountUpdated,
		Generation: generation,
		Operation:  OperationCount,
		Filter:     &filter,
		TotalCount: count,
	})
}

func reportFailure(state *State, bus *eventBus, operation Operation, generation uint64, err error) {
	kind := KindOf(err)
	log.Error().Err(err).
		Str("operation", string(operation)).
		Str("kind", string(kind)).
		Uint64("generation", generation).
		Msg("Dashboard operation failed")

	failure := Failure{
		Operation:  operation,
		Kind:       kind,
		Message:    err.Error(),
		OccurredAt: time.Now().UTC(),
	}
	var totalCount, logCount int
	state.mutate(func(s *State) {
		s.lastFailure = &failure
		totalCount = s.totalCount
		logCount = len(s.logs)
	})

	bus.publish(Event{
		Type:       EventOperationFailed,
		Generation: generation,
		Operation:  operation,
		Kind:       kind,
		Error:      failure.Message,
		TotalCount: totalCount,
		LogCount:   logCount,
		OccurredAt: failure.OccurredAt,
	})
}
