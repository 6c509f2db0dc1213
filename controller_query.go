package logdash

import (
	"context"

	"github.com/rs/zerolog/log"
)

// QueryController turns filter snapshots into /all-logs fetches and commits only the response
// of the most recently issued one. Refresh must be called on the event loop.
type QueryController struct {
	ctx      context.Context
	logStore LogStore
	state    *State
	loop     dispatcher
	bus      *eventBus
}

func NewQueryController(ctx context.Context, logStore LogStore, state *State, loop dispatcher, bus *eventBus) *QueryController {
	log.Trace().Msg("Creating new query controller")
	return &QueryController{
		ctx:      ctx,
		logStore: logStore,
		state:    state,
		loop:     loop,
		bus:      bus,
	}
}

// Refresh issues exactly one fetch for filter and returns the generation it was tagged with.
// The outcome arrives as LOGS_COMMITTED, QUERY_DISCARDED or OPERATION_FAILED.
func (c *QueryController) Refresh(filter FilterState) uint64 {
	var generation uint64
	c.state.mutate(func(s *State) {
		s.generation++
		generation = s.generation
	})

	query := filter.Query(ItemsPerPage)
	log.Debug().Uint64("generation", generation).Interface("query", query).Msg("Fetching logs")

	go func() {
		logs, err := c.logStore.FetchLogs(c.ctx, query)
		c.loop.Post(func() {
			c.resolve(generation, filter, logs, err)
		})
	}()

	return generation
}

func (c *QueryController) resolve(generation uint64, filter FilterState, logs []LogEntry, err error) {
	var current uint64
	c.state.read(func(s *State) {
		current = s.generation
	})

	if generation != current {
		log.Debug().
			Uint64("generation", generation).
			Uint64("current", current).
			AnErr("error", err).
			Msg("Discarding superseded log query result")
		c.bus.publish(Event{
			Type:       EventQueryDiscarded,
			Generation: generation,
			Operation:  OperationQuery,
			Filter:     &filter,
		})
		return
	}

	if err != nil {
		reportFailure(c.state, c.bus, OperationQuery, generation, err)
		return
	}

	if logs == nil {
		logs = []LogEntry{}
	}
	var totalCount int
	c.state.mutate(func(s *State) {
		s.logs = logs
		totalCount = s.totalCount
	})

	c.bus.publish(Event{
		Type:       EventLogsCommitted,
		Generation: generation,
		Operation:  OperationQuery,
		Filter:     &filter,
		TotalCount: totalCount,
		LogCount:   len(logs),
	})
}
