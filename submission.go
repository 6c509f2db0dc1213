package logdash

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogSubmission posts drafts to the store, one at a time. A successful post resets the draft,
// unless it was edited while the post was in flight, and emits LOG_ADDED. Submit must be
// called on the event loop.
type LogSubmission struct {
	ctx      context.Context
	logStore LogStore
	state    *State
	loop     dispatcher
	bus      *eventBus
}

func NewLogSubmission(ctx context.Context, logStore LogStore, state *State, loop dispatcher, bus *eventBus) *LogSubmission {
	log.Trace().Msg("Creating new log submission")
	return &LogSubmission{
		ctx:      ctx,
		logStore: logStore,
		state:    state,
		loop:     loop,
		bus:      bus,
	}
}

// Submit validates draft and, when valid, posts it asynchronously. A ValidationError is
// reported and returned before any request is made.
func (s *LogSubmission) Submit(draft LogDraft) error {
	record, err := draft.Record()
	if err != nil {
		reportFailure(s.state, s.bus, OperationSubmit, 0, err)
		return err
	}

	s.state.mutate(func(state *State) {
		state.submitting = true
	})

	logSubmitting(log.Logger, record)
	submitted := draft
	submitted.Timestamp = copyTime(draft.Timestamp)
	go func() {
		err := s.logStore.AddLog(s.ctx, record)
		s.loop.Post(func() {
			s.resolve(submitted, err)
		})
	}()

	return nil
}

// logSubmitting keeps the record's level apart from the entry's own level field.
func logSubmitting(logger zerolog.Logger, record LogRecord) {
	logger.Debug().Str("topic", record.Topic).Str("logLevel", record.Level).Msg("Submitting log")
}

func (s *LogSubmission) resolve(submitted LogDraft, err error) {
	if err != nil {
		// draft stays as it is so the user can retry
		s.state.mutate(func(state *State) {
			state.submitting = false
		})
		reportFailure(s.state, s.bus, OperationSubmit, 0, err)
		return
	}

	var filter FilterState
	s.state.mutate(func(state *State) {
		state.submitting = false
		if state.draftOpen && state.draft.Equal(submitted) {
			state.draft = LogDraft{}
			state.draftOpen = false
		}
		filter = state.filter
	})

	s.bus.publish(Event{
		Type:      EventLogAdded,
		Operation: OperationSubmit,
		Filter:    &filter,
	})
}
