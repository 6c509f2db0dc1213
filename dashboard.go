package logdash

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Dashboard is the query/filter/pagination state controller behind the log browser.
//
// All mutating methods are applied on the dashboard's event loop and return once the state
// change and any fetch it triggers have been issued. Remote results arrive later as events.
type Dashboard interface {
	// Run processes the event loop until the context given to NewDashboard is done
	Run()
	// Done is closed once Run returned. Listeners are never called after that
	Done() <-chan struct{}
	// Subscribe registers a listener for dashboard events and returns its unsubscribe function
	Subscribe(listener EventListener) func()
	// Snapshot returns a consistent copy of the current state
	Snapshot() Snapshot

	// Mount issues the initial count and log fetch
	Mount(ctx context.Context) error
	// Refresh re-issues the count and log fetch for the current filter (user-initiated retry)
	Refresh(ctx context.Context) error

	SetLevel(ctx context.Context, level Level) error
	SetTopic(ctx context.Context, topic Topic) error
	// SetStartDate sets or, given nil, clears the lower time bound
	SetStartDate(ctx context.Context, startDate *time.Time) error
	// SetEndDate sets or, given nil, clears the upper time bound
	SetEndDate(ctx context.Context, endDate *time.Time) error
	// SetPage returns ErrPageOutOfRange and leaves the state untouched when page is outside
	// [1, totalPages] for the currently known count
	SetPage(ctx context.Context, page int) error
	// Navigate moves to the first, previous, next or last page; ErrNavigationDisabled when
	// there is no page to move to
	Navigate(ctx context.Context, navigation Navigation) error

	// OpenDraft starts a fresh, empty log draft
	OpenDraft(ctx context.Context) error
	// UpdateDraft replaces the draft fields, opening the draft if needed
	UpdateDraft(ctx context.Context, draft LogDraft) error
	// CancelDraft discards the draft
	CancelDraft(ctx context.Context) error
	// SubmitDraft validates and posts the open draft. Validation errors are returned
	// directly; the outcome of the post arrives as LOG_ADDED or OPERATION_FAILED.
	// ErrSubmissionInProgress while an earlier post has not resolved yet
	SubmitDraft(ctx context.Context) error
}

type dashboard struct {
	ctx        context.Context
	state      *State
	loop       *eventLoop
	bus        *eventBus
	query      *QueryController
	count      *CountController
	submission *LogSubmission
}

// NewDashboard creates a dashboard on top of logStore. Remote calls use ctx; cancelling it
// stops Run.
func NewDashboard(ctx context.Context, logStore LogStore) Dashboard {
	log.Trace().Msg("Creating new dashboard")

	state := NewState()
	loop := newEventLoop()
	bus := newEventBus()

	d := &dashboard{
		ctx:        ctx,
		state:      state,
		loop:       loop,
		bus:        bus,
		query:      NewQueryController(ctx, logStore, state, loop, bus),
		count:      NewCountController(ctx, logStore, state, loop, bus),
		submission: NewLogSubmission(ctx, logStore, state, loop, bus),
	}

	// registered first, so controllers react before any external listener sees the event
	bus.subscribe(EventListenerFunc(d.onEvent))

	return d
}

func (d *dashboard) onEvent(event Event) {
	switch event.Type {
	case EventFilterChanged:
		d.query.Refresh(*event.Filter)
	case EventLogAdded:
		d.count.RefreshCount()
		d.query.Refresh(d.currentFilter())
	}
}

func (d *dashboard) Run() {
	d.loop.run(d.ctx)
}

func (d *dashboard) Done() <-chan struct{} {
	return d.loop.done()
}

func (d *dashboard) Subscribe(listener EventListener) func() {
	return d.bus.subscribe(listener)
}

func (d *dashboard) Snapshot() Snapshot {
	return d.state.Snapshot()
}

func (d *dashboard) Mount(ctx context.Context) error {
	return d.loop.Call(ctx, func() {
		d.count.RefreshCount()
		d.query.Refresh(d.currentFilter())
	})
}

func (d *dashboard) Refresh(ctx context.Context) error {
	return d.Mount(ctx)
}

func (d *dashboard) SetLevel(ctx context.Context, level Level) error {
	return d.changeFilter(ctx, func(f FilterState) FilterState {
		return f.WithLevel(level)
	})
}

func (d *dashboard) SetTopic(ctx context.Context, topic Topic) error {
	return d.changeFilter(ctx, func(f FilterState) FilterState {
		return f.WithTopic(topic)
	})
}

func (d *dashboard) SetStartDate(ctx context.Context, startDate *time.Time) error {
	return d.changeFilter(ctx, func(f FilterState) FilterState {
		return f.WithStartDate(startDate)
	})
}

func (d *dashboard) SetEndDate(ctx context.Context, endDate *time.Time) error {
	return d.changeFilter(ctx, func(f FilterState) FilterState {
		return f.WithEndDate(endDate)
	})
}

func (d *dashboard) SetPage(ctx context.Context, page int) error {
	var rejected bool
	err := d.loop.Call(ctx, func() {
		rejected = !d.applyPage(page)
	})
	if err != nil {
		return err
	}
	if rejected {
		return ErrPageOutOfRange
	}
	return nil
}

func (d *dashboard) Navigate(ctx context.Context, navigation Navigation) error {
	var disabled bool
	err := d.loop.Call(ctx, func() {
		var window PageWindow
		d.state.read(func(s *State) {
			window = s.window()
		})
		target, ok := window.Target(navigation)
		if !ok {
			disabled = true
			return
		}
		d.applyPage(target)
	})
	if err != nil {
		return err
	}
	if disabled {
		return ErrNavigationDisabled
	}
	return nil
}

func (d *dashboard) OpenDraft(ctx context.Context) error {
	return d.changeDraft(ctx, func(s *State) {
		s.draft = LogDraft{}
		s.draftOpen = true
	})
}

func (d *dashboard) UpdateDraft(ctx context.Context, draft LogDraft) error {
	draft.Timestamp = copyTime(draft.Timestamp)
	return d.changeDraft(ctx, func(s *State) {
		s.draft = draft
		s.draftOpen = true
	})
}

func (d *dashboard) CancelDraft(ctx context.Context) error {
	return d.changeDraft(ctx, func(s *State) {
		s.draft = LogDraft{}
		s.draftOpen = false
	})
}

func (d *dashboard) SubmitDraft(ctx context.Context) error {
	var submitErr error
	err := d.loop.Call(ctx, func() {
		var draft LogDraft
		var open, submitting bool
		d.state.read(func(s *State) {
			draft = s.draft
			open = s.draftOpen
			submitting = s.submitting
		})
		if !open {
			submitErr = ErrNoDraftOpen
			return
		}
		if submitting {
			submitErr = ErrSubmissionInProgress
			return
		}
		submitErr = d.submission.Submit(draft)
	})
	if err != nil {
		return err
	}
	return submitErr
}

// changeFilter applies mutate on the loop and announces the new snapshot when it differs
// from the current one.
func (d *dashboard) changeFilter(ctx context.Context, mutate func(FilterState) FilterState) error {
	return d.loop.Call(ctx, func() {
		var previous, next FilterState
		d.state.mutate(func(s *State) {
			previous = s.filter
			next = mutate(previous)
			s.filter = next
		})
		if next.Equal(previous) {
			return
		}
		d.publishFilterChanged(next)
	})
}

// applyPage runs on the loop. It reports false when the page was rejected.
func (d *dashboard) applyPage(page int) bool {
	var previous, next FilterState
	var accepted bool
	d.state.mutate(func(s *State) {
		previous = s.filter
		next, accepted = previous.WithPage(page, s.window().TotalPages)
		s.filter = next
	})
	if !accepted {
		log.Debug().Int("page", page).Msg("Rejected page change")
		return false
	}
	if !next.Equal(previous) {
		d.publishFilterChanged(next)
	}
	return true
}

func (d *dashboard) publishFilterChanged(filter FilterState) {
	var totalCount int
	d.state.read(func(s *State) {
		totalCount = s.totalCount
	})
	d.bus.publish(Event{
		Type:       EventFilterChanged,
		Filter:     &filter,
		TotalCount: totalCount,
	})
}

func (d *dashboard) changeDraft(ctx context.Context, mutate func(s *State)) error {
	return d.loop.Call(ctx, func() {
		d.state.mutate(mutate)
		d.bus.publish(Event{Type: EventDraftChanged})
	})
}

func (d *dashboard) currentFilter() FilterState {
	var filter FilterState
	d.state.read(func(s *State) {
		filter = s.filter
	})
	return filter
}
