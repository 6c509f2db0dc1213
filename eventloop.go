package logdash

import (
	"context"

	"github.com/blutspende/logdash/utils"
	"github.com/rs/zerolog/log"
)

// dispatcher hands work to the goroutine that owns dashboard state.
type dispatcher interface {
	Post(fn func())
}

type eventLoop struct {
	mailbox *utils.ConcurrentQueue[func()]
	stopped chan struct{}
}

func newEventLoop() *eventLoop {
	return &eventLoop{
		mailbox: utils.NewConcurrentQueue[func()](),
		stopped: make(chan struct{}),
	}
}

// Post enqueues fn without waiting. Safe from any goroutine.
func (l *eventLoop) Post(fn func()) {
	l.mailbox.Enqueue(fn)
}

// Call enqueues fn and waits until the loop ran it or ctx ended. fn still runs later when
// ctx ends first. Must not be called from the loop itself.
func (l *eventLoop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run executes posted work in order until ctx is done. It must be started once.
func (l *eventLoop) run(ctx context.Context) {
	defer close(l.stopped)
	log.Trace().Msg("Dashboard event loop started")
	for {
		fn, ok := l.mailbox.Dequeue(ctx)
		if !ok {
			log.Trace().Int("pending", l.mailbox.Len()).Msg("Dashboard event loop stopped")
			return
		}
		l.execute(fn)
	}
}

// done is closed after run returned; no listener is called afterwards.
func (l *eventLoop) done() <-chan struct{} {
	return l.stopped
}

func (l *eventLoop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Stack().Msg("recovered panic in dashboard event loop")
		}
	}()
	fn()
}
