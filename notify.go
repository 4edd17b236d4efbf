package wsbridge

import (
	"context"
	"sync"
)

// Notifier signals that a registered callback has fired. It carries no
// payload. A Notifier may be invoked from any goroutine and any number of
// times; invocations after the first are no-ops.
type Notifier func()

// Once adapts a callback registration point into a one-shot occurrence
// channel. It hands a fresh Notifier to register and returns a channel that
// is closed the first time that notifier fires.
//
// register runs synchronously before Once returns. It should install the
// notifier into the external callback slot and must not block. Callback
// sources are often level-triggered and may invoke the notifier repeatedly;
// only the first invocation is observed and later ones are inert.
//
// Once has no timeout. If the source never fires, the channel is never
// closed; callers that need a deadline select on the returned channel and a
// timer, or use Wait with a context.
func Once(register func(Notifier)) <-chan struct{} {
	fired := make(chan struct{})
	var once sync.Once

	register(func() {
		once.Do(func() {
			close(fired)
		})
	})

	return fired
}

// Wait blocks until a notifier installed by register fires or until ctx is
// done, whichever comes first. It returns nil when the event fired and
// ctx.Err() otherwise.
//
// On cancellation the notifier stays installed in the external slot. If the
// source outlives the wait, clearing the registration is the caller's job.
func Wait(ctx context.Context, register func(Notifier)) error {
	select {
	case <-Once(register):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
