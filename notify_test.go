package wsbridge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestOnce_ResolvesOnFirstFire(t *testing.T) {
	var fire Notifier
	done := Once(func(n Notifier) { fire = n })

	select {
	case <-done:
		t.Fatal("resolved before the source fired")
	default:
	}

	fire()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("did not resolve after fire")
	}

	// A resolved notification stays resolved.
	select {
	case <-done:
	default:
		t.Fatal("second receive blocked after resolution")
	}
}

func TestOnce_NeverFiredNeverResolves(t *testing.T) {
	done := Once(func(Notifier) {})

	select {
	case <-done:
		t.Fatal("resolved without a fire")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOnce_RepeatedFiresAreNoOps(t *testing.T) {
	var fire Notifier
	done := Once(func(n Notifier) { fire = n })

	// Every fire past the first must be absorbed; a second close of the
	// channel would panic.
	for i := 0; i < 5; i++ {
		fire()
	}

	select {
	case <-done:
	default:
		t.Fatal("not resolved after repeated fires")
	}
}

// TestOnce_ConcurrentFiresAreSafe verifies that racing sources cannot
// resolve the same notification twice: the first fire closes the channel
// and the rest are absorbed without panicking.
func TestOnce_ConcurrentFiresAreSafe(t *testing.T) {
	var fire Notifier
	done := Once(func(n Notifier) { fire = n })

	const goroutines = 8
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			<-start
			fire()
		}()
	}

	close(start)
	wg.Wait()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("not resolved after concurrent fires")
	}
}

func TestOnce_FireDuringRegistration(t *testing.T) {
	// A level-triggered source may invoke the callback while it is being
	// attached. The channel must already be resolved when Once returns.
	done := Once(func(n Notifier) { n() })

	select {
	case <-done:
	default:
		t.Fatal("fire during registration did not resolve")
	}
}

func TestWait_ReturnsNilOnFire(t *testing.T) {
	err := Wait(context.Background(), func(n Notifier) {
		time.AfterFunc(10*time.Millisecond, n)
	})
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}

func TestWait_ReturnsContextErrOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, func(Notifier) {})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want %v", err, context.Canceled)
	}
}

func TestWait_LateFireAfterCancelIsSafe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var fire Notifier
	err := Wait(ctx, func(n Notifier) { fire = n })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want %v", err, context.Canceled)
	}

	// The registration outlives the abandoned wait; firing it later must
	// not panic.
	fire()
	fire()
}
