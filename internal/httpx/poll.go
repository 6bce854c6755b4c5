package httpx

import (
	"context"
	"errors"
	"time"
)

// ErrWaitExceeded is returned by Waiter.Wait once the maximum total
// wait has elapsed.
var ErrWaitExceeded = errors.New("httpx: maximum wait exceeded")

// Waiter paces polling of an asynchronous server-side job: a fixed
// interval between attempts, bounded by a maximum total wait measured
// from construction.
type Waiter struct {
	Interval time.Duration
	MaxWait  time.Duration

	deadline time.Time
}

// NewWaiter returns a Waiter initialized with the supplied parameters.
func NewWaiter(interval, maxWait time.Duration) *Waiter {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if maxWait <= 0 {
		maxWait = 30 * time.Second
	}
	return &Waiter{
		Interval: interval,
		MaxWait:  maxWait,
		deadline: time.Now().Add(maxWait),
	}
}

// Wait sleeps for one interval. It fails with ErrWaitExceeded when the
// deadline has passed, or with the context error on cancellation.
func (w *Waiter) Wait(ctx context.Context) error {
	if !time.Now().Before(w.deadline) {
		return ErrWaitExceeded
	}
	timer := time.NewTimer(w.Interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
