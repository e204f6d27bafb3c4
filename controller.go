// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package retryctl

import (
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/retryctl/api/backoff"
	"go.uber.org/retryctl/internal/clock"
)

// Signal is one observation of the operation being retried.
//
// Flags are evaluated in priority order: Succeeded wins over Running, which
// wins over Failing.
type Signal struct {
	Failing   bool
	Succeeded bool
	Running   bool
}

// State is the status of a Controller and the number of retries scheduled
// in the current failure episode.
type State struct {
	RetryCount uint
	Status     Status
}

// Controller decides when to retry an operation whose outcome is reported
// to it through Observe.
//
// On a failure the controller consults its backoff strategy and, unless the
// strategy abandons, schedules the retry function to run once the returned
// delay has elapsed. At most one retry is pending at any time. The retry
// function is expected to restart the operation and report it as Running.
//
// Stop must be called when the controller is no longer observed so that no
// retry fires after it is gone.
type Controller struct {
	retry    func()
	strategy backoff.Strategy
	clock    clock.Clock
	observer *observer

	mu    sync.Mutex
	state State
	timer clock.Timer // non-nil iff a retry is pending
	gen   uint64      // identifies the most recently scheduled retry

	stopped atomic.Bool
}

// NewController builds a Controller that calls retry after each backoff
// delay. The retry function is invoked on the clock's goroutine without any
// controller lock held, so it may call Observe.
func NewController(retry func(), opts ...ControllerOption) *Controller {
	if retry == nil {
		panic("retryctl.NewController expects a retry function")
	}

	o := newControllerOptions(opts)
	return &Controller{
		retry:    retry,
		strategy: o.strategy,
		clock:    o.clock,
		observer: newObserver(o),
	}
}

// Observe records a new observation and returns the resulting state.
//
// A Succeeded or Running observation drops any retry still pending, so the
// retry function is not called for it.
//
// Once the controller is stopped, Observe returns the last state unchanged.
func (c *Controller) Observe(s Signal) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped.Load() {
		return c.state
	}

	switch {
	case s.Succeeded:
		c.cancelLocked("succeeded")
		if c.state.Status != Succeeded {
			c.observer.succeeded(c.state.RetryCount)
		}
		c.state = State{Status: Succeeded}
	case s.Running:
		c.cancelLocked("running")
		c.state.Status = Running
	case s.Failing:
		c.failLocked()
	}
	return c.state
}

// failLocked enters backoff or abandons the episode. A failure observed
// while a retry is pending or after the episode was abandoned is ignored.
func (c *Controller) failLocked() {
	if c.state.Status == Backoff || c.state.Status == Abandoned {
		c.observer.ignored(c.state.Status)
		return
	}

	attempt := c.state.RetryCount
	delay := c.strategy.Duration(attempt)
	if delay < 0 {
		c.state = State{Status: Abandoned}
		c.observer.abandoned(attempt)
		return
	}

	c.state = State{RetryCount: attempt + 1, Status: Backoff}
	c.gen++
	gen := c.gen
	c.timer = c.clock.AfterFunc(delay, func() { c.fire(gen) })
	c.observer.scheduled(c.state.RetryCount, delay)
}

// fire runs when the backoff delay for retry gen has elapsed.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.timer == nil || c.gen != gen {
		// Canceled, or superseded by a later retry, after the timer had
		// already fired.
		c.mu.Unlock()
		return
	}
	c.timer = nil
	attempt := c.state.RetryCount
	c.mu.Unlock()

	c.observer.fired(attempt)
	c.retry()
}

func (c *Controller) cancelLocked(reason string) bool {
	if c.timer == nil {
		return false
	}
	c.timer.Stop()
	c.timer = nil
	c.observer.canceled(reason, c.state.RetryCount)
	return true
}

// State returns the current state without recording an observation.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether a retry is scheduled and has not yet fired.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Stop cancels any pending retry and makes the controller ignore further
// observations. It is safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopped.CAS(false, true) {
		return
	}
	hadPending := c.cancelLocked("stopped")
	c.observer.stopped(c.state, hadPending)
}

// Stopped reports whether Stop has been called.
func (c *Controller) Stopped() bool {
	return c.stopped.Load()
}
