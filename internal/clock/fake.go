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

package clock

import (
	"container/heap"
	"sync"
	"time"
)

// FakeClock is a Clock whose time only moves when told to.
//
// Callbacks registered with AfterFunc run synchronously, in deadline order,
// on the goroutine that calls Add or Set. A callback may schedule or stop
// other timers; any that fall due before the target time run in the same
// call.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers timers
}

var _ Clock = (*FakeClock)(nil)

// NewFake returns a FakeClock starting at the Unix epoch.
func NewFake() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

// Now returns the fake current time.
func (fc *FakeClock) Now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.now
}

// AfterFunc schedules f to run once the clock has advanced by d.
// Timers with a non-positive duration run on the next Add or Set.
func (fc *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	return fc.FakeAfterFunc(d, f)
}

// FakeAfterFunc is AfterFunc returning the concrete FakeTimer.
func (fc *FakeClock) FakeAfterFunc(d time.Duration, f func()) *FakeTimer {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.seq++
	t := &FakeTimer{
		clock: fc,
		f:     f,
		time:  fc.now.Add(d),
		seq:   fc.seq,
	}
	heap.Push(&fc.timers, t)
	return t
}

// Add advances the clock by d, running every callback that falls due.
func (fc *FakeClock) Add(d time.Duration) {
	fc.mu.Lock()
	end := fc.now.Add(d)
	fc.mu.Unlock()
	fc.advance(end)
}

// Set advances the clock to end, running every callback that falls due.
// The clock never moves backwards.
func (fc *FakeClock) Set(end time.Time) {
	fc.advance(end)
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (fc *FakeClock) Pending() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.timers)
}

func (fc *FakeClock) advance(end time.Time) {
	for {
		fc.mu.Lock()
		if len(fc.timers) == 0 || fc.timers[0].time.After(end) {
			if fc.now.Before(end) {
				fc.now = end
			}
			fc.mu.Unlock()
			return
		}

		t := heap.Pop(&fc.timers).(*FakeTimer)
		if fc.now.Before(t.time) {
			fc.now = t.time
		}
		fc.mu.Unlock()

		// Run without the lock so that f may use the clock.
		t.f()
	}
}

// FakeTimer is a callback scheduled on a FakeClock.
type FakeTimer struct {
	clock *FakeClock
	f     func()
	time  time.Time
	seq   uint64
	index int
}

var _ Timer = (*FakeTimer)(nil)

// Stop removes the timer from its clock. It returns false if the timer
// already fired or was already stopped.
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.timers, t.index)
	return true
}
