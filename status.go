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

import "fmt"

// Status is the phase of a Controller's current failure episode.
type Status int

const (
	// Idle is the status of a Controller that has not observed any signal.
	Idle Status = iota
	// Running means the caller reported that the operation is in flight.
	Running
	// Backoff means a retry is scheduled and waiting for its delay to
	// elapse.
	Backoff
	// Abandoned means the backoff strategy gave up on the episode. The next
	// failure starts a new episode from attempt zero.
	Abandoned
	// Succeeded means the caller reported success.
	Succeeded
)

var _statusNames = [...]string{
	Idle:      "idle",
	Running:   "running",
	Backoff:   "backoff",
	Abandoned: "abandoned",
	Succeeded: "succeeded",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(_statusNames) {
		return _statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(_statusNames) {
		return nil, fmt.Errorf("unknown status: %d", int(s))
	}
	return []byte(_statusNames[s]), nil
}
