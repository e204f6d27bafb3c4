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

// Package retryctl decides when to retry an operation that is observed
// failing, and when to give up.
//
// The operation itself belongs to the caller. The caller reports what it
// sees, failing, succeeded or running, and the Controller answers with a
// Status and the number of retries scheduled so far. On a failure the
// Controller asks a backoff strategy how long to wait, then calls the
// caller's retry function once that time has passed.
//
//   var ctl *retryctl.Controller
//   ctl = retryctl.NewController(func() {
//     ctl.Observe(retryctl.Signal{Running: true})
//     go fetch()
//   }, retryctl.WithBackoffStrategy(strategy))
//   defer ctl.Stop()
//
//   // whenever fetch reports back
//   state := ctl.Observe(retryctl.Signal{Failing: err != nil, Succeeded: err == nil})
//
// Observations are evaluated in priority order. Success always wins and
// resets the retry count. Running comes next. A failure schedules a retry,
// unless one is already pending or the episode was abandoned, in which case
// it is ignored. When the strategy returns backoff.Abandon the Controller
// moves to Abandoned and resets the retry count, so the next failure starts
// a fresh episode.
//
// Strategies live in the retrybackoff package; YAML configuration for them
// lives in retryconfig, and retryfx wires both into an fx application.
package retryctl
