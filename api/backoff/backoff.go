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

package backoff

import "time"

//go:generate mockgen -destination=backofftest/backofftest.go -package=backofftest go.uber.org/retryctl/api/backoff Strategy

// Abandon is the duration a Strategy returns when no further retries should
// be attempted.
// Callers must treat any negative duration as Abandon.
const Abandon time.Duration = -1

// Strategy is an algorithm for determining how long to wait after a number
// of retries have already been scheduled.
//
// Strategies are pure: for a given configuration the same attempt number
// always yields the same duration. They hold no mutable state and are
// therefore safe to share between controllers and goroutines.
//
// Attempts are zero-based. A Strategy returns a non-negative wait while
// attempts is below its retry limit, and Abandon once the limit is reached.
type Strategy interface {
	Duration(attempts uint) time.Duration
}

// StrategyFunc adapts a plain function into a Strategy.
type StrategyFunc func(attempts uint) time.Duration

var _ Strategy = StrategyFunc(nil)

// Duration calls f(attempts).
func (f StrategyFunc) Duration(attempts uint) time.Duration {
	return f(attempts)
}
