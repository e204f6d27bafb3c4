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

package retrybackoff

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/retryctl/api/backoff"
)

// SimpleStrategy waits a constant timeout before each of a fixed number of
// retries.
type SimpleStrategy struct {
	timeout    time.Duration
	maxRetries int
}

var _ backoff.Strategy = (*SimpleStrategy)(nil)

// NewSimple returns a strategy that waits the configured Timeout (default
// 1s) before each of MaxRetries retries.
//
// Accepts the Timeout and MaxRetries options.
func NewSimple(opts ...Option) (*SimpleStrategy, error) {
	o := buildOptions(options{timeout: time.Second}, opts)
	err := o.validate(Simple, fieldTimeout|fieldMaxRetries)
	if o.timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("invalid timeout for %v backoff, need greater than zero", Simple))
	}
	if err != nil {
		return nil, err
	}
	return &SimpleStrategy{timeout: o.timeout, maxRetries: o.maxRetries}, nil
}

// Duration returns the configured timeout while attempts is below the retry
// limit, and backoff.Abandon after.
func (s *SimpleStrategy) Duration(attempts uint) time.Duration {
	if attempts < uint(s.maxRetries) {
		return s.timeout
	}
	return backoff.Abandon
}

// Kind returns Simple.
func (s *SimpleStrategy) Kind() Kind { return Simple }

// MaxRetries returns the retry limit.
func (s *SimpleStrategy) MaxRetries() int { return s.maxRetries }

func (s *SimpleStrategy) String() string {
	return fmt.Sprintf("simple(timeout=%v, maxRetries=%d)", s.timeout, s.maxRetries)
}
