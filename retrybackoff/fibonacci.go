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
	"math"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/retryctl/api/backoff"
)

// _fibonacci is precomputed; past its end the last entry repeats. With the
// default multiplier the last entry is already over an hour.
var _fibonacci = [...]int64{
	1, 2, 3, 5, 8, 13, 21, 34, 55, 89,
	144, 233, 377, 610, 987, 1597, 2584, 4181,
}

var _maxFibonacci = _fibonacci[len(_fibonacci)-1]

// FibonacciStrategy waits fibonacci-number multiples of a multiplier before
// each retry: 1, 2, 3, 5, 8 and so on up to 4181, where it saturates.
type FibonacciStrategy struct {
	multiplier time.Duration
	maxRetries int
}

var _ backoff.Strategy = (*FibonacciStrategy)(nil)

// NewFibonacci returns a fibonacci strategy.
//
// Accepts the Multiplier (default 1s) and MaxRetries options.
func NewFibonacci(opts ...Option) (*FibonacciStrategy, error) {
	o := buildOptions(options{multiplier: time.Second}, opts)

	err := o.validate(Fibonacci, fieldMultiplier|fieldMaxRetries)
	if o.multiplier > time.Duration(math.MaxInt64/_maxFibonacci) {
		err = multierr.Append(err, fmt.Errorf("invalid multiplier for %v backoff, need at most %v", Fibonacci, time.Duration(math.MaxInt64/_maxFibonacci)))
	}
	if err != nil {
		return nil, err
	}

	return &FibonacciStrategy{multiplier: o.multiplier, maxRetries: o.maxRetries}, nil
}

// Duration returns the attempts-th fibonacci number times the multiplier
// while attempts is below the retry limit, and backoff.Abandon after.
func (f *FibonacciStrategy) Duration(attempts uint) time.Duration {
	if attempts >= uint(f.maxRetries) {
		return backoff.Abandon
	}
	n := _maxFibonacci
	if attempts < uint(len(_fibonacci)) {
		n = _fibonacci[attempts]
	}
	return time.Duration(n) * f.multiplier
}

// Kind returns Fibonacci.
func (f *FibonacciStrategy) Kind() Kind { return Fibonacci }

// MaxRetries returns the retry limit.
func (f *FibonacciStrategy) MaxRetries() int { return f.maxRetries }

func (f *FibonacciStrategy) String() string {
	return fmt.Sprintf("fibonacci(multiplier=%v, maxRetries=%d)", f.multiplier, f.maxRetries)
}
