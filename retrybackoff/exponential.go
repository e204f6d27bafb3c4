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

// ExponentialStrategy waits base^(attempts+offset) multiples of a
// multiplier before each retry.
//
// With the defaults it produces 400ms, 800ms, 1.6s, 3.2s and so on. Growth
// stays exponential whatever the base; a smaller base or offset only delays
// it.
type ExponentialStrategy struct {
	base       float64
	offset     float64
	multiplier time.Duration
	maxRetries int
}

var _ backoff.Strategy = (*ExponentialStrategy)(nil)

// NewExponential returns an exponential strategy.
//
// Accepts the Base (default 2), Offset (default 2), Multiplier (default
// 100ms) and MaxRetries options.
func NewExponential(opts ...Option) (*ExponentialStrategy, error) {
	o := buildOptions(options{
		base:       2,
		offset:     2,
		multiplier: 100 * time.Millisecond,
	}, opts)

	err := o.validate(Exponential, fieldBase|fieldOffset|fieldMultiplier|fieldMaxRetries)
	if !(o.base > 0) || math.IsInf(o.base, 0) {
		err = multierr.Append(err, fmt.Errorf("invalid base for %v backoff, need a finite number greater than zero", Exponential))
	}
	if err != nil {
		return nil, err
	}

	return &ExponentialStrategy{
		base:       o.base,
		offset:     o.offset,
		multiplier: o.multiplier,
		maxRetries: o.maxRetries,
	}, nil
}

// Duration returns base^(attempts+offset) * multiplier while attempts is
// below the retry limit, and backoff.Abandon after.
// Results too large for a time.Duration are clamped to the largest one.
func (e *ExponentialStrategy) Duration(attempts uint) time.Duration {
	if attempts >= uint(e.maxRetries) {
		return backoff.Abandon
	}

	d := math.Pow(e.base, float64(attempts)+e.offset) * float64(e.multiplier)
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(math.Round(d))
}

// Kind returns Exponential.
func (e *ExponentialStrategy) Kind() Kind { return Exponential }

// MaxRetries returns the retry limit.
func (e *ExponentialStrategy) MaxRetries() int { return e.maxRetries }

func (e *ExponentialStrategy) String() string {
	return fmt.Sprintf("exponential(base=%v, offset=%v, multiplier=%v, maxRetries=%d)",
		e.base, e.offset, e.multiplier, e.maxRetries)
}
