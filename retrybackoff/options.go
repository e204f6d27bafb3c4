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
)

const _defaultMaxRetries = 5

// optionField records which options were explicitly applied so that
// constructors can reject options meant for another strategy.
type optionField uint8

const (
	fieldTimeout optionField = 1 << iota
	fieldBase
	fieldOffset
	fieldMultiplier
	fieldMaxRetries
)

var _fieldNames = []struct {
	field optionField
	name  string
}{
	{fieldTimeout, "Timeout"},
	{fieldBase, "Base"},
	{fieldOffset, "Offset"},
	{fieldMultiplier, "Multiplier"},
	{fieldMaxRetries, "MaxRetries"},
}

// Option configures a backoff strategy.
//
// Not every option applies to every strategy; constructors fail when given
// an option their strategy does not understand.
type Option func(*options)

type options struct {
	timeout    time.Duration
	base       float64
	offset     float64
	multiplier time.Duration
	maxRetries int

	set optionField
}

// Timeout sets the constant wait of a Simple strategy.
func Timeout(t time.Duration) Option {
	return func(o *options) {
		o.timeout = t
		o.set |= fieldTimeout
	}
}

// Base sets the base of the power computed by an Exponential strategy.
func Base(b float64) Option {
	return func(o *options) {
		o.base = b
		o.set |= fieldBase
	}
}

// Offset is added to the attempt number before it is used as the exponent
// of an Exponential strategy, so that the first wait is not a single
// multiplier.
func Offset(off float64) Option {
	return func(o *options) {
		o.offset = off
		o.set |= fieldOffset
	}
}

// Multiplier scales the sequence produced by Exponential and Fibonacci
// strategies.
func Multiplier(t time.Duration) Option {
	return func(o *options) {
		o.multiplier = t
		o.set |= fieldMultiplier
	}
}

// MaxRetries sets the number of retries after which a strategy abandons.
// Defaults to 5.
func MaxRetries(n int) Option {
	return func(o *options) {
		o.maxRetries = n
		o.set |= fieldMaxRetries
	}
}

func buildOptions(defaults options, opts []Option) options {
	o := defaults
	o.maxRetries = _defaultMaxRetries
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validate checks the fields shared by every strategy and rejects any
// option outside of allowed.
func (o options) validate(kind Kind, allowed optionField) (err error) {
	for _, f := range _fieldNames {
		if o.set&f.field != 0 && allowed&f.field == 0 {
			err = multierr.Append(err, fmt.Errorf("option %v does not apply to %v backoff", f.name, kind))
		}
	}
	if o.maxRetries < 0 {
		err = multierr.Append(err, fmt.Errorf("invalid max retries for %v backoff, need greater than or equal to zero", kind))
	}
	if o.multiplier < 0 || (allowed&fieldMultiplier != 0 && o.multiplier == 0) {
		err = multierr.Append(err, fmt.Errorf("invalid multiplier for %v backoff, need greater than zero", kind))
	}
	if math.IsNaN(o.offset) || math.IsInf(o.offset, 0) {
		err = multierr.Append(err, fmt.Errorf("invalid offset for %v backoff, need a finite number", kind))
	}
	return err
}
