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

package retryconfig

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/retryctl/api/backoff"
	"go.uber.org/retryctl/retrybackoff"
)

// Backoff specifies a backoff strategy. At most one of its sections may be
// set; with none the default strategy, one second five times, is used.
//
//  fibonacci:
//    multiplier: 500ms
//    maxRetries: 10
type Backoff struct {
	Simple      *SimpleBackoff      `config:"simple"`
	Exponential *ExponentialBackoff `config:"exponential"`
	Fibonacci   *FibonacciBackoff   `config:"fibonacci"`
}

// Strategy returns the configured backoff strategy, or an error if the
// configuration is invalid.
func (c Backoff) Strategy() (backoff.Strategy, error) {
	var (
		kinds []string
		build func() (backoff.Strategy, error)
	)
	if c.Simple != nil {
		kinds = append(kinds, retrybackoff.Simple.String())
		build = c.Simple.Strategy
	}
	if c.Exponential != nil {
		kinds = append(kinds, retrybackoff.Exponential.String())
		build = c.Exponential.Strategy
	}
	if c.Fibonacci != nil {
		kinds = append(kinds, retrybackoff.Fibonacci.String())
		build = c.Fibonacci.Strategy
	}

	switch len(kinds) {
	case 0:
		return retrybackoff.DefaultStrategy, nil
	case 1:
		return build()
	default:
		return nil, fmt.Errorf("at most one backoff strategy may be configured, got: %v", strings.Join(kinds, ", "))
	}
}

// SimpleBackoff waits a constant timeout before each retry.
//
//   timeout: 1s
//   maxRetries: 5
type SimpleBackoff struct {
	Timeout    *time.Duration `config:"timeout"`
	MaxRetries *int           `config:"maxRetries"`
}

// Strategy returns a simple backoff strategy.
func (c SimpleBackoff) Strategy() (backoff.Strategy, error) {
	var opts []retrybackoff.Option
	if c.Timeout != nil {
		opts = append(opts, retrybackoff.Timeout(*c.Timeout))
	}
	if c.MaxRetries != nil {
		opts = append(opts, retrybackoff.MaxRetries(*c.MaxRetries))
	}
	return retrybackoff.NewSimple(opts...)
}

// ExponentialBackoff waits base^(attempt+offset) multiples of multiplier
// before each retry.
//
//   base: 2
//   offset: 2
//   multiplier: 100ms
//   maxRetries: 5
type ExponentialBackoff struct {
	Base       *float64       `config:"base"`
	Offset     *float64       `config:"offset"`
	Multiplier *time.Duration `config:"multiplier"`
	MaxRetries *int           `config:"maxRetries"`
}

// Strategy returns an exponential backoff strategy.
func (c ExponentialBackoff) Strategy() (backoff.Strategy, error) {
	var opts []retrybackoff.Option
	if c.Base != nil {
		opts = append(opts, retrybackoff.Base(*c.Base))
	}
	if c.Offset != nil {
		opts = append(opts, retrybackoff.Offset(*c.Offset))
	}
	if c.Multiplier != nil {
		opts = append(opts, retrybackoff.Multiplier(*c.Multiplier))
	}
	if c.MaxRetries != nil {
		opts = append(opts, retrybackoff.MaxRetries(*c.MaxRetries))
	}
	return retrybackoff.NewExponential(opts...)
}

// FibonacciBackoff waits fibonacci-number multiples of multiplier before
// each retry.
//
//   multiplier: 1s
//   maxRetries: 5
type FibonacciBackoff struct {
	Multiplier *time.Duration `config:"multiplier"`
	MaxRetries *int           `config:"maxRetries"`
}

// Strategy returns a fibonacci backoff strategy.
func (c FibonacciBackoff) Strategy() (backoff.Strategy, error) {
	var opts []retrybackoff.Option
	if c.Multiplier != nil {
		opts = append(opts, retrybackoff.Multiplier(*c.Multiplier))
	}
	if c.MaxRetries != nil {
		opts = append(opts, retrybackoff.MaxRetries(*c.MaxRetries))
	}
	return retrybackoff.NewFibonacci(opts...)
}
