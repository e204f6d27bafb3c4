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
	"github.com/uber-go/tally"
	"go.uber.org/retryctl/api/backoff"
	"go.uber.org/retryctl/internal/clock"
	"go.uber.org/retryctl/retrybackoff"
	"go.uber.org/zap"
)

// ControllerOption customizes a Controller.
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	name     string
	strategy backoff.Strategy
	logger   *zap.Logger
	scope    tally.Scope
	clock    clock.Clock
}

func newControllerOptions(opts []ControllerOption) controllerOptions {
	o := controllerOptions{
		strategy: retrybackoff.DefaultStrategy,
		logger:   zap.NewNop(),
		scope:    tally.NoopScope,
		clock:    clock.NewReal(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBackoffStrategy sets the strategy consulted on every failure.
// Defaults to retrybackoff.DefaultStrategy: one second, five times.
func WithBackoffStrategy(s backoff.Strategy) ControllerOption {
	return func(o *controllerOptions) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithLogger sets the logger for the controller. Defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(o *controllerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithScope sets the metrics scope for the controller. Defaults to
// tally.NoopScope.
func WithScope(s tally.Scope) ControllerOption {
	return func(o *controllerOptions) {
		if s != nil {
			o.scope = s
		}
	}
}

// WithName names the controller in its logs and metrics.
func WithName(name string) ControllerOption {
	return func(o *controllerOptions) {
		o.name = name
	}
}

// withClock replaces the clock that schedules retries. Tests only.
func withClock(c clock.Clock) ControllerOption {
	return func(o *controllerOptions) {
		o.clock = c
	}
}
