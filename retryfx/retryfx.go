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

// Package retryfx provides retryctl controllers to an fx application.
//
// The module provides the backoff.Strategy described by an optional
// retryconfig.Backoff, and a Factory that builds controllers sharing that
// strategy, the application's logger and its metrics scope. Every
// controller built by the Factory is stopped when the application stops.
package retryfx

import (
	"context"
	"sync"

	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/retryctl"
	"go.uber.org/retryctl/api/backoff"
	"go.uber.org/retryctl/retryconfig"
	"go.uber.org/zap"
)

// Module provides a backoff.Strategy and a *Factory.
var Module = fx.Options(
	fx.Provide(NewStrategy),
	fx.Provide(NewFactory),
)

// StrategyParams defines the dependencies of NewStrategy.
type StrategyParams struct {
	fx.In

	Config retryconfig.Backoff `optional:"true"`
}

// StrategyResult defines the values produced by NewStrategy.
type StrategyResult struct {
	fx.Out

	Strategy backoff.Strategy
}

// NewStrategy builds the configured backoff strategy, or the default one
// when no configuration is provided.
func NewStrategy(p StrategyParams) (StrategyResult, error) {
	s, err := p.Config.Strategy()
	if err != nil {
		return StrategyResult{}, err
	}
	return StrategyResult{Strategy: s}, nil
}

// FactoryParams defines the dependencies of NewFactory.
type FactoryParams struct {
	fx.In

	Strategy  backoff.Strategy
	Lifecycle fx.Lifecycle
	Logger    *zap.Logger `optional:"true"`
	Scope     tally.Scope `optional:"true"`
}

// FactoryResult defines the values produced by NewFactory.
type FactoryResult struct {
	fx.Out

	Factory *Factory
}

// NewFactory builds a Factory and registers a hook that stops its
// controllers when the application stops.
func NewFactory(p FactoryParams) (FactoryResult, error) {
	f := &Factory{
		strategy: p.Strategy,
		logger:   p.Logger,
		scope:    p.Scope,
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			f.Stop()
			return nil
		},
	})
	return FactoryResult{Factory: f}, nil
}

// Factory builds controllers with shared dependencies and keeps track of
// them so they can be stopped together.
type Factory struct {
	strategy backoff.Strategy
	logger   *zap.Logger
	scope    tally.Scope

	mu          sync.Mutex
	controllers []*retryctl.Controller
	stopped     bool
}

// New builds a named controller that calls retry after each backoff delay.
// Additional options override the shared ones.
//
// Controllers built after the Factory was stopped are returned already
// stopped. Controllers stopped by the caller are released on the next call
// to New.
func (f *Factory) New(name string, retry func(), opts ...retryctl.ControllerOption) *retryctl.Controller {
	opts = append([]retryctl.ControllerOption{
		retryctl.WithName(name),
		retryctl.WithBackoffStrategy(f.strategy),
		retryctl.WithLogger(f.logger),
		retryctl.WithScope(f.scope),
	}, opts...)
	c := retryctl.NewController(retry, opts...)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		c.Stop()
		return c
	}
	f.controllers = append(f.pruneLocked(), c)
	return c
}

// pruneLocked drops controllers that were already stopped.
func (f *Factory) pruneLocked() []*retryctl.Controller {
	live := f.controllers[:0]
	for _, c := range f.controllers {
		if !c.Stopped() {
			live = append(live, c)
		}
	}
	for i := len(live); i < len(f.controllers); i++ {
		f.controllers[i] = nil
	}
	return live
}

// Stop stops every controller built so far.
func (f *Factory) Stop() {
	f.mu.Lock()
	controllers := f.controllers
	f.controllers = nil
	f.stopped = true
	f.mu.Unlock()

	for _, c := range controllers {
		c.Stop()
	}
}
