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
	"fmt"
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/retryctl/api/backoff"
	"go.uber.org/retryctl/internal/sampledlogger"
	"go.uber.org/zap"
)

const _ignoredLogInterval = time.Minute

// observer logs and emits metrics for controller transitions.
type observer struct {
	logger   *zap.Logger
	sampled  *sampledlogger.SampledLogger
	strategy zap.Field

	scheduledCounter tally.Counter
	firedCounter     tally.Counter
	abandonedCounter tally.Counter
	succeededCounter tally.Counter
	canceledCounter  tally.Counter
	ignoredCounter   tally.Counter
	attemptGauge     tally.Gauge
	delayTimer       tally.Timer
}

func newObserver(o controllerOptions) *observer {
	logger, scope := o.logger, o.scope
	if o.name != "" {
		logger = logger.With(zap.String("controller", o.name))
		scope = scope.Tagged(map[string]string{"controller": o.name})
	}

	return &observer{
		logger:   logger,
		sampled:  sampledlogger.NewSampledLogger(_ignoredLogInterval, logger, o.clock),
		strategy: strategyField(o.strategy),

		scheduledCounter: scope.Counter("retry_scheduled"),
		firedCounter:     scope.Counter("retry_fired"),
		abandonedCounter: scope.Counter("retry_abandoned"),
		succeededCounter: scope.Counter("retry_succeeded"),
		canceledCounter:  scope.Counter("retry_canceled"),
		ignoredCounter:   scope.Counter("retry_ignored"),
		attemptGauge:     scope.Gauge("retry_attempt"),
		delayTimer:       scope.Timer("retry_delay"),
	}
}

func strategyField(s backoff.Strategy) zap.Field {
	if str, ok := s.(fmt.Stringer); ok {
		return zap.Stringer("strategy", str)
	}
	return zap.String("strategy", fmt.Sprintf("%T", s))
}

func (o *observer) scheduled(attempt uint, delay time.Duration) {
	o.scheduledCounter.Inc(1)
	o.attemptGauge.Update(float64(attempt))
	o.delayTimer.Record(delay)
	o.logger.Debug("scheduled retry",
		zap.Uint("attempt", attempt),
		zap.Duration("delay", delay),
		o.strategy)
}

func (o *observer) fired(attempt uint) {
	o.firedCounter.Inc(1)
	o.logger.Debug("retrying", zap.Uint("attempt", attempt))
}

func (o *observer) abandoned(attempts uint) {
	o.abandonedCounter.Inc(1)
	o.attemptGauge.Update(0)
	o.logger.Info("abandoned retries",
		zap.Uint("attempts", attempts),
		o.strategy)
}

func (o *observer) succeeded(attempts uint) {
	o.succeededCounter.Inc(1)
	o.attemptGauge.Update(0)
	o.logger.Debug("succeeded", zap.Uint("attempts", attempts))
}

func (o *observer) canceled(reason string, attempt uint) {
	o.canceledCounter.Inc(1)
	o.logger.Debug("canceled pending retry",
		zap.String("reason", reason),
		zap.Uint("attempt", attempt))
}

func (o *observer) ignored(status Status) {
	o.ignoredCounter.Inc(1)
	o.sampled.Debug("ignored failure", zap.Stringer("status", status))
}

func (o *observer) stopped(s State, hadPending bool) {
	if hadPending {
		o.logger.Info("stopped controller with a pending retry",
			zap.Stringer("status", s.Status),
			zap.Uint("attempt", s.RetryCount))
		return
	}
	o.logger.Debug("stopped controller", zap.Stringer("status", s.Status))
}
