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

// Package sampledlogger wraps a zap.Logger so that a noisy message is
// written at most once per interval.
package sampledlogger

import (
	"math"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/retryctl/internal/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _never = math.MinInt64

// SampledLogger drops every message logged less than an interval after the
// previous written one. The number of dropped messages is attached to the
// next written one as the "suppressed" field.
type SampledLogger struct {
	logger      *zap.Logger
	clock       clock.Clock
	logInterval time.Duration

	// UnixNano of the last written message, _never until the first one.
	lastLogTime atomic.Int64
	suppressed  atomic.Int64
}

// NewSampledLogger creates a SampledLogger that measures the interval
// against the given clock.
func NewSampledLogger(interval time.Duration, logger *zap.Logger, clk clock.Clock) *SampledLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.NewReal()
	}
	sl := &SampledLogger{
		logger:      logger,
		clock:       clk,
		logInterval: interval,
	}
	sl.lastLogTime.Store(_never)
	return sl
}

func (sl *SampledLogger) log(level zapcore.Level, msg string, fields ...zap.Field) {
	ce := sl.logger.Check(level, msg)
	if ce == nil {
		return
	}

	now := sl.clock.Now().UnixNano()
	last := sl.lastLogTime.Load()
	if last != _never && time.Duration(now-last) <= sl.logInterval {
		sl.suppressed.Inc()
		return
	}
	if !sl.lastLogTime.CAS(last, now) {
		// Another goroutine wrote this interval's message.
		sl.suppressed.Inc()
		return
	}

	if n := sl.suppressed.Swap(0); n > 0 {
		fields = append(fields, zap.Int64("suppressed", n))
	}
	ce.Write(fields...)
}

// Debug logs a debug-level message with rate limiting.
func (sl *SampledLogger) Debug(msg string, fields ...zap.Field) {
	sl.log(zapcore.DebugLevel, msg, fields...)
}
