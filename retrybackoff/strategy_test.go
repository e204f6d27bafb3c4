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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/retryctl/api/backoff"
)

type backoffAttempt struct {
	giveAttempt uint
	wantBackoff time.Duration
}

func assertAttempts(t *testing.T, s backoff.Strategy, attempts []backoffAttempt) {
	t.Helper()
	for _, a := range attempts {
		assert.Equal(t, a.wantBackoff, s.Duration(a.giveAttempt), "attempt %d", a.giveAttempt)
	}
}

func TestSimple(t *testing.T) {
	tests := []struct {
		msg        string
		giveOpts   []Option
		attempts   []backoffAttempt
		wantErrors []string
	}{
		{
			msg:      "four retries",
			giveOpts: []Option{Timeout(time.Second), MaxRetries(4)},
			attempts: []backoffAttempt{
				{0, time.Second},
				{1, time.Second},
				{2, time.Second},
				{3, time.Second},
				{4, backoff.Abandon},
				{5, backoff.Abandon},
				{7, backoff.Abandon},
				{1000, backoff.Abandon},
			},
		},
		{
			msg: "defaults",
			attempts: []backoffAttempt{
				{0, time.Second},
				{4, time.Second},
				{5, backoff.Abandon},
			},
		},
		{
			msg:      "zero retries abandons immediately",
			giveOpts: []Option{Timeout(time.Millisecond), MaxRetries(0)},
			attempts: []backoffAttempt{
				{0, backoff.Abandon},
				{1, backoff.Abandon},
			},
		},
		{
			msg:      "invalid timeout",
			giveOpts: []Option{Timeout(0)},
			wantErrors: []string{
				"invalid timeout for simple backoff, need greater than zero",
			},
		},
		{
			msg:      "invalid max retries and timeout",
			giveOpts: []Option{Timeout(-time.Second), MaxRetries(-1)},
			wantErrors: []string{
				"invalid max retries for simple backoff, need greater than or equal to zero",
				"invalid timeout for simple backoff, need greater than zero",
			},
		},
		{
			msg:      "foreign option",
			giveOpts: []Option{Base(3)},
			wantErrors: []string{
				"option Base does not apply to simple backoff",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			s, err := NewSimple(tt.giveOpts...)
			if len(tt.wantErrors) > 0 {
				require.Error(t, err)
				for _, e := range tt.wantErrors {
					assert.Contains(t, err.Error(), e)
				}
				assert.Len(t, multierr.Errors(err), len(tt.wantErrors))
				return
			}
			require.NoError(t, err)
			assertAttempts(t, s, tt.attempts)
		})
	}
}

func TestExponential(t *testing.T) {
	tests := []struct {
		msg        string
		giveOpts   []Option
		attempts   []backoffAttempt
		wantErrors []string
	}{
		{
			msg:      "defaults with four retries",
			giveOpts: []Option{MaxRetries(4)},
			attempts: []backoffAttempt{
				{0, 400 * time.Millisecond},
				{1, 800 * time.Millisecond},
				{2, 1600 * time.Millisecond},
				{3, 3200 * time.Millisecond},
				{4, backoff.Abandon},
				{5, backoff.Abandon},
				{1000, backoff.Abandon},
			},
		},
		{
			msg:      "defaults with ten retries",
			giveOpts: []Option{MaxRetries(10)},
			attempts: []backoffAttempt{
				{4, 6400 * time.Millisecond},
				{5, 12800 * time.Millisecond},
				{6, 25600 * time.Millisecond},
				{7, 51200 * time.Millisecond},
				{8, 102400 * time.Millisecond},
				{9, 204800 * time.Millisecond},
				{10, backoff.Abandon},
			},
		},
		{
			msg: "custom base offset and multiplier",
			giveOpts: []Option{
				MaxRetries(10),
				Multiplier(132 * time.Millisecond),
				Base(10),
				Offset(1),
			},
			attempts: []backoffAttempt{
				{0, 10 * 132 * time.Millisecond},
				{1, 100 * 132 * time.Millisecond},
				{2, 1000 * 132 * time.Millisecond},
				{5, 1000000 * 132 * time.Millisecond},
				{9, 10000000000 * 132 * time.Millisecond},
				{10, backoff.Abandon},
				{11, backoff.Abandon},
			},
		},
		{
			msg:      "negative offset",
			giveOpts: []Option{Offset(-1), Multiplier(time.Second)},
			attempts: []backoffAttempt{
				{0, 500 * time.Millisecond},
				{1, time.Second},
				{2, 2 * time.Second},
			},
		},
		{
			msg:      "overflow clamps",
			giveOpts: []Option{Base(10), Offset(30), MaxRetries(2)},
			attempts: []backoffAttempt{
				{0, time.Duration(math.MaxInt64)},
				{1, time.Duration(math.MaxInt64)},
				{2, backoff.Abandon},
			},
		},
		{
			msg:      "invalid base",
			giveOpts: []Option{Base(0)},
			wantErrors: []string{
				"invalid base for exponential backoff, need a finite number greater than zero",
			},
		},
		{
			msg:      "invalid multiplier and offset",
			giveOpts: []Option{Multiplier(0), Offset(math.Inf(1))},
			wantErrors: []string{
				"invalid multiplier for exponential backoff, need greater than zero",
				"invalid offset for exponential backoff, need a finite number",
			},
		},
		{
			msg:      "foreign option",
			giveOpts: []Option{Timeout(time.Second)},
			wantErrors: []string{
				"option Timeout does not apply to exponential backoff",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			s, err := NewExponential(tt.giveOpts...)
			if len(tt.wantErrors) > 0 {
				require.Error(t, err)
				for _, e := range tt.wantErrors {
					assert.Contains(t, err.Error(), e)
				}
				assert.Len(t, multierr.Errors(err), len(tt.wantErrors))
				return
			}
			require.NoError(t, err)
			assertAttempts(t, s, tt.attempts)
		})
	}
}

func TestFibonacci(t *testing.T) {
	sequence := []int64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597, 2584, 4181}

	t.Run("defaults with four retries", func(t *testing.T) {
		s, err := NewFibonacci(MaxRetries(4))
		require.NoError(t, err)
		assertAttempts(t, s, []backoffAttempt{
			{0, time.Second},
			{1, 2 * time.Second},
			{2, 3 * time.Second},
			{3, 5 * time.Second},
			{4, backoff.Abandon},
			{1000, backoff.Abandon},
		})
	})

	t.Run("saturates past the table", func(t *testing.T) {
		s, err := NewFibonacci(MaxRetries(30))
		require.NoError(t, err)
		for i, n := range sequence {
			assert.Equal(t, time.Duration(n)*time.Second, s.Duration(uint(i)), "attempt %d", i)
		}
		for i := uint(len(sequence)); i < 30; i++ {
			assert.Equal(t, 4181*time.Second, s.Duration(i), "attempt %d", i)
		}
		assert.Equal(t, backoff.Abandon, s.Duration(30))
		assert.Equal(t, backoff.Abandon, s.Duration(1000))
	})

	t.Run("custom multiplier", func(t *testing.T) {
		s, err := NewFibonacci(MaxRetries(10), Multiplier(132*time.Millisecond))
		require.NoError(t, err)
		for i, n := range sequence[:10] {
			assert.Equal(t, time.Duration(n)*132*time.Millisecond, s.Duration(uint(i)), "attempt %d", i)
		}
		assert.Equal(t, backoff.Abandon, s.Duration(10))
		assert.Equal(t, backoff.Abandon, s.Duration(11))
	})

	t.Run("zero retries", func(t *testing.T) {
		s, err := NewFibonacci(MaxRetries(0))
		require.NoError(t, err)
		assert.Equal(t, backoff.Abandon, s.Duration(0))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewFibonacci(MaxRetries(-3), Multiplier(time.Duration(math.MaxInt64)), Offset(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "option Offset does not apply to fibonacci backoff")
		assert.Contains(t, err.Error(), "invalid max retries for fibonacci backoff")
		assert.Contains(t, err.Error(), "invalid multiplier for fibonacci backoff, need at most")
	})
}

func TestStrategiesArePure(t *testing.T) {
	simple, err := NewSimple(MaxRetries(3))
	require.NoError(t, err)
	exp, err := NewExponential(MaxRetries(3))
	require.NoError(t, err)
	fib, err := NewFibonacci(MaxRetries(3))
	require.NoError(t, err)

	for _, s := range []backoff.Strategy{simple, exp, fib} {
		for i := uint(0); i < 5; i++ {
			first := s.Duration(i)
			assert.Equal(t, first, s.Duration(i), "%v attempt %d", s, i)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		giveKind Kind
		giveOpts []Option
		want     backoff.Strategy
		wantErr  string
	}{
		{
			giveKind: Simple,
			giveOpts: []Option{Timeout(time.Minute), MaxRetries(2)},
			want:     &SimpleStrategy{timeout: time.Minute, maxRetries: 2},
		},
		{
			giveKind: Exponential,
			want: &ExponentialStrategy{
				base:       2,
				offset:     2,
				multiplier: 100 * time.Millisecond,
				maxRetries: 5,
			},
		},
		{
			giveKind: Fibonacci,
			giveOpts: []Option{MaxRetries(1)},
			want:     &FibonacciStrategy{multiplier: time.Second, maxRetries: 1},
		},
		{
			giveKind: Kind(42),
			wantErr:  "unknown backoff kind: Kind(42)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.giveKind.String(), func(t *testing.T) {
			s, err := New(tt.giveKind, tt.giveOpts...)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestDefaultStrategy(t *testing.T) {
	for i := uint(0); i < 5; i++ {
		assert.Equal(t, time.Second, DefaultStrategy.Duration(i))
	}
	assert.Equal(t, backoff.Abandon, DefaultStrategy.Duration(5))
}

func TestStrategyString(t *testing.T) {
	simple, err := NewSimple(MaxRetries(3))
	require.NoError(t, err)
	assert.Equal(t, "simple(timeout=1s, maxRetries=3)", simple.String())
	assert.Equal(t, Simple, simple.Kind())
	assert.Equal(t, 3, simple.MaxRetries())

	exp, err := NewExponential()
	require.NoError(t, err)
	assert.Equal(t, "exponential(base=2, offset=2, multiplier=100ms, maxRetries=5)", exp.String())

	fib, err := NewFibonacci(Multiplier(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, "fibonacci(multiplier=1ms, maxRetries=5)", fib.String())
}
