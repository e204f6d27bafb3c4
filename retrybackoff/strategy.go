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

	"go.uber.org/retryctl/api/backoff"
)

// DefaultStrategy waits one second before each of five retries. Controllers
// use it when no strategy is supplied.
var DefaultStrategy backoff.Strategy = &SimpleStrategy{
	timeout:    time.Second,
	maxRetries: _defaultMaxRetries,
}

// New builds a strategy of the given kind.
//
//   strategy, err := retrybackoff.New(retrybackoff.Fibonacci,
//     retrybackoff.Multiplier(500*time.Millisecond),
//     retrybackoff.MaxRetries(10))
func New(kind Kind, opts ...Option) (backoff.Strategy, error) {
	switch kind {
	case Simple:
		return NewSimple(opts...)
	case Exponential:
		return NewExponential(opts...)
	case Fibonacci:
		return NewFibonacci(opts...)
	default:
		return nil, fmt.Errorf("unknown backoff kind: %v", kind)
	}
}
