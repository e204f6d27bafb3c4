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
	"strings"
)

// Kind identifies a family of backoff strategies.
type Kind int

const (
	// Simple waits the same amount of time before every retry.
	Simple Kind = iota + 1
	// Exponential waits base^(attempt+offset) multiples before each retry.
	Exponential
	// Fibonacci waits fibonacci-number multiples before each retry.
	Fibonacci
)

var _kindNames = map[Kind]string{
	Simple:      "simple",
	Exponential: "exponential",
	Fibonacci:   "fibonacci",
}

func (k Kind) String() string {
	if s, ok := _kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	s, ok := _kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown backoff kind: %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// case-insensitively.
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for kind, s := range _kindNames {
		if s == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown backoff kind: %q", text)
}
