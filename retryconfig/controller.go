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

// Package retryconfig builds retryctl controllers and backoff strategies
// from configuration, typically YAML.
//
//  name: fetch
//  backoff:
//    exponential:
//      base: 2
//      offset: 2
//      multiplier: 100ms
//      maxRetries: 4
//
// Durations are written as Go duration strings. Unknown keys are rejected.
package retryconfig

import (
	"fmt"
	"io"
	"io/ioutil"

	"go.uber.org/retryctl"
	"go.uber.org/retryctl/internal/config"
	"gopkg.in/yaml.v2"
)

// Controller configures a retryctl.Controller.
type Controller struct {
	// Name identifies the controller in logs and metrics.
	Name string `config:"name"`

	// Backoff is the strategy consulted on every failure.
	Backoff Backoff `config:"backoff"`
}

// Options returns the controller options described by the configuration.
func (c Controller) Options() ([]retryctl.ControllerOption, error) {
	strategy, err := c.Backoff.Strategy()
	if err != nil {
		return nil, err
	}

	opts := []retryctl.ControllerOption{retryctl.WithBackoffStrategy(strategy)}
	if c.Name != "" {
		opts = append(opts, retryctl.WithName(c.Name))
	}
	return opts, nil
}

// LoadControllerFromMap decodes a Controller from loosely typed data, such
// as the result of unmarshaling YAML or JSON into an interface{}.
func LoadControllerFromMap(src interface{}) (Controller, error) {
	var c Controller
	if err := config.DecodeInto(&c, src); err != nil {
		return Controller{}, fmt.Errorf("failed to decode retry controller config: %v", err)
	}
	if _, err := c.Backoff.Strategy(); err != nil {
		return Controller{}, fmt.Errorf("invalid retry controller config: %v", err)
	}
	return c, nil
}

// LoadControllerFromYAML reads a Controller from YAML.
func LoadControllerFromYAML(r io.Reader) (Controller, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Controller{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Controller{}, err
	}
	return LoadControllerFromMap(data)
}
