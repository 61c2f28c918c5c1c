/*
 * Copyright 2018- The Pixie Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package numericsenv

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/shared/services/env"
)

// ServiceName is the name the numerics service reports.
const ServiceName = "numerics-service"

func init() {
	pflag.Int("max_iterations_limit", 100000, "The largest max_iterations a bisection request may ask for. 0 disables the limit")
	pflag.Int32("decimal_scale", bisection.DefaultScale, "Fractional digits kept when dividing decimals")
}

// NumericsEnv is the environment used for the numerics service.
type NumericsEnv interface {
	env.Env
	Engine() *bisection.Engine
	MaxIterationsLimit() int
}

// Impl is an implementation of the NumericsEnv interface.
type Impl struct {
	*env.BaseEnv
	engine             *bisection.Engine
	maxIterationsLimit int
}

// Engine returns the bisection engine shared by all requests.
func (e *Impl) Engine() *bisection.Engine {
	return e.engine
}

// MaxIterationsLimit returns the ceiling on requested iterations.
func (e *Impl) MaxIterationsLimit() int {
	return e.maxIterationsLimit
}

// NewWithDefaults creates a numerics env from the configured flags.
func NewWithDefaults() (*Impl, error) {
	scale := viper.GetInt32("decimal_scale")
	if scale <= 0 {
		return nil, fmt.Errorf("decimal_scale must be positive, got %d", scale)
	}
	limit := viper.GetInt("max_iterations_limit")
	if limit < 0 {
		return nil, fmt.Errorf("max_iterations_limit must not be negative, got %d", limit)
	}
	engine := bisection.New(bisection.Options{
		Scale:       scale,
		OnIteration: logIteration,
	})
	return New(engine, limit), nil
}

// New creates a new numerics env.
func New(engine *bisection.Engine, maxIterationsLimit int) *Impl {
	return &Impl{env.New(ServiceName), engine, maxIterationsLimit}
}

func logIteration(it bisection.Iteration) {
	if !log.IsLevelEnabled(log.TraceLevel) {
		return
	}
	log.WithFields(log.Fields{
		"iteration": it.Index,
		"x":         it.X.String(),
		"fx":        it.FX,
		"error":     it.Error.String(),
	}).Trace("Bisection step")
}
