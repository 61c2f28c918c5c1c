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

package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// statusInvalidInput labels requests rejected before a run.
	statusInvalidInput = "invalid_input"
	// statusInternalError labels runs that failed for reasons other than the input.
	statusInternalError = "internal_error"
)

var (
	bisectionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "numerics_bisection_requests_total",
		Help: "Number of bisection requests by outcome.",
	}, []string{"status"})
	bisectionIterations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "numerics_bisection_iterations",
		Help:    "Histogram for the number of trace rows returned by bisection runs.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(bisectionRequests)
	prometheus.MustRegister(bisectionIterations)
}
