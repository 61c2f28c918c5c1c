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

package bisection

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrorType selects how the error between consecutive midpoints is measured. The numeric
// values match the wire format of the bisection endpoint.
type ErrorType int

const (
	// Relative error: |m - p| / |m|.
	Relative ErrorType = 0
	// Absolute error: |m - p|.
	Absolute ErrorType = 1
)

func (t ErrorType) String() string {
	switch t {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// Valid returns true if t is a known error type.
func (t ErrorType) Valid() bool {
	return t == Relative || t == Absolute
}

// ParseErrorType parses the name or wire value of an error type.
func ParseErrorType(s string) (ErrorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relative", "rel", "0":
		return Relative, nil
	case "absolute", "abs", "1":
		return Absolute, nil
	}
	return 0, fmt.Errorf("unknown error type %q, must be one of absolute, relative", s)
}

// Status is the outcome of a bisection run.
type Status int

const (
	// LowerBoundRoot means f(lower_bound) is exactly zero.
	LowerBoundRoot Status = iota
	// UpperBoundRoot means f(upper_bound) is exactly zero.
	UpperBoundRoot
	// InadequateInterval means f has the same sign at both bounds.
	InadequateInterval
	// ExactRoot means f is exactly zero at the final midpoint.
	ExactRoot
	// Converged means the final error is below the tolerance.
	Converged
	// NotConverged means the iteration budget ran out.
	NotConverged
	// Undefined means f could not be evaluated at one of the visited points.
	Undefined
)

var statusNames = map[Status]string{
	LowerBoundRoot:     "lower_bound_root",
	UpperBoundRoot:     "upper_bound_root",
	InadequateInterval: "inadequate_interval",
	ExactRoot:          "exact_root",
	Converged:          "converged",
	NotConverged:       "not_converged",
	Undefined:          "undefined",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Iteration is a single row of the trace.
type Iteration struct {
	Index int             `json:"iteration"`
	X     decimal.Decimal `json:"x"`
	FX    float64         `json:"fx"`
	Error decimal.Decimal `json:"error"`
}

// Result is the outcome of a bisection run.
type Result struct {
	Message string
	Status  Status
	Trace   []Iteration
}

// Last returns the final row of the trace.
func (r *Result) Last() (Iteration, bool) {
	if len(r.Trace) == 0 {
		return Iteration{}, false
	}
	return r.Trace[len(r.Trace)-1], true
}

// Columns is the column oriented form of a Result. All slices are index aligned.
type Columns struct {
	Message    string            `json:"message"`
	XVals      []decimal.Decimal `json:"x_vals"`
	FVals      []float64         `json:"f_vals"`
	Errors     []decimal.Decimal `json:"errors"`
	Iterations []int             `json:"iterations"`
}

// Columns converts the trace into parallel columns.
func (r *Result) Columns() Columns {
	c := Columns{
		Message:    r.Message,
		XVals:      make([]decimal.Decimal, 0, len(r.Trace)),
		FVals:      make([]float64, 0, len(r.Trace)),
		Errors:     make([]decimal.Decimal, 0, len(r.Trace)),
		Iterations: make([]int, 0, len(r.Trace)),
	}
	for _, it := range r.Trace {
		c.XVals = append(c.XVals, it.X)
		c.FVals = append(c.FVals, it.FX)
		c.Errors = append(c.Errors, it.Error)
		c.Iterations = append(c.Iterations, it.Index)
	}
	return c
}

// InputError is returned when the numeric inputs of a run are unusable.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
