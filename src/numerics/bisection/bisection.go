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
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/numetrify/numetrify/src/numerics/expression"
)

const (
	// DefaultScale is the number of fractional digits kept when dividing decimals.
	DefaultScale int32 = 20
	// MaxToleranceExponent bounds the magnitude of the tolerance exponent.
	MaxToleranceExponent = 300
	// guardDigits are kept beyond the tolerance when dividing, so a rounded relative error
	// never falls below a threshold the exact error has not reached.
	guardDigits int32 = 10
)

var (
	half = decimal.New(5, -1)
	// initialError is recorded for the seed row, which has no previous midpoint.
	initialError = decimal.NewFromInt(100)
)

// Options configure an Engine.
type Options struct {
	// Scale is the number of fractional digits kept by relative error division.
	Scale int32
	// OnIteration, when set, is called after each row is appended to the trace.
	OnIteration func(Iteration)
}

// Engine runs the bisection method. An Engine holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	opts Options
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	return &Engine{opts: opts}
}

var defaultEngine = New(Options{})

// Run parses the expression and runs the bisection method with default options.
func Run(expr string, lowerBound, upperBound float64, errorType ErrorType, toleranceExponent float64, maxIterations int) (*Result, error) {
	return defaultEngine.Run(expr, lowerBound, upperBound, errorType, toleranceExponent, maxIterations)
}

// Run parses the expression and runs the bisection method on it. Malformed input or an
// expression that does not compile is returned as an error; every other outcome,
// including non-convergence, is a Result.
func (e *Engine) Run(expr string, lowerBound, upperBound float64, errorType ErrorType, toleranceExponent float64, maxIterations int) (*Result, error) {
	if err := ValidateInputs(lowerBound, upperBound, errorType, toleranceExponent, maxIterations); err != nil {
		return nil, err
	}
	f, err := expression.Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.RunFunction(f, lowerBound, upperBound, errorType, toleranceExponent, maxIterations)
}

// ValidateInputs checks the numeric inputs of a run.
func ValidateInputs(lowerBound, upperBound float64, errorType ErrorType, toleranceExponent float64, maxIterations int) error {
	switch {
	case !isFinite(lowerBound):
		return &InputError{Field: "lower_bound", Reason: "must be a finite number"}
	case !isFinite(upperBound):
		return &InputError{Field: "upper_bound", Reason: "must be a finite number"}
	case !errorType.Valid():
		return &InputError{Field: "error_type", Reason: fmt.Sprintf("unknown error type %d", int(errorType))}
	case !isFinite(toleranceExponent) || math.Abs(toleranceExponent) > MaxToleranceExponent:
		return &InputError{Field: "tolerance_value", Reason: fmt.Sprintf("must be a number between -%d and %d", MaxToleranceExponent, MaxToleranceExponent)}
	case maxIterations < 0:
		return &InputError{Field: "max_iterations", Reason: "must not be negative"}
	}
	return nil
}

// RunFunction runs the bisection method on an already parsed function.
func (e *Engine) RunFunction(f expression.Evaluator, lowerBound, upperBound float64, errorType ErrorType, toleranceExponent float64, maxIterations int) (*Result, error) {
	if err := ValidateInputs(lowerBound, upperBound, errorType, toleranceExponent, maxIterations); err != nil {
		return nil, err
	}

	fLower, err := f.Evaluate(lowerBound)
	if err != nil {
		return undefinedAt(formatFloat(lowerBound), nil, err)
	}
	fUpper, err := f.Evaluate(upperBound)
	if err != nil {
		return undefinedAt(formatFloat(upperBound), nil, err)
	}

	switch {
	case fLower == 0:
		return &Result{Message: rootMessage(formatFloat(lowerBound)), Status: LowerBoundRoot, Trace: []Iteration{}}, nil
	case fUpper == 0:
		return &Result{Message: rootMessage(formatFloat(upperBound)), Status: UpperBoundRoot, Trace: []Iteration{}}, nil
	case fLower*fUpper > 0:
		return &Result{Message: "The interval is inadequate", Status: InadequateInterval, Trace: []Iteration{}}, nil
	}

	tolerance := Tolerance(toleranceExponent)
	scale := e.divisionScale(toleranceExponent)
	trace := make([]Iteration, 0, seedCapacity(maxIterations))

	lower := decimal.NewFromFloat(lowerBound)
	upper := decimal.NewFromFloat(upperBound)
	mid := midpoint(lower, upper)
	fMid, err := f.Evaluate(mid.InexactFloat64())
	if err != nil {
		return undefinedAt(mid.String(), trace, err)
	}
	trace = e.record(trace, Iteration{Index: 0, X: mid, FX: fMid, Error: initialError})

	previous := mid
	lastError := initialError
	for i := 1; i <= maxIterations; i++ {
		// f(lower) is evaluated again on every step rather than carried over.
		fl, err := f.Evaluate(lower.InexactFloat64())
		if err != nil {
			return undefinedAt(lower.String(), trace, err)
		}
		if fl*fMid <= 0 {
			upper = mid
		} else {
			lower = mid
		}

		mid = midpoint(lower, upper)
		fMid, err = f.Evaluate(mid.InexactFloat64())
		if err != nil {
			return undefinedAt(mid.String(), trace, err)
		}

		lastError = errorBetween(mid, previous, errorType, scale)
		trace = e.record(trace, Iteration{Index: i, X: mid, FX: fMid, Error: lastError})
		if lastError.LessThan(tolerance) {
			break
		}
		previous = mid
	}

	switch {
	case fMid == 0:
		return &Result{Message: rootMessage(mid.String()), Status: ExactRoot, Trace: trace}, nil
	case lastError.LessThan(tolerance):
		return &Result{
			Message: fmt.Sprintf("The approximate solution is: %s, with a tolerance = %s", mid.String(), tolerance.String()),
			Status:  Converged,
			Trace:   trace,
		}, nil
	default:
		return &Result{Message: fmt.Sprintf("Failed in %d iterations", maxIterations), Status: NotConverged, Trace: trace}, nil
	}
}

// Tolerance converts a tolerance exponent t into the threshold 0.5 * 10^-t. The threshold
// is exact when t is integral.
func Tolerance(exponent float64) decimal.Decimal {
	if exponent == math.Trunc(exponent) && math.Abs(exponent) <= MaxToleranceExponent {
		return decimal.New(5, -int32(exponent)-1)
	}
	return decimal.NewFromFloat(0.5 * math.Pow(10, -exponent))
}

func (e *Engine) record(trace []Iteration, it Iteration) []Iteration {
	trace = append(trace, it)
	if e.opts.OnIteration != nil {
		e.opts.OnIteration(it)
	}
	return trace
}

// errorBetween measures the distance between consecutive midpoints. A relative error
// against a zero midpoint falls back to the absolute error.
func errorBetween(mid, previous decimal.Decimal, errorType ErrorType, scale int32) decimal.Decimal {
	diff := mid.Sub(previous).Abs()
	if errorType == Absolute || mid.IsZero() {
		return diff
	}
	return diff.DivRound(mid.Abs(), scale)
}

// divisionScale is the configured scale, widened when the tolerance needs more digits
// than it keeps.
func (e *Engine) divisionScale(toleranceExponent float64) int32 {
	if needed := int32(math.Ceil(toleranceExponent)) + guardDigits; needed > e.opts.Scale {
		return needed
	}
	return e.opts.Scale
}

// midpoint is exact: halving a decimal never needs rounding.
func midpoint(lower, upper decimal.Decimal) decimal.Decimal {
	return lower.Add(upper).Mul(half)
}

func undefinedAt(point string, trace []Iteration, err error) (*Result, error) {
	var evalErr *expression.EvaluationError
	if !errors.As(err, &evalErr) {
		return nil, err
	}
	if trace == nil {
		trace = []Iteration{}
	}
	return &Result{
		Message: fmt.Sprintf("f(x) is not defined at %s", point),
		Status:  Undefined,
		Trace:   trace,
	}, nil
}

func rootMessage(point string) string {
	return fmt.Sprintf("%s is a root of f(x)", point)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// seedCapacity bounds the initial trace allocation.
func seedCapacity(maxIterations int) int {
	const limit = 128
	if maxIterations+1 < limit {
		return maxIterations + 1
	}
	return limit
}
