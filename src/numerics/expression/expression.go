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

package expression

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

// Variable is the only free variable an expression may reference.
const Variable = "x"

// ErrNotFinite is returned when a function evaluates to NaN or an infinity.
var ErrNotFinite = errors.New("result is not a finite number")

// Evaluator evaluates a real-valued function of one real variable.
type Evaluator interface {
	Evaluate(x float64) (float64, error)
}

// ExpressionError is returned when an expression cannot be compiled into a Function.
type ExpressionError struct {
	Expression string
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", e.Expression, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

// EvaluationError is returned when a Function is undefined at a point.
type EvaluationError struct {
	X   float64
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("f(x) is undefined at x = %s: %v", strconv.FormatFloat(e.X, 'g', -1, 64), e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// functions are the named functions and constants available to expressions. abs, floor,
// ceil and round are provided by the expression language itself.
var functions = map[string]interface{}{
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"exp":    math.Exp,
	"ln":     math.Log,
	"log":    math.Log,
	"log10":  math.Log10,
	"log2":   math.Log2,
	"sqrt":   math.Sqrt,
	"cbrt":   math.Cbrt,
	"signum": signum,
	"fmod":   math.Mod,
	"pi":     math.Pi,
	"e":      math.E,
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// floatLiterals rewrites integer literals as floats so arithmetic never wraps around.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// newEnv returns a fresh evaluation environment with x bound to the given value.
func newEnv(x float64) map[string]interface{} {
	env := make(map[string]interface{}, len(functions)+1)
	for k, v := range functions {
		env[k] = v
	}
	env[Variable] = x
	return env
}

// Function is a compiled expression in the single variable x. It holds no mutable state
// and may be evaluated concurrently.
type Function struct {
	source  string
	program *vm.Program
}

var _ Evaluator = &Function{}

// Parse compiles the expression into a Function.
func Parse(expression string) (*Function, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &ExpressionError{Expression: expression, Err: errors.New("expression is empty")}
	}
	program, err := expr.Compile(expression,
		expr.Env(newEnv(0)),
		expr.Patch(floatLiterals{}),
		expr.Operator("%", "fmod"),
		expr.AsFloat64())
	if err != nil {
		return nil, &ExpressionError{Expression: expression, Err: err}
	}
	return &Function{source: expression, program: program}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expression string) *Function {
	f, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return f
}

// Evaluate computes f(x). Results that are NaN or infinite are reported as an
// EvaluationError rather than returned.
func (f *Function) Evaluate(x float64) (float64, error) {
	out, err := expr.Run(f.program, newEnv(x))
	if err != nil {
		return 0, &EvaluationError{X: x, Err: err}
	}
	y, err := toFloat(out)
	if err != nil {
		return 0, &EvaluationError{X: x, Err: err}
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, &EvaluationError{X: x, Err: ErrNotFinite}
	}
	return y, nil
}

// String returns the source expression.
func (f *Function) String() string {
	return f.source
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expression produced %T, expected a number", v)
}
