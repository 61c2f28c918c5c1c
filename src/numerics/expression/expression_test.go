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

package expression_test

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numetrify/numetrify/src/numerics/expression"
)

func TestParse_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		x        float64
		expected float64
	}{
		{"polynomial", "x^2 - 4", 3, 5},
		{"double star power", "x**3 - x - 2", 2, 4},
		{"integer literals", "2*x + 1", 0.5, 2},
		{"division", "1/x", 4, 0.25},
		{"unary minus", "-x + 1", 2, -1},
		{"parentheses", "(x + 1) * (x - 1)", 3, 8},
		{"sin", "sin(x)", math.Pi / 2, 1},
		{"cos", "cos(x)", 0, 1},
		{"exp", "exp(x)", 0, 1},
		{"ln", "ln(x)", math.E, 1},
		{"log10", "log10(x)", 1000, 3},
		{"sqrt", "sqrt(x)", 16, 4},
		{"abs", "abs(x)", -3.5, 3.5},
		{"constants", "pi * e", 0, math.Pi * math.E},
		{"signum", "signum(x)", -7, -1},
		{"no variable", "5", 100, 5},
		{"transcendental mix", "exp(-x) - x", 0, 1},
		{"modulo", "x % 2", 5.5, 1.5},
		{"negative modulo", "x % 3", -7, -1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := expression.Parse(test.expr)
			require.NoError(t, err)
			assert.Equal(t, test.expr, f.String())

			y, err := f.Evaluate(test.x)
			require.NoError(t, err)
			assert.InDelta(t, test.expected, y, 1e-12)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"dangling operator", "x +"},
		{"unbalanced parentheses", "(x + 1"},
		{"second variable", "x + y"},
		{"unknown function", "foo(x)"},
		{"non numeric result", "x > 1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := expression.Parse(test.expr)
			require.Error(t, err)
			assert.Nil(t, f)

			var exprErr *expression.ExpressionError
			require.True(t, errors.As(err, &exprErr))
			assert.Equal(t, test.expr, exprErr.Expression)
		})
	}
}

func TestEvaluate_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		x    float64
	}{
		{"division by zero", "1/x", 0},
		{"log of negative", "ln(x)", -1},
		{"sqrt of negative", "sqrt(x)", -4},
		{"overflow", "exp(x)", 1000},
		{"modulo by zero", "x % 0", 4},
		{"literal overflow", strings.Repeat("4000000000000000000 * ", 17) + "x", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := expression.Parse(test.expr)
			require.NoError(t, err)

			_, err = f.Evaluate(test.x)
			require.Error(t, err)

			var evalErr *expression.EvaluationError
			require.True(t, errors.As(err, &evalErr))
			assert.Equal(t, test.x, evalErr.X)
			assert.ErrorIs(t, err, expression.ErrNotFinite)
		})
	}
}

func TestEvaluate_LargeLiterals(t *testing.T) {
	f, err := expression.Parse("5000000000*5000000000 + x")
	require.NoError(t, err)

	y, err := f.Evaluate(3)
	require.NoError(t, err)
	assert.Equal(t, 2.5e19, y)
}

func TestEvaluate_Concurrent(t *testing.T) {
	f := expression.MustParse("x^2 - 4")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i)
			y, err := f.Evaluate(x)
			assert.NoError(t, err)
			assert.Equal(t, x*x-4, y)
		}(i)
	}
	wg.Wait()
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() {
		expression.MustParse("x +")
	})
}
