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

package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/services/numerics/controllers"
	"github.com/numetrify/numetrify/src/services/numerics/numericsenv"
	"github.com/numetrify/numetrify/src/shared/services/handler"
	"github.com/numetrify/numetrify/src/shared/services/metrics"
)

type bisectionResponse struct {
	Message    string    `json:"message"`
	XVals      []string  `json:"x_vals"`
	FVals      []float64 `json:"f_vals"`
	Errors     []string  `json:"errors"`
	Iterations []int     `json:"iterations"`
}

func newTestEnv() *numericsenv.Impl {
	return numericsenv.New(bisection.New(bisection.Options{}), 1000)
}

func postBisection(t *testing.T, body string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("POST", "/bisection", strings.NewReader(body))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h := handler.New(newTestEnv(), controllers.BisectionHandler)
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	var body handler.ErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

func TestBisectionHandler(t *testing.T) {
	rr := postBisection(t, `{
		"function_expression": "x^2 - 4",
		"lower_bound": 0,
		"upper_bound": 3,
		"error_type": 1,
		"tolerance_value": 4,
		"max_iterations": 50
	}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp bisectionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, strings.HasPrefix(resp.Message, "The approximate solution is: "))
	assert.True(t, strings.HasSuffix(resp.Message, ", with a tolerance = 0.00005"))
	assert.Len(t, resp.XVals, 16)
	assert.Len(t, resp.FVals, 16)
	assert.Len(t, resp.Errors, 16)
	require.Len(t, resp.Iterations, 16)
	assert.Equal(t, "1.5", resp.XVals[0])
	assert.Equal(t, "100", resp.Errors[0])
	for i, k := range resp.Iterations {
		assert.Equal(t, i, k)
	}
}

func TestBisectionHandler_DegenerateResults(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		rows     int
	}{
		{
			name:     "inadequate interval",
			body:     `{"function_expression": "x^2 + 1", "lower_bound": -1, "upper_bound": 1, "error_type": 1, "tolerance_value": 4, "max_iterations": 50}`,
			expected: "The interval is inadequate",
		},
		{
			name:     "lower bound root",
			body:     `{"function_expression": "x - 1", "lower_bound": 1, "upper_bound": 3, "error_type": 0, "tolerance_value": 4, "max_iterations": 50}`,
			expected: "1 is a root of f(x)",
		},
		{
			name:     "undefined at bound",
			body:     `{"function_expression": "ln(x)", "lower_bound": -1, "upper_bound": 2, "error_type": 1, "tolerance_value": 4, "max_iterations": 50}`,
			expected: "f(x) is not defined at -1",
		},
		{
			name:     "zero iterations",
			body:     `{"function_expression": "x^2 - 4", "lower_bound": 0, "upper_bound": 3, "error_type": 0, "tolerance_value": 4, "max_iterations": 0}`,
			expected: "Failed in 0 iterations",
			rows:     1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := postBisection(t, test.body)
			require.Equal(t, http.StatusOK, rr.Code)

			raw := rr.Body.String()
			var resp bisectionResponse
			require.NoError(t, json.Unmarshal([]byte(raw), &resp))
			assert.Equal(t, test.expected, resp.Message)
			assert.Len(t, resp.XVals, test.rows)
			assert.Len(t, resp.Iterations, test.rows)
			if test.rows == 0 {
				assert.Contains(t, raw, `"x_vals":[]`)
			}
		})
	}
}

func TestBisectionHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		code     int
		expected string
	}{
		{
			name:     "malformed json",
			body:     `{"function_expression": `,
			code:     http.StatusBadRequest,
			expected: "failed to decode json request",
		},
		{
			name:     "missing field",
			body:     `{"function_expression": "x", "upper_bound": 1, "error_type": 1, "tolerance_value": 4, "max_iterations": 5}`,
			code:     http.StatusBadRequest,
			expected: "lower_bound is required",
		},
		{
			name:     "unknown error type",
			body:     `{"function_expression": "x", "lower_bound": -1, "upper_bound": 1, "error_type": 2, "tolerance_value": 4, "max_iterations": 5}`,
			code:     http.StatusBadRequest,
			expected: "error_type must be one of [0 1]",
		},
		{
			name:     "negative iterations",
			body:     `{"function_expression": "x", "lower_bound": -1, "upper_bound": 1, "error_type": 1, "tolerance_value": 4, "max_iterations": -1}`,
			code:     http.StatusBadRequest,
			expected: "max_iterations must be at least 0",
		},
		{
			name:     "iterations over limit",
			body:     `{"function_expression": "x", "lower_bound": -1, "upper_bound": 1, "error_type": 1, "tolerance_value": 4, "max_iterations": 1001}`,
			code:     http.StatusBadRequest,
			expected: "max_iterations must be at most 1000",
		},
		{
			name:     "invalid expression",
			body:     `{"function_expression": "x +", "lower_bound": -1, "upper_bound": 1, "error_type": 1, "tolerance_value": 4, "max_iterations": 5}`,
			code:     http.StatusBadRequest,
			expected: "invalid expression",
		},
		{
			name:     "empty expression",
			body:     `{"function_expression": "", "lower_bound": -1, "upper_bound": 1, "error_type": 1, "tolerance_value": 4, "max_iterations": 5}`,
			code:     http.StatusBadRequest,
			expected: "expression is empty",
		},
		{
			name:     "tolerance out of range",
			body:     `{"function_expression": "x", "lower_bound": -1, "upper_bound": 1, "error_type": 1, "tolerance_value": 1000, "max_iterations": 5}`,
			code:     http.StatusBadRequest,
			expected: "invalid tolerance_value",
		},
		{
			name:     "body too large",
			body:     `{"function_expression": "` + strings.Repeat("x+", controllers.MaxRequestBytes) + `x"}`,
			code:     http.StatusRequestEntityTooLarge,
			expected: "request body must not exceed",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := postBisection(t, test.body)
			assert.Equal(t, test.code, rr.Code)
			assert.Contains(t, decodeError(t, rr), test.expected)
		})
	}
}

func TestBisectionHandler_BadMethod(t *testing.T) {
	req, err := http.NewRequest("GET", "/bisection", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h := handler.New(newTestEnv(), controllers.BisectionHandler)
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestBisectionHandler_Metrics(t *testing.T) {
	postBisection(t, `{"function_expression": "x^3 - x - 2", "lower_bound": 1, "upper_bound": 2, "error_type": 1, "tolerance_value": 6, "max_iterations": 100}`)
	postBisection(t, `{"function_expression": "x +", "lower_bound": 1, "upper_bound": 2, "error_type": 1, "tolerance_value": 6, "max_iterations": 100}`)

	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	metrics.Handler(prometheus.DefaultGatherer).ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Contains(t, body, `numerics_bisection_requests_total{status="converged"}`)
	assert.Contains(t, body, `numerics_bisection_requests_total{status="invalid_input"}`)
	assert.Contains(t, body, "numerics_bisection_iterations_bucket")
}
