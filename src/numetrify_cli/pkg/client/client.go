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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/numetrify/numetrify/src/numerics/bisection"
)

// BisectionRequest is the body sent to POST /bisection.
type BisectionRequest struct {
	FunctionExpression string  `json:"function_expression"`
	LowerBound         float64 `json:"lower_bound"`
	UpperBound         float64 `json:"upper_bound"`
	ErrorType          int     `json:"error_type"`
	ToleranceValue     float64 `json:"tolerance_value"`
	MaxIterations      int     `json:"max_iterations"`
}

// APIError is returned when the service rejects a request.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackOff sets the retry policy for failed requests.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = newBackOff
	}
}

// Client talks to the numerics service.
type Client struct {
	addr       string
	httpClient *http.Client
	newBackOff func() backoff.BackOff
}

// New creates a client for the numerics service at addr, e.g. http://localhost:8080.
func New(addr string, opts ...Option) *Client {
	c := &Client{
		addr:       strings.TrimSuffix(addr, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second
	return bo
}

// Bisect runs the bisection method on the service. Connection failures and 5xx responses
// are retried; a rejected request is returned as an *APIError without retrying.
func (c *Client) Bisect(ctx context.Context, req *BisectionRequest) (*bisection.Columns, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp *bisection.Columns
	op := func() error {
		var err error
		resp, err = c.post(ctx, "/bisection", body)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, dur time.Duration) {
		log.WithError(err).Debugf("Bisection request failed, retrying in %v", dur.Round(time.Millisecond))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(c.newBackOff(), ctx), notify); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*bisection.Columns, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+path, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, readAPIError(httpResp)
	}

	var cols bisection.Columns
	if err := json.NewDecoder(httpResp.Body).Decode(&cols); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return &cols, nil
}

func readAPIError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Code: resp.StatusCode, Message: msg}
}
