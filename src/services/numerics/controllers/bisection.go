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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/numerics/expression"
	"github.com/numetrify/numetrify/src/services/numerics/numericsenv"
	"github.com/numetrify/numetrify/src/shared/services/env"
	"github.com/numetrify/numetrify/src/shared/services/handler"
)

// MaxRequestBytes caps the size of a bisection request body.
const MaxRequestBytes = 1 << 20

// BisectionRequest is the body of POST /bisection. Fields are pointers so that missing
// fields can be told apart from zero values.
type BisectionRequest struct {
	FunctionExpression *string  `json:"function_expression" validate:"required"`
	LowerBound         *float64 `json:"lower_bound" validate:"required"`
	UpperBound         *float64 `json:"upper_bound" validate:"required"`
	ErrorType          *int     `json:"error_type" validate:"required,oneof=0 1"`
	ToleranceValue     *float64 `json:"tolerance_value" validate:"required"`
	MaxIterations      *int     `json:"max_iterations" validate:"required,gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func decodeBisectionRequest(w http.ResponseWriter, r *http.Request) (*BisectionRequest, error) {
	defer r.Body.Close()
	body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)

	var req BisectionRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, handler.NewStatusErrorf(http.StatusRequestEntityTooLarge, "request body must not exceed %d bytes", tooLarge.Limit)
		}
		return nil, handler.NewStatusErrorf(http.StatusBadRequest, "failed to decode json request: %v", err)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, handler.NewStatusError(http.StatusBadRequest, validationMessage(err))
	}
	return &req, nil
}

// BisectionHandler runs the bisection method on the requested function and bracket.
// Request-type: application/json.
// Params: function_expression, lower_bound, upper_bound, error_type, tolerance_value, max_iterations.
func BisectionHandler(e env.Env, w http.ResponseWriter, r *http.Request) error {
	nmEnv, ok := e.(numericsenv.NumericsEnv)
	if !ok {
		return handler.NewStatusError(http.StatusInternalServerError, "failed to get environment")
	}
	if r.Method != http.MethodPost {
		return handler.NewStatusError(http.StatusMethodNotAllowed, "not a post request")
	}

	req, err := decodeBisectionRequest(w, r)
	if err != nil {
		bisectionRequests.WithLabelValues(statusInvalidInput).Inc()
		return err
	}
	if limit := nmEnv.MaxIterationsLimit(); limit > 0 && *req.MaxIterations > limit {
		bisectionRequests.WithLabelValues(statusInvalidInput).Inc()
		return handler.NewStatusErrorf(http.StatusBadRequest, "max_iterations must be at most %d", limit)
	}

	res, err := nmEnv.Engine().Run(*req.FunctionExpression, *req.LowerBound, *req.UpperBound,
		bisection.ErrorType(*req.ErrorType), *req.ToleranceValue, *req.MaxIterations)
	if err != nil {
		var exprErr *expression.ExpressionError
		var inputErr *bisection.InputError
		if errors.As(err, &exprErr) || errors.As(err, &inputErr) {
			bisectionRequests.WithLabelValues(statusInvalidInput).Inc()
			return &handler.StatusError{Code: http.StatusBadRequest, Err: err}
		}
		bisectionRequests.WithLabelValues(statusInternalError).Inc()
		log.WithError(err).WithFields(log.Fields{
			"expression": *req.FunctionExpression,
			"error_type": bisection.ErrorType(*req.ErrorType).String(),
			"status":     statusInternalError,
		}).Error("Bisection failed")
		return handler.NewStatusError(http.StatusInternalServerError, "bisection failed")
	}

	bisectionRequests.WithLabelValues(res.Status.String()).Inc()
	bisectionIterations.Observe(float64(len(res.Trace)))
	log.WithFields(log.Fields{
		"expression": *req.FunctionExpression,
		"status":     res.Status.String(),
		"rows":       len(res.Trace),
	}).Debug("Bisection complete")

	handler.WriteJSON(w, http.StatusOK, res.Columns())
	return nil
}
