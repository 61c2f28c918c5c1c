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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/numetrify_cli/pkg/client"
	"github.com/numetrify/numetrify/src/numetrify_cli/pkg/components"
)

func init() {
	BisectCmd.Flags().StringP("expr", "e", "", "The function of x to find a root of, e.g. \"x^2 - 4\"")
	BisectCmd.Flags().Float64P("lower", "l", 0, "The lower bound of the bracket")
	BisectCmd.Flags().Float64P("upper", "u", 0, "The upper bound of the bracket")
	BisectCmd.Flags().String("error_type", "absolute", "How the error between midpoints is measured: absolute or relative")
	BisectCmd.Flags().Float64P("tolerance", "t", 4, "The tolerance exponent t. Iteration stops once the error is below 0.5*10^-t")
	BisectCmd.Flags().IntP("max_iterations", "n", 100, "The maximum number of iterations")
	_ = BisectCmd.MarkFlagRequired("expr")
	_ = BisectCmd.MarkFlagRequired("lower")
	_ = BisectCmd.MarkFlagRequired("upper")
}

// BisectCmd is the "bisect" command.
var BisectCmd = &cobra.Command{
	Use:   "bisect",
	Short: "Find a root of a function with the bisection method",
	Example: `  numetrify bisect --expr "x^2 - 4" --lower 0 --upper 3
  numetrify bisect -e "cos(x) - x" -l 0 -u 1 --error_type relative -t 8 -o json
  numetrify bisect -e "x^3 - x - 2" -l 1 -u 2 --server http://localhost:8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := bisectRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		cols, err := runBisection(ctx, viper.GetString("server"), req)
		if err != nil {
			return err
		}
		return components.RenderTrace(cmd.OutOrStdout(), viper.GetString("output"), cols)
	},
}

func bisectRequestFromFlags(cmd *cobra.Command) (*client.BisectionRequest, error) {
	expr, _ := cmd.Flags().GetString("expr")
	lower, _ := cmd.Flags().GetFloat64("lower")
	upper, _ := cmd.Flags().GetFloat64("upper")
	errorTypeName, _ := cmd.Flags().GetString("error_type")
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	maxIterations, _ := cmd.Flags().GetInt("max_iterations")

	errorType, err := bisection.ParseErrorType(errorTypeName)
	if err != nil {
		return nil, err
	}
	return &client.BisectionRequest{
		FunctionExpression: expr,
		LowerBound:         lower,
		UpperBound:         upper,
		ErrorType:          int(errorType),
		ToleranceValue:     tolerance,
		MaxIterations:      maxIterations,
	}, nil
}

func runBisection(ctx context.Context, server string, req *client.BisectionRequest) (*bisection.Columns, error) {
	if server != "" {
		log.WithField("server", server).Debug("Running bisection on the numerics service")
		return client.New(server).Bisect(ctx, req)
	}

	res, err := bisection.Run(req.FunctionExpression, req.LowerBound, req.UpperBound,
		bisection.ErrorType(req.ErrorType), req.ToleranceValue, req.MaxIterations)
	if err != nil {
		var inputErr *bisection.InputError
		if errors.As(err, &inputErr) {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return nil, err
	}
	cols := res.Columns()
	return &cols, nil
}
