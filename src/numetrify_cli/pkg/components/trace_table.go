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

package components

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/numetrify_cli/pkg/utils"
)

// traceHeader names the columns of the iteration table.
var traceHeader = []string{"Iteration", "X", "f(X)", "Error"}

// RenderTrace writes the result in the given format: "table" (default) or "json".
func RenderTrace(w io.Writer, format string, cols *bisection.Columns) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cols)
	case "table", "":
		renderTable(w, cols)
		utils.To(w).WithColor(MessageColor(cols.Message)).Printf("%s", cols.Message)
		return nil
	default:
		return fmt.Errorf("unknown output format %q, must be one of table, json", format)
	}
}

func renderTable(w io.Writer, cols *bisection.Columns) {
	if len(cols.Iterations) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(traceHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	for i := range cols.Iterations {
		table.Append([]string{
			strconv.Itoa(cols.Iterations[i]),
			cols.XVals[i].String(),
			strconv.FormatFloat(cols.FVals[i], 'g', -1, 64),
			cols.Errors[i].String(),
		})
	}
	table.Render()
}

// MessageColor picks the color of a result message: green for a root, yellow when the
// iteration budget ran out and red otherwise.
func MessageColor(message string) *color.Color {
	switch {
	case strings.HasPrefix(message, "The approximate solution is"),
		strings.HasSuffix(message, "is a root of f(x)"):
		return color.New(color.Bold, color.FgGreen)
	case strings.HasPrefix(message, "Failed in"):
		return color.New(color.FgYellow)
	default:
		return color.New(color.Bold, color.FgRed)
	}
}
