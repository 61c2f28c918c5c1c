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

package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// CLIOutputEntry represents an output log entry.
type CLIOutputEntry struct {
	w         io.Writer
	textColor *color.Color
	err       error
}

// Stderr returns an entry writing to stderr.
func Stderr() *CLIOutputEntry {
	return &CLIOutputEntry{w: os.Stderr}
}

// To returns an entry writing to w.
func To(w io.Writer) *CLIOutputEntry {
	return &CLIOutputEntry{w: w}
}

// WithColor returns a copy of the entry that prints in the given color.
func (c *CLIOutputEntry) WithColor(textColor *color.Color) *CLIOutputEntry {
	return &CLIOutputEntry{w: c.w, err: c.err, textColor: textColor}
}

// WithError returns a copy of the entry that appends err to every line.
func (c *CLIOutputEntry) WithError(err error) *CLIOutputEntry {
	return &CLIOutputEntry{w: c.w, err: err, textColor: c.textColor}
}

// Printf prints a single formatted line.
func (c *CLIOutputEntry) Printf(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	if c.err != nil {
		text += fmt.Sprintf(" error=%s", c.err.Error())
	}
	text += "\n"
	if c.textColor == nil {
		fmt.Fprint(c.w, text)
		return
	}
	c.textColor.Fprint(c.w, text)
}

// Errorf prints the input string to stderr formatted with the input args.
func Errorf(format string, args ...interface{}) {
	Stderr().WithColor(color.New(color.FgRed)).Printf(format, args...)
}

// Fatalf prints the input string to stderr and exits.
func Fatalf(format string, args ...interface{}) {
	Errorf(format, args...)
	os.Exit(1)
}

// WithError returns a stderr entry that appends err to every line.
func WithError(err error) *CLIOutputEntry {
	return Stderr().WithError(err)
}
