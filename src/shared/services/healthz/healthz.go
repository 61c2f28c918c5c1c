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

/**
package healthz defines health checkers and interfaces.
	By default it will install the ping checker at the /ping endpoint and
	passed in checkers at the /healthz/<checker_name> endpoint. Running /healthz will
	cause all checkers to be run.
*/

package healthz

import (
	"bytes"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Checker is a named healthz checker.
type Checker interface {
	Name() string
	Check() error
}

// PingHealthz returns true automatically when checked.
var PingHealthz Checker = ping{}

// mux is an interface describing the methods InstallHandler requires.
type mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterPingEndpoint registers the ping endpoint to a serve mux.
func RegisterPingEndpoint(mux mux) {
	mux.Handle("/ping", adaptCheckToHandler(PingHealthz.Check))
}

// RegisterDefaultChecks register the default checks along with the passed in checks.
func RegisterDefaultChecks(mux mux, checks ...Checker) {
	RegisterPingEndpoint(mux)
	InstallPathHandler(mux, "/healthz", checks...)
}

type namedCheck struct {
	name  string
	check func() error
}

func (c *namedCheck) Name() string {
	return c.name
}

func (c *namedCheck) Check() error {
	return c.check()
}

// NamedCheck returns a healthz checker for the given name and function.
func NamedCheck(name string, check func() error) Checker {
	return &namedCheck{name, check}
}

// InstallPathHandler registers the healthz checks under path.
// This function can only be called once per mux/path combo.
func InstallPathHandler(mux mux, path string, checks ...Checker) {
	if len(checks) == 0 {
		log.Debug("No health checks specified. Installing the ping handler.")
		checks = []Checker{PingHealthz}
	}
	log.WithField("checkers", checkerNames(checks)).Debug("Installing healthz checkers")
	mux.Handle(path, rootHandler(checks))
	for _, check := range checks {
		mux.Handle(fmt.Sprintf("%s/%v", path, check.Name()), adaptCheckToHandler(check.Check))
	}
}

// RunChecks runs every check and returns a per check report. ok is false if any check failed.
func RunChecks(checks ...Checker) (report string, ok bool) {
	ok = true
	var out bytes.Buffer
	for _, check := range checks {
		if err := check.Check(); err != nil {
			log.WithField("checker", check.Name()).WithError(err).Info("healthz check failed")
			fmt.Fprintf(&out, "[-]%v FAILED: %v\n", check.Name(), err)
			ok = false
			continue
		}
		fmt.Fprintf(&out, "[+]%v OK\n", check.Name())
	}
	return out.String(), ok
}

func adaptCheckToHandler(c func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c(); err != nil {
			http.Error(w, fmt.Sprintf("FAILED internal server error: %v", err), http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "OK")
	}
}

func rootHandler(checks []Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := RunChecks(checks...)
		if !ok {
			http.Error(w, fmt.Sprintf("FAILED\n%vhealthz check failed", report), http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "OK\n%vhealthz check passed\n", report)
	}
}

func checkerNames(checks []Checker) []string {
	names := make([]string, 0, len(checks))
	for _, check := range checks {
		names = append(names, fmt.Sprintf("%q", check.Name()))
	}
	return names
}

// ping implements the simplest possible healthz checker.
type ping struct{}

func (ping) Name() string {
	return "ping"
}

func (ping) Check() error {
	return nil
}
