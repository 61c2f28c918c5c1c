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

package statusz

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// StatusFn returns the reason the service is not ready, or an empty string when it is.
type StatusFn func() string

// mux is an interface describing the methods InstallHandler requires.
type mux interface {
	Handle(pattern string, handler http.Handler)
}

// InstallPathHandler registers the status check under path. A non-empty status is served as
// a 503 ServiceUnavailable with the status as the body.
func InstallPathHandler(mux mux, path string, status StatusFn) {
	log.WithField("path", path).Debug("Installing statusz handler")
	mux.Handle(path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := status(); s != "" {
			http.Error(w, s, http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "OK\n")
	}))
}
