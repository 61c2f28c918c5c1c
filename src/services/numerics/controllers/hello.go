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
	"net/http"

	version "github.com/numetrify/numetrify/src/shared/goversion"
	"github.com/numetrify/numetrify/src/shared/services/env"
	"github.com/numetrify/numetrify/src/shared/services/handler"
)

// HelloHandler returns a fixed greeting.
func HelloHandler(e env.Env, w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return handler.NewStatusError(http.StatusMethodNotAllowed, "not a get request")
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello, world!"})
	return nil
}

// VersionHandler returns the build information of the running service.
func VersionHandler(e env.Env, w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return handler.NewStatusError(http.StatusMethodNotAllowed, "not a get request")
	}
	handler.WriteJSON(w, http.StatusOK, version.GetVersion().Info())
	return nil
}
