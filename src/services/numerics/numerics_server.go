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

package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/numetrify/numetrify/src/services/numerics/controllers"
	"github.com/numetrify/numetrify/src/services/numerics/numericsenv"
	"github.com/numetrify/numetrify/src/shared/services"
	"github.com/numetrify/numetrify/src/shared/services/handler"
	"github.com/numetrify/numetrify/src/shared/services/healthz"
	"github.com/numetrify/numetrify/src/shared/services/metrics"
	"github.com/numetrify/numetrify/src/shared/services/server"
	"github.com/numetrify/numetrify/src/shared/services/statusz"
)

func main() {
	services.SetupService(numericsenv.ServiceName, 8080)
	services.PostFlagSetupAndParse()
	services.CheckServiceFlags()
	services.SetupServiceLogging()
	flush := services.InitDefaultSentry(numericsenv.ServiceName)
	defer flush()

	env, err := numericsenv.NewWithDefaults()
	if err != nil {
		log.WithError(err).Fatal("Failed to set up numericsenv")
	}

	mux := http.NewServeMux()
	mux.Handle("/bisection", handler.New(env, controllers.BisectionHandler))
	mux.Handle("/hello", handler.New(env, controllers.HelloHandler))
	mux.Handle("/version", handler.New(env, controllers.VersionHandler))
	healthz.RegisterDefaultChecks(mux, controllers.EngineCheck(env))
	statusz.InstallPathHandler(mux, "/statusz", controllers.ReadyStatus(env))
	metrics.MustRegisterMetricsHandler(mux)

	s := server.NewServer(env, mux)
	s.Start()
	s.StopOnInterrupt()
}
