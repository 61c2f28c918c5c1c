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

package services

import (
	"errors"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	version "github.com/numetrify/numetrify/src/shared/goversion"
)

// EnvPrefix is prepended to the upper-cased flag name to form its environment variable.
const EnvPrefix = "NM"

var (
	commonSetup sync.Once
)

func setupCommonFlags() {
	pflag.String("log_level", "info", "The log level: trace, debug, info, warn or error")
	pflag.String("sentry_dsn", "", "The sentry DSN. Error reporting is disabled when empty")
	pflag.String("pod_name", "<unknown>", "The pod name")
	pflag.Bool("version", false, "Print the version and quit.")
}

// SetupCommonFlags sets flags that are used by every service.
func SetupCommonFlags() {
	commonSetup.Do(setupCommonFlags)
}

// SetupService configures basic flags and defaults required by all services.
func SetupService(serviceName string, servicePort uint) {
	commonSetup.Do(setupCommonFlags)
	pflag.Uint("http_port", servicePort, fmt.Sprintf("The port to run the %s HTTP server", serviceName))
	pflag.StringSlice("allowed_origins", nil, "Origins allowed to make cross-origin requests. Empty disables CORS")

	log.WithField("service", serviceName).
		WithField("version", version.GetVersion().ToString()).
		Info("Starting service")
}

// PostFlagSetupAndParse does post setup flag config and parses them.
func PostFlagSetupAndParse() {
	pflag.Parse()

	// Must call after all flags are setup.
	viper.AutomaticEnv()
	viper.SetEnvPrefix(EnvPrefix)
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.WithError(err).Fatal("Failed to bind flags")
	}
}

// CheckServiceFlags checks to make sure flag values are valid.
func CheckServiceFlags() {
	if viper.GetBool("version") {
		log.WithField("version", version.GetVersion().ToString()).
			Info("Exiting")
		os.Exit(0)
	}

	if err := ValidateServiceFlags(); err != nil {
		log.WithError(err).Fatal("Invalid service flags")
	}
}

// ValidateServiceFlags returns an error describing the first invalid common flag.
func ValidateServiceFlags() error {
	port := viper.GetInt("http_port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("flag --http_port or ENV %s_HTTP_PORT must be between 1 and 65535, got %d", EnvPrefix, port)
	}
	if _, err := log.ParseLevel(viper.GetString("log_level")); err != nil {
		return fmt.Errorf("flag --log_level or ENV %s_LOG_LEVEL is invalid: %w", EnvPrefix, err)
	}
	for _, origin := range viper.GetStringSlice("allowed_origins") {
		if origin == "" {
			return errors.New("flag --allowed_origins must not contain empty origins")
		}
	}
	return nil
}
