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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/numetrify/numetrify/src/numetrify_cli/pkg/utils"
	"github.com/numetrify/numetrify/src/shared/services"
)

func init() {
	// Flags that are relevant to all sub-commands.
	RootCmd.PersistentFlags().StringP("server", "s", "", "The address of a numerics service, e.g. http://localhost:8080. Runs in-process when empty")
	viper.BindPFlag("server", RootCmd.PersistentFlags().Lookup("server"))

	RootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table or json")
	viper.BindPFlag("output", RootCmd.PersistentFlags().Lookup("output"))

	RootCmd.PersistentFlags().String("sentry_dsn", "", "The sentry DSN used to report CLI errors")
	viper.BindPFlag("sentry_dsn", RootCmd.PersistentFlags().Lookup("sentry_dsn"))
	RootCmd.PersistentFlags().MarkHidden("sentry_dsn")

	RootCmd.AddCommand(VersionCmd)
	RootCmd.AddCommand(BisectCmd)

	viper.AutomaticEnv()
	viper.SetEnvPrefix(services.EnvPrefix)
	viper.BindPFlags(pflag.CommandLine)
}

// flushSentry is set once sentry is initialized.
var flushSentry = func() {}

// RootCmd is the base command for Cobra.
var RootCmd = &cobra.Command{
	Use:          "numetrify",
	Short:        "Numetrify CLI",
	Long:         `Finds roots of single variable functions with the bisection method, locally or on a numerics service.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flushSentry = services.InitDefaultSentry("numetrify-cli")
	},
}

// Execute is the main function for the Cobra CLI.
func Execute() {
	err := RootCmd.Execute()
	flushSentry()
	if err != nil {
		utils.WithError(err).Printf("Error executing command")
		os.Exit(1)
	}
}
