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

package services_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/numetrify/numetrify/src/shared/services"
)

func TestValidateServiceFlags(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		level   string
		origins []string
		wantErr string
	}{
		{"valid", 8080, "info", nil, ""},
		{"valid origins", 8080, "debug", []string{"http://localhost:3000"}, ""},
		{"port out of range", 70000, "info", nil, "--http_port"},
		{"zero port", 0, "info", nil, "--http_port"},
		{"bad level", 8080, "loud", nil, "--log_level"},
		{"empty origin", 8080, "info", []string{""}, "--allowed_origins"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			viper.Set("http_port", test.port)
			viper.Set("log_level", test.level)
			viper.Set("allowed_origins", test.origins)
			defer viper.Reset()

			err := services.ValidateServiceFlags()
			if test.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, test.wantErr)
		})
	}
}
