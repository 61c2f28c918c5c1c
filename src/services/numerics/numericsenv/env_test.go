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

package numericsenv_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numetrify/numetrify/src/numerics/bisection"
	"github.com/numetrify/numetrify/src/services/numerics/numericsenv"
)

func TestNewWithDefaults(t *testing.T) {
	viper.Set("decimal_scale", 10)
	viper.Set("max_iterations_limit", 500)
	defer viper.Reset()

	env, err := numericsenv.NewWithDefaults()
	require.NoError(t, err)
	assert.Equal(t, numericsenv.ServiceName, env.ServiceName())
	assert.Equal(t, 500, env.MaxIterationsLimit())

	res, err := env.Engine().Run("x^2 - 2", 0, 2, bisection.Relative, 6, 100)
	require.NoError(t, err)
	assert.Equal(t, bisection.Converged, res.Status)
	// Relative errors are rounded to the configured scale.
	for _, it := range res.Trace[1:] {
		assert.LessOrEqual(t, -it.Error.Exponent(), int32(10))
	}
}

func TestNewWithDefaults_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		scale int
		limit int
	}{
		{"zero scale", 0, 100},
		{"negative limit", 20, -1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			viper.Set("decimal_scale", test.scale)
			viper.Set("max_iterations_limit", test.limit)
			defer viper.Reset()

			_, err := numericsenv.NewWithDefaults()
			assert.Error(t, err)
		})
	}
}
