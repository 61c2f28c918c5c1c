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

package env_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/numetrify/numetrify/src/shared/services/env"
)

func TestNew(t *testing.T) {
	viper.Set("pod_name", "numerics-0")
	defer viper.Set("pod_name", "")

	env := env.New("numerics-service")
	assert.Equal(t, "numerics-service", env.ServiceName())
	assert.Equal(t, "numerics-0", env.PodName())
}
