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

package env

import (
	"github.com/spf13/viper"
)

// Env is the interface that all sub-environments should implement.
type Env interface {
	ServiceName() string
	PodName() string
}

// BaseEnv is the struct containing server state that is valid across multiple requests,
// for example config information.
type BaseEnv struct {
	serviceName string
	podName     string
}

// New creates a new base environment use by all our services.
func New(serviceName string) *BaseEnv {
	return &BaseEnv{
		serviceName: serviceName,
		podName:     viper.GetString("pod_name"),
	}
}

// ServiceName returns the name the service was started with.
func (e *BaseEnv) ServiceName() string {
	return e.serviceName
}

// PodName returns the pod the service is running in.
func (e *BaseEnv) PodName() string {
	return e.podName
}
